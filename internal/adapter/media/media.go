package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/modabridge/storefront/internal/core/port"
)

var _ port.MediaUploader = (*Uploader)(nil)

const uploadFolder = "storefront"

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Uploader stores media in the public Cloudinary bucket and returns
// the public URL. When Cloudinary is unconfigured or an upload fails,
// the file lands in the fallback directory and a locally-served URL is
// returned instead, so media upload works offline too.
type Uploader struct {
	api         uploadAPI
	fallbackDir string
	publicBase  string
}

func NewUploader(cloudinaryURL, fallbackDir, publicBase string) *Uploader {
	const op = "media.NewUploader"

	u := &Uploader{fallbackDir: fallbackDir, publicBase: publicBase}

	if cloudinaryURL == "" {
		slog.Info("media storage is not configured, using local fallback", "op", op)
		return u
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		slog.Warn("failed to init media storage, using local fallback",
			"op", op, "err", err)
		return u
	}
	u.api = &cld.Upload
	return u
}

// Upload buffers the body once so the local fallback still writes the
// full content after a failed remote attempt has consumed its reader.
func (u *Uploader) Upload(
	ctx context.Context, name string, r io.Reader,
) (string, error) {
	const op = "Uploader.Upload"
	log := slog.With("op", op)

	var body bytes.Buffer
	if _, err := io.Copy(&body, r); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if u.api != nil {
		res, err := u.api.Upload(ctx, bytes.NewReader(body.Bytes()), uploader.UploadParams{
			Folder: uploadFolder,
		})
		if err == nil {
			return res.SecureURL, nil
		}
		log.Warn("upload failed, falling back to local file", "err", err)
	}

	url, err := u.storeLocal(name, bytes.NewReader(body.Bytes()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return url, nil
}

func (u *Uploader) storeLocal(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(u.fallbackDir, 0o755); err != nil {
		return "", err
	}

	fname := uuid.NewString() + filepath.Ext(name)
	f, err := os.Create(filepath.Join(u.fallbackDir, fname))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return u.publicBase + "/media/" + fname, nil
}

// Dir exposes the fallback directory for the file server route.
func (u *Uploader) Dir() string {
	return u.fallbackDir
}
