package port

import (
	"context"
	"errors"
	"io"

	"github.com/modabridge/storefront/internal/core/domain"
)

// Remote failure classes. The gateway wraps every error it returns in
// one of these so callers can tell a missing schema (first run, setup
// step skipped) from a transport problem.
var (
	ErrNotConfigured = errors.New("remote gateway is not configured")
	ErrSchemaMissing = errors.New("remote table does not exist")
	ErrUnavailable   = errors.New("remote storage is unavailable")
)

// LocalStore is the embedded key-value persistence layer. Get never
// fails: any read problem yields the caller-supplied fallback.
type LocalStore interface {
	Get(key string, fallback []byte) []byte
	Set(key string, value []byte) error
	Has(key string) bool
	Delete(key string) error
}

// Row is one record as the remote gateway stores it: the id column and
// the JSON payload.
type Row struct {
	ID      string
	Payload []byte
}

// TableGateway is the remote table-store API. Implementations report
// failures with the gateway's sentinel error classes; they never fall
// back to local state themselves, that is the sync store's decision.
type TableGateway interface {
	Configured() bool
	FetchAll(ctx context.Context, table domain.Collection) ([]Row, error)
	Upsert(ctx context.Context, table domain.Collection, row Row) error
	Delete(ctx context.Context, table domain.Collection, id string) error
}

// SyncStore is the canonical in-memory collection holder.
type SyncStore interface {
	Update(ctx context.Context, table domain.Collection, record []byte) error
	Delete(ctx context.Context, table domain.Collection, id string) error
	RefreshAll(ctx context.Context)
	Snapshot(table domain.Collection) ([]byte, error)
}

// MediaUploader stores an uploaded file and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// TrafficProducer publishes traffic events to the analytics stream.
type TrafficProducer interface {
	ProduceEvent(ctx context.Context, evt domain.TrafficEvent) error
	Close()
}
