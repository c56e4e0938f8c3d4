package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
	"github.com/modabridge/storefront/internal/core/service"
)

const persistTimeout = 15 * time.Second

// AdminHandler is the back-office surface. Every mutation is
// optimistic: the local change lands synchronously and the response
// returns at once, while the remote write and the read-side refresh
// settle in the background and only move the save-status indicator.
type AdminHandler struct {
	store    *service.Store
	auth     *service.Auth
	status   *service.StatusTracker
	uploader port.MediaUploader
}

func RegisterAdmin(
	mux *http.ServeMux,
	store *service.Store,
	auth *service.Auth,
	status *service.StatusTracker,
	uploader port.MediaUploader,
) {
	h := AdminHandler{store, auth, status, uploader}

	handle := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, AdminOnly(auth, hf))
	}

	handle("GET /v1/admin/collections/{collection}", h.GetCollection)
	handle("PUT /v1/admin/collections/{collection}", h.PutRecord)
	handle("DELETE /v1/admin/collections/{collection}/{id}", h.DeleteRecord)
	handle("POST /v1/admin/refresh", h.PostRefresh)
	handle("GET /v1/admin/status", h.GetStatus)
	handle("POST /v1/admin/media", h.PostMedia)
	handle("POST /v1/admin/team", h.PostTeamMember)
}

func (h AdminHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetCollection"

	table := domain.Collection(r.PathValue("collection"))
	if !h.store.Has(table) {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return
	}

	if table == domain.CollectionAdminUsers {
		users := h.store.AdminUsers()
		for i := range users {
			users[i].PasswordHash = ""
		}
		writeJSON(w, http.StatusOK, users)
		return
	}

	b, err := h.store.Snapshot(table)
	if err != nil {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		slog.Error("failed to snapshot collection", "op", op,
			"collection", table, "err", err)
		return
	}
	writeRawJSON(w, http.StatusOK, b)
}

func (h AdminHandler) PutRecord(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutRecord"
	log := slog.With("op", op)

	table := domain.Collection(r.PathValue("collection"))
	if !h.store.Has(table) {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	record, id, err := ensureRecordID(raw)
	if err != nil {
		http.Error(w, "invalid record", http.StatusBadRequest)
		return
	}

	h.status.Begin()

	if _, err := h.store.ApplyLocal(table, record); err != nil {
		h.status.Settle(err)
		if errors.Is(err, service.ErrMalformedRecord) {
			http.Error(w, "invalid record", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to store record", http.StatusServiceUnavailable)
		log.Error("failed to apply record", "collection", table, "err", err)
		return
	}

	go h.settle(table, func(ctx context.Context) error {
		return h.store.PersistRemote(ctx, table, id, record)
	})

	writeJSON(w, http.StatusAccepted, MutationResponse{ID: id, Status: "saving"})
	log.Info("record accepted", "collection", table, "id", id)
}

func (h AdminHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteRecord"
	log := slog.With("op", op)

	table := domain.Collection(r.PathValue("collection"))
	id := r.PathValue("id")
	if !h.store.Has(table) {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return
	}

	h.status.Begin()

	if err := h.store.RemoveLocal(table, id); err != nil {
		h.status.Settle(err)
		http.Error(w, "failed to delete record", http.StatusServiceUnavailable)
		log.Error("failed to delete record", "collection", table, "err", err)
		return
	}

	go h.settle(table, func(ctx context.Context) error {
		return h.store.PersistRemoteDelete(ctx, table, id)
	})

	writeJSON(w, http.StatusAccepted, MutationResponse{ID: id, Status: "saving"})
}

// settle runs the remote half of a mutation, moves the save-status
// indicator and refreshes the public read side on any outcome.
func (h AdminHandler) settle(
	table domain.Collection, persist func(context.Context) error,
) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	err := persist(ctx)
	h.status.Settle(err)
	h.store.RefreshAll(ctx)
}

func (h AdminHandler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	h.store.RefreshAll(r.Context())
	w.WriteHeader(http.StatusOK)
}

func (h AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SaveStatusResponse{
		Status: string(h.status.State()),
	})
}

func (h AdminHandler) PostMedia(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostMedia"
	log := slog.With("op", op)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		http.Error(w, "failed to store media", http.StatusServiceUnavailable)
		log.Error("upload failed", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

func (h AdminHandler) PostTeamMember(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostTeamMember"
	log := slog.With("op", op)

	var req TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	role := domain.Role(req.Role)
	if role != domain.RoleOwner {
		role = domain.RoleAdmin
	}

	u, err := h.auth.CreateAdminUser(
		r.Context(), req.Name, req.Email, req.Password, role, req.Permissions,
	)
	if err != nil && u.ID == "" {
		http.Error(w, "failed to create account", http.StatusServiceUnavailable)
		log.Error("failed to create admin user", "err", err)
		return
	}
	if err != nil {
		log.Warn("account stored locally only", "err", err)
	}

	u.PasswordHash = ""
	writeJSON(w, http.StatusCreated, u)
}

// ensureRecordID assigns a fresh id to records submitted without one.
func ensureRecordID(raw []byte) (record []byte, id string, err error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, "", err
	}

	id, _ = m["id"].(string)
	if id == "" {
		id = uuid.NewString()
		m["id"] = id
		b, err := json.Marshal(m)
		if err != nil {
			return nil, "", err
		}
		return b, id, nil
	}
	return raw, id, nil
}
