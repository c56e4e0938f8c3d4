package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/service"
)

// PublicHandler serves the storefront read side and the two public
// write paths: contact enquiries and newsletter signups.
type PublicHandler struct {
	store   *service.Store
	tracker *service.Tracker
}

func RegisterPublic(
	mux *http.ServeMux, store *service.Store, tracker *service.Tracker,
) {
	h := PublicHandler{store, tracker}
	mux.HandleFunc("GET /v1/products", h.collection(domain.CollectionProducts))
	mux.HandleFunc("GET /v1/categories", h.collection(domain.CollectionCategories))
	mux.HandleFunc("GET /v1/subcategories", h.collection(domain.CollectionSubCategories))
	mux.HandleFunc("GET /v1/carousel", h.collection(domain.CollectionCarouselSlides))
	mux.HandleFunc("GET /v1/articles", h.collection(domain.CollectionArticles))
	mux.HandleFunc("GET /v1/training", h.collection(domain.CollectionTrainingModules))
	mux.HandleFunc("GET /v1/settings", h.GetSettings)
	mux.HandleFunc("POST /v1/enquiries", h.PostEnquiry)
	mux.HandleFunc("POST /v1/subscribers", h.PostSubscriber)
	mux.HandleFunc("POST /v1/track", h.PostTrack)
	mux.HandleFunc("POST /v1/track/click", h.PostClick)
}

func (h PublicHandler) collection(table domain.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "PublicHandler.collection"

		b, err := h.store.Snapshot(table)
		if err != nil {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			slog.Error("failed to snapshot collection", "op", op,
				"collection", table, "err", err)
			return
		}
		writeRawJSON(w, http.StatusOK, b)
	}
}

func (h PublicHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

func (h PublicHandler) PostEnquiry(w http.ResponseWriter, r *http.Request) {
	const op = "PublicHandler.PostEnquiry"
	log := slog.With("op", op)

	var req EnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Email == "" || req.Message == "" {
		http.Error(w, "email and message are required", http.StatusBadRequest)
		return
	}

	enq := domain.Enquiry{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    domain.EnquiryUnread,
		CreatedAt: time.Now().UTC(),
	}

	b, _ := json.Marshal(enq)
	if err := h.store.Update(r.Context(), domain.CollectionEnquiries, b); err != nil {
		// Optimistic: the enquiry is kept locally, remote catches up on
		// the next refresh.
		log.Warn("enquiry stored locally only", "err", err)
	}

	writeJSON(w, http.StatusAccepted, MutationResponse{ID: enq.ID, Status: "accepted"})
}

func (h PublicHandler) PostSubscriber(w http.ResponseWriter, r *http.Request) {
	const op = "PublicHandler.PostSubscriber"
	log := slog.With("op", op)

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	for _, s := range h.store.Subscribers() {
		if s.Email == req.Email {
			writeJSON(w, http.StatusOK, MutationResponse{ID: s.ID, Status: "subscribed"})
			return
		}
	}

	sub := domain.Subscriber{
		ID:        uuid.NewString(),
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	b, _ := json.Marshal(sub)
	if err := h.store.Update(r.Context(), domain.CollectionSubscribers, b); err != nil {
		log.Warn("subscriber stored locally only", "err", err)
	}

	writeJSON(w, http.StatusCreated, MutationResponse{ID: sub.ID, Status: "subscribed"})
}

func (h PublicHandler) PostTrack(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	h.tracker.RecordVisit(r.Context(), domain.TrafficEvent{
		Path:      req.Path,
		Referrer:  req.Referrer,
		UserAgent: r.UserAgent(),
		VisitorID: req.VisitorID,
		ProductID: req.ProductID,
	})
	w.WriteHeader(http.StatusAccepted)
}

func (h PublicHandler) PostClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	h.tracker.RecordClick(r.Context(), req.ProductID)
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeRawJSON(w http.ResponseWriter, code int, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}
