package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/modabridge/storefront/internal/core/service"
)

// AuthHandler exposes login for the two guarded areas. Auth failures
// surface as a plain user-facing message, never backend detail.
type AuthHandler struct {
	auth *service.Auth
}

func RegisterAuth(mux *http.ServeMux, auth *service.Auth) {
	h := AuthHandler{auth}
	mux.HandleFunc("POST /v1/auth/admin/login", h.AdminLogin)
	mux.HandleFunc("POST /v1/auth/client/session", h.ClientSession)
	mux.HandleFunc("POST /v1/auth/admin/logout", h.AdminLogout)
	mux.HandleFunc("POST /v1/auth/client/logout", h.ClientLogout)
}

func (h AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.AdminLogin"
	log := slog.With("op", op)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	token, err := h.auth.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized,
				ErrorResponse{Error: "invalid email or password"})
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		log.Error("login failed", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

func (h AuthHandler) ClientSession(w http.ResponseWriter, r *http.Request) {
	var req ClientSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	token, err := h.auth.ClientSession(r.Context(), req.UserID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized,
			ErrorResponse{Error: "invalid session"})
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

func (h AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(service.AreaAdmin)
	w.WriteHeader(http.StatusNoContent)
}

func (h AuthHandler) ClientLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(service.AreaClient)
	w.WriteHeader(http.StatusNoContent)
}
