package httphandler

import (
	"net/http"
	"strings"

	"github.com/modabridge/storefront/internal/core/service"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if ct != "application/json" && !strings.HasPrefix(ct, "multipart/form-data") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// AdminOnly guards the back-office route tree.
func AdminOnly(auth *service.Auth, next http.Handler) http.Handler {
	return guard(auth, service.AreaAdmin, next)
}

// ClientOnly guards the client-account route tree.
func ClientOnly(auth *service.Auth, next http.Handler) http.Handler {
	return guard(auth, service.AreaClient, next)
}

func guard(auth *service.Auth, area service.Area, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if !auth.Authorized(area, bearerToken(r)) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return token
	}
	return ""
}
