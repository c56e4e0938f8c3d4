package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/port"
	"github.com/modabridge/storefront/internal/core/service"
)

// ClientHandler is the account area: orders and the persisted cart.
// The cart is a raw JSON blob keyed per user in the local store, the
// same way the browser kept it before.
type ClientHandler struct {
	store    *service.Store
	checkout *service.Checkout
	auth     *service.Auth
	local    port.LocalStore
}

func RegisterClient(
	mux *http.ServeMux,
	store *service.Store,
	checkout *service.Checkout,
	auth *service.Auth,
	local port.LocalStore,
) {
	h := ClientHandler{store, checkout, auth, local}

	handle := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, ClientOnly(auth, hf))
	}

	handle("POST /v1/client/orders", h.PostOrder)
	handle("GET /v1/client/orders", h.GetOrders)
	handle("GET /v1/client/cart", h.GetCart)
	handle("PUT /v1/client/cart", h.PutCart)
}

func (h ClientHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "ClientHandler.PostOrder"
	log := slog.With("op", op)

	userID, ok := h.auth.Identify(service.AreaClient, bearerToken(r))
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	order, err := h.checkout.PlaceOrder(
		r.Context(), userID, req.Items, req.PaymentMethod,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutClosed):
			http.Error(w, "checkout is not available", http.StatusConflict)
			return
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrUnknownProduct):
			http.Error(w, "invalid order", http.StatusBadRequest)
			return
		}
		// Remote persistence failed but the order exists locally.
		log.Warn("order stored locally only", "orderId", order.ID, "err", err)
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h ClientHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.auth.Identify(service.AreaClient, bearerToken(r))
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders := h.store.OrdersByUser(userID)
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h ClientHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.auth.Identify(service.AreaClient, bearerToken(r))
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	b := h.local.Get(cartKey(userID), []byte("[]"))
	writeRawJSON(w, http.StatusOK, b)
}

func (h ClientHandler) PutCart(w http.ResponseWriter, r *http.Request) {
	const op = "ClientHandler.PutCart"

	userID, ok := h.auth.Identify(service.AreaClient, bearerToken(r))
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	if err := h.local.Set(cartKey(userID), raw); err != nil {
		http.Error(w, "failed to store cart", http.StatusServiceUnavailable)
		slog.Error("failed to store cart", "op", op, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func cartKey(userID string) string {
	return "cart_" + userID
}
