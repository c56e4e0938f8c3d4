package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabridge/storefront/internal/core/domain"
	"github.com/modabridge/storefront/internal/core/service"
)

func newCheckoutStore(t *testing.T, products ...domain.Product) *service.Store {
	t.Helper()
	store := service.NewStore(newMemStore(), unconfiguredGateway())

	settings := domain.DefaultSiteSettings()
	settings.CheckoutEnabled = true
	b, err := json.Marshal(settings)
	require.NoError(t, err)
	require.NoError(t, store.Update(t.Context(), domain.CollectionSettings, b))

	for _, p := range products {
		require.NoError(t, store.Update(
			t.Context(), domain.CollectionProducts, productJSON(t, p)))
	}
	return store
}

func TestCheckout(t *testing.T) {

	t.Run("PricesItemsFromCatalog", func(t *testing.T) {
		store := newCheckoutStore(t,
			domain.Product{ID: "p1", Name: "Dress", Price: 250, StockQuantity: 10},
			domain.Product{ID: "p2", Name: "Belt", Price: 90, StockQuantity: 10},
		)
		checkout := service.NewCheckout(store)

		order, err := checkout.PlaceOrder(t.Context(), "u1", []domain.OrderItem{
			// The client-sent price is ignored.
			{ProductID: "p1", Quantity: 2, Price: 1},
			{ProductID: "p2", Quantity: 1},
		}, "eft")
		require.NoError(t, err)

		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "u1", order.UserID)
		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Equal(t, float64(590), order.Total)
		require.Len(t, order.Items, 2)
		assert.Equal(t, float64(250), order.Items[0].Price)

		orders := store.OrdersByUser("u1")
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
	})

	t.Run("DecrementsStock", func(t *testing.T) {
		store := newCheckoutStore(t,
			domain.Product{ID: "p1", Price: 100, StockQuantity: 5},
		)
		checkout := service.NewCheckout(store)

		_, err := checkout.PlaceOrder(t.Context(), "u1", []domain.OrderItem{
			{ProductID: "p1", Quantity: 2},
		}, "card")
		require.NoError(t, err)

		p, ok := store.ProductByID("p1")
		require.True(t, ok)
		assert.Equal(t, 3, p.StockQuantity)
	})

	t.Run("StockNeverGoesNegative", func(t *testing.T) {
		store := newCheckoutStore(t,
			domain.Product{ID: "p1", Price: 100, StockQuantity: 1},
		)
		checkout := service.NewCheckout(store)

		_, err := checkout.PlaceOrder(t.Context(), "u1", []domain.OrderItem{
			{ProductID: "p1", Quantity: 4},
		}, "card")
		require.NoError(t, err)

		p, _ := store.ProductByID("p1")
		assert.Equal(t, 0, p.StockQuantity)
	})

	t.Run("ZeroQuantityCountsAsOne", func(t *testing.T) {
		store := newCheckoutStore(t,
			domain.Product{ID: "p1", Price: 100, StockQuantity: 5},
		)
		checkout := service.NewCheckout(store)

		order, err := checkout.PlaceOrder(t.Context(), "u1", []domain.OrderItem{
			{ProductID: "p1"},
		}, "card")
		require.NoError(t, err)

		assert.Equal(t, float64(100), order.Total)
		assert.Equal(t, 1, order.Items[0].Quantity)
	})

	t.Run("EmptyOrder", func(t *testing.T) {
		checkout := service.NewCheckout(newCheckoutStore(t))

		_, err := checkout.PlaceOrder(t.Context(), "u1", nil, "card")
		assert.ErrorIs(t, err, service.ErrEmptyOrder)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		checkout := service.NewCheckout(newCheckoutStore(t))

		_, err := checkout.PlaceOrder(t.Context(), "u1", []domain.OrderItem{
			{ProductID: "ghost", Quantity: 1},
		}, "card")
		assert.ErrorIs(t, err, service.ErrUnknownProduct)
	})

	t.Run("CheckoutDisabled", func(t *testing.T) {
		// Default settings keep direct checkout off.
		store := service.NewStore(newMemStore(), unconfiguredGateway())
		store.SeedDefaults(t.Context())
		checkout := service.NewCheckout(store)

		_, err := checkout.PlaceOrder(t.Context(), "u1", []domain.OrderItem{
			{ProductID: "p1", Quantity: 1},
		}, "card")
		assert.ErrorIs(t, err, service.ErrCheckoutClosed)
	})
}
