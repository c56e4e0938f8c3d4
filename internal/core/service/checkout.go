package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/modabridge/storefront/internal/core/domain"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrUnknownProduct = errors.New("unknown product")
	ErrCheckoutClosed = errors.New("direct checkout is disabled")
)

// Checkout places orders through the sync store. Recording the order
// and decrementing stock are two independent writes with no atomicity
// across them; the backing store only guarantees last-write-wins per
// row.
type Checkout struct {
	store *Store
}

func NewCheckout(store *Store) *Checkout {
	return &Checkout{store}
}

func (c *Checkout) PlaceOrder(
	ctx context.Context,
	userID string,
	items []domain.OrderItem,
	paymentMethod string,
) (domain.Order, error) {
	const op = "Checkout.PlaceOrder"

	if !c.store.Settings().CheckoutEnabled {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrCheckoutClosed)
	}
	if len(items) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyOrder)
	}

	var total float64
	priced := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		p, ok := c.store.ProductByID(it.ProductID)
		if !ok {
			return domain.Order{}, fmt.Errorf(
				"%s: %q: %w", op, it.ProductID, ErrUnknownProduct,
			)
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		it.Price = p.Price
		total += p.Price * float64(it.Quantity)
		priced = append(priced, it)
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         priced,
		Total:         total,
		Status:        domain.OrderPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	b, _ := json.Marshal(order)
	if err := c.store.Update(ctx, domain.CollectionOrders, b); err != nil {
		return order, fmt.Errorf("%s: %w", op, err)
	}

	c.decrementStock(ctx, priced)
	return order, nil
}

func (c *Checkout) decrementStock(ctx context.Context, items []domain.OrderItem) {
	const op = "Checkout.decrementStock"
	log := slog.With("op", op)

	for _, it := range items {
		p, ok := c.store.ProductByID(it.ProductID)
		if !ok {
			continue
		}
		p.StockQuantity -= it.Quantity
		if p.StockQuantity < 0 {
			p.StockQuantity = 0
		}

		b, _ := json.Marshal(p)
		if err := c.store.Update(ctx, domain.CollectionProducts, b); err != nil {
			log.Warn("stock decrement not persisted remotely",
				"productId", it.ProductID, "err", err)
		}
	}
}
