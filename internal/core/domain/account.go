package domain

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// AdminUser is a back-office account. PasswordHash is a bcrypt hash and
// travels inside the record payload like every other field; the HTTP
// layer strips it from responses.
type AdminUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Permissions  []string  `json:"permissions"`
	PasswordHash string    `json:"password,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u AdminUser) RecordID() string { return u.ID }

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

type (
	Order struct {
		ID            string      `json:"id"`
		UserID        string      `json:"userId"`
		Items         []OrderItem `json:"items"`
		Total         float64     `json:"total"`
		Status        OrderStatus `json:"status"`
		PaymentMethod string      `json:"paymentMethod"`
		CreatedAt     time.Time   `json:"createdAt"`
	}

	OrderItem struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
	}
)

func (o Order) RecordID() string { return o.ID }
