package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order records the payment provider as an opaque string; gateway
// protocols are handled entirely outside this service.
type Order struct {
	ID              uint64      `gorm:"primaryKey" json:"id"`
	UserEmail       string      `gorm:"index;not null" json:"user_email"`
	Items           []OrderItem `gorm:"serializer:json;type:jsonb" json:"items"`
	Total           float64     `gorm:"not null" json:"total"`
	PaymentProvider string      `gorm:"type:varchar(32)" json:"payment_provider,omitempty"`
	Status          OrderStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
