package service

import (
	"context"

	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/model"
	"gorm.io/gorm"
)

// OrderService records orders; the payment provider is an opaque string
// settled entirely outside this service.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create validates the items, computes the total server-side and persists
// the order with status pending.
func (s *OrderService) Create(ctx context.Context, userEmail string, items []model.OrderItem, paymentProvider string) (*model.Order, error) {
	if userEmail == "" {
		return nil, errs.Validationf("userEmail is required")
	}
	if len(items) == 0 {
		return nil, errs.Validationf("order needs at least one item")
	}
	total := 0.0
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, errs.Validationf("item quantity must be positive")
		}
		if it.Price < 0 {
			return nil, errs.Validationf("item price must not be negative")
		}
		total += it.Price * float64(it.Quantity)
	}
	o := &model.Order{
		UserEmail:       userEmail,
		Items:           items,
		Total:           total,
		PaymentProvider: paymentProvider,
		Status:          model.OrderStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUser returns the caller's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userEmail string) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).Where("user_email = ?", userEmail).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
