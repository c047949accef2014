package service

import (
	"context"
	"errors"

	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/model"
	"gorm.io/gorm"
)

// CatalogService manages products in the relational store.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Create(ctx context.Context, p *model.Product) error {
	if p.Name == "" {
		return errs.Validationf("name is required")
	}
	if p.Price < 0 {
		return errs.Validationf("price must not be negative")
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *CatalogService) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) List(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint64, changes map[string]any) (*model.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(p).Updates(changes).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateStock sets the stock level and reports whether this update moved
// the product from above its low-stock threshold to at-or-below it, so
// the caller can dispatch a lowStock notification exactly once per dip.
func (s *CatalogService) UpdateStock(ctx context.Context, id uint64, stock int) (*model.Product, bool, error) {
	if stock < 0 {
		return nil, false, errs.Validationf("stock must not be negative")
	}
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	wasLow := p.LowStock()
	if err := s.db.WithContext(ctx).Model(p).Update("stock", stock).Error; err != nil {
		return nil, false, err
	}
	p.Stock = stock
	return p, !wasLow && p.LowStock(), nil
}
