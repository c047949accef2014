package service

import (
	"context"

	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/store"
)

// SettingsService owns the settings collection: one JSON object, defaults
// applied when the file is absent.
type SettingsService struct {
	store *store.Store
}

func NewSettingsService(st *store.Store) *SettingsService {
	return &SettingsService{store: st}
}

func (s *SettingsService) Get(ctx context.Context) (*model.AppSettings, error) {
	cfg := model.DefaultSettings()
	err := s.store.WithLock(store.Settings, func() error {
		return s.store.Read(store.Settings, &cfg)
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *SettingsService) Update(ctx context.Context, cfg *model.AppSettings) error {
	if cfg.StoreName == "" {
		return errs.Validationf("storeName is required")
	}
	return s.store.WithLock(store.Settings, func() error {
		return s.store.Write(store.Settings, cfg)
	})
}
