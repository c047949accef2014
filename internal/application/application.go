package application

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopmono/storefront/internal/config"
	"github.com/shopmono/storefront/internal/database"
	"github.com/shopmono/storefront/internal/directory"
	"github.com/shopmono/storefront/internal/handler"
	"github.com/shopmono/storefront/internal/kafka"
	"github.com/shopmono/storefront/internal/notify"
	"github.com/shopmono/storefront/internal/router"
	"github.com/shopmono/storefront/internal/service"
	"github.com/shopmono/storefront/internal/store"
)

// API wires the whole service together for the api mode.
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	st := store.New(cfg.DataDir)
	dir := directory.Seeded()
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicSupport)
	emailClient := notify.NewEmailClient(cfg.EmailServiceURL)
	smsClient := notify.NewSMSClient(cfg.SMSServiceURL)

	settingsSvc := service.NewSettingsService(st)
	notificationSvc := service.NewNotificationService(st, settingsSvc, emailClient, smsClient, producer)
	chatSvc := service.NewChatService(st, producer)
	contactSvc := service.NewContactService(st, producer)
	userSvc := service.NewUserService(db, dir)
	catalogSvc := service.NewCatalogService(db)
	orderSvc := service.NewOrderService(db)

	mux := router.New(router.Deps{
		JWTSecret:    cfg.JWTSecret,
		Auth:         handler.NewAuthHandler(userSvc, notificationSvc, cfg.JWTSecret),
		Chat:         handler.NewChatHandler(chatSvc),
		Contact:      handler.NewContactHandler(contactSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Product:      handler.NewProductHandler(catalogSvc, notificationSvc),
		Order:        handler.NewOrderHandler(orderSvc, notificationSvc),
		Admin:        handler.NewAdminHandler(settingsSvc, userSvc, dir),
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv, producer: producer}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Printf("HTTP server listening on %s", a.httpSrv.Addr)
	log.Printf("  Swagger UI:  %s/swagger", base)
	log.Printf("  Health:      %s/health", base)
	log.Printf("  API v1:      %s/api/v1/", base)
	log.Printf("  Data dir:    %s", a.cfg.DataDir)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Printf("kafka: close: %v", err)
	}
	return nil
}
