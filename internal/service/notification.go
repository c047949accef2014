package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/kafka"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/notify"
	"github.com/shopmono/storefront/internal/store"
)

// maxStoredNotifications caps the notification collection; dispatch
// truncates to the most recent entries, oldest dropped permanently.
const maxStoredNotifications = 100

// NotificationService owns the notifications collection and the fan-out
// to the email/SMS collaborators.
type NotificationService struct {
	store    *store.Store
	settings *SettingsService
	email    notify.EmailSender
	sms      notify.SMSSender
	producer kafka.EventProducer
}

func NewNotificationService(st *store.Store, settings *SettingsService, email notify.EmailSender, sms notify.SMSSender, producer kafka.EventProducer) *NotificationService {
	return &NotificationService{store: st, settings: settings, email: email, sms: sms, producer: producer}
}

// DispatchResult summarizes one dispatch. Collaborator failures show up
// as false flags, never as errors.
type DispatchResult struct {
	Stored         bool   `json:"stored"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	PushSent       bool   `json:"pushSent"`
	NotificationID string `json:"notificationId"`
}

// Dispatch renders the per-type template, persists the notification
// (newest first, truncated to the cap), then fans out to email and SMS
// per the settings flags. Delivery runs after and independently of the
// persist: a failed send is reported, not rolled back, not retried.
func (s *NotificationService) Dispatch(ctx context.Context, notificationType string, data map[string]any) (*DispatchResult, error) {
	if notificationType == "" {
		return nil, errs.Validationf("type is required")
	}
	title, message := renderNotification(notificationType, data)
	n := model.Notification{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Type:      notificationType,
		Data:      data,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}
	res := &DispatchResult{NotificationID: n.ID}
	err := s.store.WithLock(store.Notifications, func() error {
		var all []model.Notification
		if err := s.store.Read(store.Notifications, &all); err != nil {
			return err
		}
		all = append([]model.Notification{n}, all...)
		if len(all) > maxStoredNotifications {
			all = all[:maxStoredNotifications]
		}
		return s.store.Write(store.Notifications, all)
	})
	if err != nil {
		// Fan-out still runs; the caller sees stored=false.
		log.Printf("notification: store %s: %v", n.ID, err)
	}
	res.Stored = err == nil

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		log.Printf("notification: read settings: %v", err)
		cfg = &model.AppSettings{}
	}
	if s.email != nil {
		switch notificationType {
		case "newOrder":
			if cfg.EmailNewOrder {
				res.EmailSent = s.email.SendNewOrderNotification(ctx, data)
			}
		case "newUser":
			if cfg.EmailNewUser {
				res.EmailSent = s.email.SendNewUserNotification(ctx, data)
			}
		case "lowStock":
			if cfg.EmailLowStock {
				res.EmailSent = s.email.SendLowStockNotification(ctx, data)
			}
		}
	}
	if s.sms != nil && cfg.SMSNotifications {
		res.SMSSent = s.sms.SendNotification(ctx, notificationType, data)
	}
	// Push is a declared capability with no provider; PushSent stays false.

	produce(s.producer, "notification.dispatched", map[string]any{
		"notification_id": n.ID,
		"type":            notificationType,
		"stored":          res.Stored,
	})
	return res, nil
}

// NotificationList is the read-side view. Success is false only when the
// stored collection could not be read; callers must treat that as "no
// notifications", not as a hard failure.
type NotificationList struct {
	Success       bool                 `json:"success"`
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unreadCount"`
}

func (s *NotificationService) List(ctx context.Context) *NotificationList {
	var all []model.Notification
	err := s.store.WithLock(store.Notifications, func() error {
		return s.store.Read(store.Notifications, &all)
	})
	if err != nil {
		log.Printf("notification: list: %v", err)
		return &NotificationList{Success: false, Notifications: []model.Notification{}}
	}
	if all == nil {
		all = []model.Notification{}
	}
	unread := 0
	for _, n := range all {
		if !n.Read {
			unread++
		}
	}
	return &NotificationList{Success: true, Notifications: all, UnreadCount: unread}
}

// MarkRead flips one notification to read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.store.WithLock(store.Notifications, func() error {
		var all []model.Notification
		if err := s.store.Read(store.Notifications, &all); err != nil {
			return err
		}
		for i := range all {
			if all[i].ID == id {
				all[i].Read = true
				return s.store.Write(store.Notifications, all)
			}
		}
		return errs.ErrNotificationNotFound
	})
}

// MarkAllRead unconditionally flips every stored notification to read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.store.WithLock(store.Notifications, func() error {
		var all []model.Notification
		if err := s.store.Read(store.Notifications, &all); err != nil {
			return err
		}
		for i := range all {
			all[i].Read = true
		}
		return s.store.Write(store.Notifications, all)
	})
}

func field(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return "unknown"
}

// renderNotification maps a dispatch type to its human-readable title and
// message. Unknown types fall through to a generic template.
func renderNotification(notificationType string, data map[string]any) (title, message string) {
	switch notificationType {
	case "newOrder":
		return "New order received",
			fmt.Sprintf("Order %s placed by %s, total %s", field(data, "orderId"), field(data, "customerName"), field(data, "total"))
	case "newUser":
		return "New user registered",
			fmt.Sprintf("%s (%s) just signed up", field(data, "name"), field(data, "email"))
	case "lowStock":
		return "Low stock warning",
			fmt.Sprintf("%s is down to %s units", field(data, "productName"), field(data, "stock"))
	default:
		return "Notification", fmt.Sprintf("Event of type %s", notificationType)
	}
}
