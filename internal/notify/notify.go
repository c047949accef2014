// Package notify holds the email and SMS collaborator clients consumed by
// notification dispatch. Each send reports success as a plain bool: any
// transport failure is logged and collapsed to false, never returned as an
// error and never retried.
package notify

import "context"

type EmailSender interface {
	SendNewOrderNotification(ctx context.Context, data map[string]any) bool
	SendNewUserNotification(ctx context.Context, data map[string]any) bool
	SendLowStockNotification(ctx context.Context, data map[string]any) bool
}

type SMSSender interface {
	SendNotification(ctx context.Context, notificationType string, data map[string]any) bool
}
