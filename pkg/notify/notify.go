// Package notify abstracts local user notifications. On device this maps to
// the OS notification surface; the default implementation writes structured
// log events.
package notify

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/pkg/logger"
)

// Notification is a user-visible message.
type Notification struct {
	Title string
	Body  string
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier emits notifications as structured log events.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier returns a Notifier backed by the provided logger.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(ctx context.Context, msg Notification) error {
	if n.log == nil {
		return fmt.Errorf("notify: logger is required")
	}
	ctx = n.log.WithFields(ctx, map[string]any{
		"title": msg.Title,
		"body":  msg.Body,
	})
	n.log.Info(ctx, "local notification")
	return nil
}

// OrderConfirmed builds the order confirmation notification. The order id is
// truncated to its trailing segment to keep the message short.
func OrderConfirmed(orderID string, total decimal.Decimal) Notification {
	short := orderID
	if len(short) > 12 {
		short = short[len(short)-12:]
	}
	return Notification{
		Title: "Order Confirmed",
		Body:  fmt.Sprintf("Your order %s for ₹%s has been placed", short, total.StringFixed(2)),
	}
}
