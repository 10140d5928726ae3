// Package notify delivers fire-and-forget due-today alerts. The recurrence
// sweep emits one notification per recurring expense whose due date is
// exactly today; delivery and permission handling belong to the consumer on
// the other side of the exchange, not to the ledger engine.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Notification is the event payload: a short title and a human-readable body.
type Notification struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier publishes notifications. Implementations must treat Publish as
// best-effort; the sweep never fails because a notification did not go out.
type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}

// New builds a notification with the timestamp set.
func New(title, body string) Notification {
	return Notification{Title: title, Body: body, Timestamp: time.Now()}
}

// ToJSON converts the notification to JSON bytes.
func (n Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// FromJSON decodes a notification from JSON bytes.
func FromJSON(data []byte) (Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// LogNotifier writes notifications to the log. It is the fallback when no
// AMQP broker is configured.
type LogNotifier struct{}

// Publish implements Notifier.
func (LogNotifier) Publish(ctx context.Context, n Notification) error {
	slog.InfoContext(ctx, "Notification", "title", n.Title, "body", n.Body)
	return nil
}
