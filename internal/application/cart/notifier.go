package cart

import (
	"context"

	"go.uber.org/zap"
)

// Severity is the level of a user-facing notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient user-facing message emitted after a cart
// mutation
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Notifier delivers cart notifications to the user. Implementations
// can support different channels (toast bridge, in-app feed, etc.).
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LoggingNotifier is a notifier that logs notifications; useful for
// development and testing.
type LoggingNotifier struct {
	logger *zap.Logger
}

// NewLoggingNotifier creates a new logging notifier
func NewLoggingNotifier(logger *zap.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: logger}
}

// Notify logs the notification
func (n *LoggingNotifier) Notify(_ context.Context, notification Notification) error {
	if notification.Severity == SeverityError {
		n.logger.Warn("cart notification", zap.String("message", notification.Message))
		return nil
	}
	n.logger.Info("cart notification", zap.String("message", notification.Message))
	return nil
}

// Ensure LoggingNotifier implements Notifier
var _ Notifier = (*LoggingNotifier)(nil)
