package notification

import (
	"context"

	"github.com/storeops/backoffice/pkg/logger"
)

// LogNotifier logs notifications instead of delivering them. Used when no
// Kafka brokers are configured (local development, tests).
type LogNotifier struct{}

// NewLogNotifier creates a logging notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify writes the notification to the log
func (n *LogNotifier) Notify(ctx context.Context, notification Notification) error {
	logger.Info(ctx).
		Uint("workspace_id", notification.WorkspaceID).
		Str("recipient", notification.RecipientRef).
		Str("title", notification.Title).
		Bool("send_sms", notification.SendSMS).
		Msg("Notification dispatched to log")
	return nil
}
