package notification

import (
	"context"

	"github.com/storeops/backoffice/kafka"
)

// KafkaDispatcher hands notify requests to the external dispatcher through
// the notifications topic
type KafkaDispatcher struct {
	publisher *kafka.Publisher
}

// NewKafkaDispatcher creates a kafka-backed notifier
func NewKafkaDispatcher(publisher *kafka.Publisher) *KafkaDispatcher {
	return &KafkaDispatcher{publisher: publisher}
}

// Notify publishes a notification.requested event
func (d *KafkaDispatcher) Notify(ctx context.Context, n Notification) error {
	return d.publisher.PublishNotificationRequested(ctx, kafka.NotificationRequestedEvent{
		WorkspaceID:  n.WorkspaceID,
		RecipientRef: n.RecipientRef,
		Title:        n.Title,
		Message:      n.Message,
		SendSMS:      n.SendSMS,
	})
}
