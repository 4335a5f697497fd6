package kafka

import "time"

// NotificationRequestedEvent asks the dispatcher to deliver one message to a
// recipient; routing to SMS or in-app channels is the dispatcher's concern
type NotificationRequestedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	WorkspaceID  uint      `json:"workspace_id"`
	RecipientRef string    `json:"recipient_ref"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	SendSMS      bool      `json:"send_sms"`
	Timestamp    time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent records an order status transition
type OrderStatusChangedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	WorkspaceID uint      `json:"workspace_id"`
	OrderID     uint      `json:"order_id"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeNotificationRequested = "notification.requested"
	EventTypeOrderStatusChanged    = "order.status_changed"
)

// Kafka topics
const (
	TopicNotifications      = "notifications"
	TopicOrderStatusChanged = "order-status-changed"
)
