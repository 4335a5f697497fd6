package notification

import "context"

// Notification is one fully-formed message for the dispatcher. The engine
// builds these; routing to SMS or in-app channels happens downstream.
type Notification struct {
	WorkspaceID  uint
	RecipientRef string
	Title        string
	Message      string
	SendSMS      bool
}

// Notifier is the outbound collaborator boundary for notification delivery.
// Callers treat every error as log-and-continue: a failed notification must
// never fail the mutation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
