package contracts

import "context"

// Notification is the fire-and-forget event the engines publish when a
// case is signed or a ticket is opened. Delivery (email rendering, SMTP)
// happens out of band in the mailer worker.
type Notification struct {
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Reference string `json:"reference"`
}

const (
	NotificationCaseSigned    = "case_signed"
	NotificationTicketCreated = "ticket_created"
)

type Notifier interface {
	Publish(ctx context.Context, notification Notification) error
}
