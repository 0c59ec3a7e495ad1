package mailer

import "pathsys-service/internal/app/contracts"

// Sender turns a queued notification into an outbound message. The
// default implementation only logs; SMTP wiring plugs in here.
type Sender interface {
	Send(notification contracts.Notification) error
}
