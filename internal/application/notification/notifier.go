package notification

import "context"

// Kind names the notification templates the marketplace sends
type Kind string

const (
	// KindRegistrationConfirm carries the email confirmation token
	KindRegistrationConfirm Kind = "registration_confirm"
	// KindPasswordReset carries a password reset token
	KindPasswordReset Kind = "password_reset"
	// KindWelcome greets a freshly confirmed account
	KindWelcome Kind = "welcome"
	// KindOrderPlaced confirms a placed order to its buyer
	KindOrderPlaced Kind = "order_placed"
	// KindOrderReceived tells a shop owner a new order contains their items
	KindOrderReceived Kind = "order_received"
)

// Message is one outbound notification
type Message struct {
	Kind    Kind              `json:"kind"`
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Notifier delivers notifications to users. Implementations can back it
// with SMTP, a log sink or anything else.
type Notifier interface {
	// Send delivers one message
	Send(ctx context.Context, msg Message) error
}
