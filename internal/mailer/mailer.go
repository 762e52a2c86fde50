package mailer

import (
	"context"
	"errors"
	"log"
)

var ErrNoRecipients = errors.New("mail has no recipients")

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers one message. Implementations do not retry.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer prints messages instead of sending them; used when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	log.Printf("[mail] (not sent, SMTP disabled) to=%v subject=%q", msg.To, msg.Subject)
	return nil
}
