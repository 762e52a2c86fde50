package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linskybing/corpsite-go/internal/domain/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() contact.Request {
	return contact.Request{
		Name:    "Sam Carter",
		Email:   "sam@globex.test",
		Company: "Globex",
		Message: "We would like a quote for a new website.",
	}
}

func TestContactSubmit_SendsInternalThenConfirmation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContactService(env.deps)

	require.NoError(t, svc.Submit(context.Background(), validContact()))
	require.Len(t, env.mailer.sent, 2)

	assert.Equal(t, []string{"hiring@acme.test"}, env.mailer.sent[0].To)
	assert.Equal(t, "sam@globex.test", env.mailer.sent[0].ReplyTo)
	assert.Equal(t, "New contact request from Sam Carter (Globex)", env.mailer.sent[0].Subject)

	assert.Equal(t, []string{"sam@globex.test"}, env.mailer.sent[1].To)
	assert.Equal(t, "Thank you for contacting Acme", env.mailer.sent[1].Subject)
}

func TestContactSubmit_MailFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("smtp down")
	svc := NewContactService(env.deps)

	assert.NoError(t, svc.Submit(context.Background(), validContact()))
}

func TestContactSubmit_Validation(t *testing.T) {
	cases := map[string]func(*contact.Request){
		"name too short":    func(r *contact.Request) { r.Name = "S" },
		"name too long":     func(r *contact.Request) { r.Name = strings.Repeat("a", 101) },
		"bad email":         func(r *contact.Request) { r.Email = "sam" },
		"message too short": func(r *contact.Request) { r.Message = "hi there" },
		"message too long":  func(r *contact.Request) { r.Message = strings.Repeat("a", 5001) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			svc := NewContactService(env.deps)
			req := validContact()
			mutate(&req)

			err := svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, env.mailer.sent)
		})
	}
}
