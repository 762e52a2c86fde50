package application

import (
	"context"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/linskybing/corpsite-go/internal/domain/contact"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/notification"
)

// ContactService relays the public contact form to the team inbox.
type ContactService struct {
	mailer    mailer.Mailer
	composer  *notification.Composer
	teamEmail string
	validate  *validator.Validate
}

func NewContactService(deps Deps) *ContactService {
	deps = deps.withDefaults()
	v := validator.New()
	v.SetTagName("binding")
	return &ContactService{
		mailer:    deps.Mailer,
		composer:  deps.Composer,
		teamEmail: deps.TeamEmail,
		validate:  v,
	}
}

// Submit validates the request and sends the internal notification followed
// by the sender confirmation. Delivery errors are logged and not returned.
func (s *ContactService) Submit(ctx context.Context, req contact.Request) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		return fromValidator(err)
	}

	data := notification.ContactData{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}

	internal := s.composer.ComposeContactInternal(data)
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{s.teamEmail},
		ReplyTo: req.Email,
		Subject: internal.Subject,
		HTML:    internal.HTML,
	}); err != nil {
		log.Printf("[contact] internal notification failed: %v", err)
	}

	confirmation := s.composer.ComposeContactConfirmation(data)
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{req.Email},
		Subject: confirmation.Subject,
		HTML:    confirmation.HTML,
	}); err != nil {
		log.Printf("[contact] confirmation to %s failed: %v", req.Email, err)
	}
	return nil
}
