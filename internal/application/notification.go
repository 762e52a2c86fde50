package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/notification"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

const fallbackPositionTitle = "the position"

// NotificationService sends candidate status emails and records them in the
// application's communication log.
type NotificationService struct {
	Repos    *repository.Repos
	mailer   mailer.Mailer
	content  content.Source
	composer *notification.Composer
	events   events.Publisher
	now      func() time.Time
}

func NewNotificationService(repos *repository.Repos, deps Deps) *NotificationService {
	deps = deps.withDefaults()
	return &NotificationService{
		Repos:    repos,
		mailer:   deps.Mailer,
		content:  deps.Content,
		composer: deps.Composer,
		events:   deps.Events,
		now:      deps.Now,
	}
}

// SendStatusEmail emails the candidate about newStatus. The status itself is
// not changed. Nothing is recorded when delivery fails.
func (s *NotificationService) SendStatusEmail(ctx context.Context, actor Actor, input jobapp.StatusEmailInput) (*jobapp.Communication, error) {
	id, err := parseApplicationID(input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(input.NewStatus)) == "" {
		return nil, validationErr("newStatus is required")
	}

	app, err := s.Repos.Application.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	entry, err := s.deliver(ctx, app, input.NewStatus, input.InterviewDate, input.InterviewTime)
	if err != nil {
		return nil, err
	}

	utils.LogAuditAsync(utils.AuditEntry{
		UserID:       actor.UserID,
		IP:           actor.IP,
		UserAgent:    actor.UserAgent,
		Action:       audit.ActionStatusEmail,
		ResourceType: audit.ResourceApplication,
		ResourceID:   app.ID.String(),
		After:        entry,
		Description:  fmt.Sprintf("sent %s email to %s", input.NewStatus, app.CandidateEmail),
	}, s.Repos.Audit)

	return entry, nil
}

// deliver composes and sends the status email for app, then appends the
// communication record. On success the entry is also appended to app.
func (s *NotificationService) deliver(ctx context.Context, app *jobapp.Application, status jobapp.Status, date, tm string) (*jobapp.Communication, error) {
	email := s.composer.ComposeStatus(status, notification.StatusData{
		CandidateName: app.CandidateName,
		PositionTitle: s.positionTitle(ctx, app.JobListingID),
		InterviewDate: date,
		InterviewTime: tm,
	})

	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{app.CandidateEmail},
		Subject: email.Subject,
		HTML:    email.HTML,
	}); err != nil {
		log.Printf("[notification] status email for %s failed: %v", app.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	entry := jobapp.Communication{
		Type:      jobapp.CommunicationStatusUpdateEmail,
		Status:    status,
		SentAt:    s.now().UTC(),
		Subject:   email.Subject,
		Recipient: app.CandidateEmail,
	}
	if err := s.Repos.Application.AppendCommunication(ctx, app.ID, entry); err != nil {
		log.Printf("[notification] record communication for %s failed: %v", app.ID, err)
	} else {
		app.Communications.Append(entry)
	}

	s.events.Publish(events.Event{
		Type:          events.TypeEmailSent,
		ApplicationID: app.ID.String(),
		Status:        string(status),
		Candidate:     app.CandidateName,
		At:            entry.SentAt,
	})
	return &entry, nil
}

// positionTitle resolves the job listing title, degrading to a generic phrase.
func (s *NotificationService) positionTitle(ctx context.Context, jobListingID string) string {
	return lookupJobTitle(ctx, s.content, jobListingID)
}

func lookupJobTitle(ctx context.Context, src content.Source, jobListingID string) string {
	if src == nil || jobListingID == "" {
		return fallbackPositionTitle
	}
	job, err := src.JobListingByID(ctx, jobListingID)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			log.Printf("[content] job listing %s lookup failed: %v", jobListingID, err)
		}
		return fallbackPositionTitle
	}
	if job == nil || strings.TrimSpace(job.Title) == "" {
		return fallbackPositionTitle
	}
	return job.Title
}
