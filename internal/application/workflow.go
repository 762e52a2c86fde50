package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

const emailWarning = "status updated, but the notification email could not be sent"

// WorkflowService moves applications through the hiring pipeline.
type WorkflowService struct {
	Repos         *repository.Repos
	notifications *NotificationService
	events        events.Publisher
	now           func() time.Time
}

func NewWorkflowService(repos *repository.Repos, notifications *NotificationService, deps Deps) *WorkflowService {
	deps = deps.withDefaults()
	if notifications == nil {
		notifications = NewNotificationService(repos, deps)
	}
	return &WorkflowService{
		Repos:         repos,
		notifications: notifications,
		events:        deps.Events,
		now:           deps.Now,
	}
}

type statusSnapshot struct {
	Status        jobapp.Status   `json:"status"`
	Priority      jobapp.Priority `json:"priority"`
	Rating        *int            `json:"rating,omitempty"`
	InternalNotes string          `json:"internal_notes,omitempty"`
}

func snapshotOf(app *jobapp.Application) statusSnapshot {
	return statusSnapshot{
		Status:        app.Status,
		Priority:      app.Priority,
		Rating:        app.Rating,
		InternalNotes: app.InternalNotes,
	}
}

// UpdateStatus persists a pipeline move. Any status of the enumeration is
// accepted from any current status. When SendEmail is set, a failed email
// is reported through the response warning and never fails the update.
func (s *WorkflowService) UpdateStatus(ctx context.Context, actor Actor, input jobapp.StatusUpdateInput) (*jobapp.StatusUpdateResponse, error) {
	id, err := parseApplicationID(input.ApplicationID)
	if err != nil {
		return nil, err
	}
	change, err := s.buildChange(actor, input)
	if err != nil {
		return nil, err
	}

	app, err := s.Repos.Application.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	before := snapshotOf(app)

	if err := s.Repos.Application.UpdateStatus(ctx, id, change); err != nil {
		return nil, notFound(err)
	}
	change.Apply(app)

	utils.LogAuditAsync(utils.AuditEntry{
		UserID:       actor.UserID,
		IP:           actor.IP,
		UserAgent:    actor.UserAgent,
		Action:       audit.ActionStatusChange,
		ResourceType: audit.ResourceApplication,
		ResourceID:   app.ID.String(),
		Before:       before,
		After:        snapshotOf(app),
		Description:  fmt.Sprintf("status %s -> %s", before.Status, app.Status),
	}, s.Repos.Audit)

	s.events.Publish(events.Event{
		Type:          events.TypeStatusChanged,
		ApplicationID: app.ID.String(),
		Status:        string(app.Status),
		Candidate:     app.CandidateName,
		Actor:         actor.Username,
		At:            change.ReviewedAt,
	})

	resp := &jobapp.StatusUpdateResponse{Success: true, Application: app}
	if input.SendEmail {
		if _, err := s.notifications.deliver(ctx, app, app.Status, input.InterviewDate, input.InterviewTime); err != nil {
			log.Printf("[workflow] %s: %v", app.ID, err)
			resp.Warning = emailWarning
		} else {
			resp.EmailSent = true
		}
	}
	return resp, nil
}

func (s *WorkflowService) buildChange(actor Actor, input jobapp.StatusUpdateInput) (jobapp.StatusChange, error) {
	if !input.NewStatus.Valid() {
		return jobapp.StatusChange{}, validationErr("newStatus %q is not a valid status", input.NewStatus)
	}

	now := s.now().UTC()
	change := jobapp.StatusChange{
		Status:     input.NewStatus,
		Notes:      input.Notes,
		ReviewedBy: actor.Username,
		ReviewedAt: now,
	}

	if input.Priority != nil && *input.Priority != "" {
		p := jobapp.Priority(*input.Priority)
		if !p.Valid() {
			return jobapp.StatusChange{}, validationErr("priority %q is not a valid priority", *input.Priority)
		}
		change.Priority = &p
	}
	if input.Rating != nil {
		if *input.Rating < jobapp.MinRating || *input.Rating > jobapp.MaxRating {
			return jobapp.StatusChange{}, validationErr("rating must be between %d and %d", jobapp.MinRating, jobapp.MaxRating)
		}
		r := *input.Rating
		change.Rating = &r
	}

	date := strings.TrimSpace(input.InterviewDate)
	tm := strings.TrimSpace(input.InterviewTime)
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return jobapp.StatusChange{}, validationErr("interviewDate must be YYYY-MM-DD")
		}
	}
	if date != "" && tm != "" {
		change.Interview = &jobapp.InterviewSchedule{
			Date:        date,
			Time:        tm,
			ScheduledAt: now,
			ScheduledBy: actor.Username,
		}
	}
	return change, nil
}
