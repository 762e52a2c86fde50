package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/internal/storage"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	resumeURLTTL    = 15 * time.Minute
)

// ListFilter is the back-office application search.
type ListFilter struct {
	Status       string
	Priority     string
	JobListingID string
	Search       string
	Page         int
	Limit        int
}

// ApplicationService is the back-office read and edit side of applications.
type ApplicationService struct {
	Repos   *repository.Repos
	storage storage.BlobStore
	content content.Source
}

func NewApplicationService(repos *repository.Repos, deps Deps) *ApplicationService {
	return &ApplicationService{
		Repos:   repos,
		storage: deps.Storage,
		content: deps.Content,
	}
}

func (s *ApplicationService) List(ctx context.Context, f ListFilter) (*jobapp.ListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	params := repository.ApplicationQueryParams{
		Search: f.Search,
		Limit:  f.Limit,
		Offset: (f.Page - 1) * f.Limit,
	}
	if f.Status != "" {
		st := jobapp.Status(f.Status)
		if !st.Valid() {
			return nil, validationErr("status %q is not a valid status", f.Status)
		}
		params.Status = &st
	}
	if f.Priority != "" {
		p := jobapp.Priority(f.Priority)
		if !p.Valid() {
			return nil, validationErr("priority %q is not a valid priority", f.Priority)
		}
		params.Priority = &p
	}
	if f.JobListingID != "" {
		id := f.JobListingID
		params.JobListingID = &id
	}

	items, total, err := s.Repos.Application.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []jobapp.Application{}
	}
	return &jobapp.ListResponse{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *ApplicationService) Get(ctx context.Context, rawID string) (*jobapp.Detail, error) {
	id, err := parseApplicationID(rawID)
	if err != nil {
		return nil, err
	}
	app, err := s.Repos.Application.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &jobapp.Detail{Application: *app, JobTitle: lookupJobTitle(ctx, s.content, app.JobListingID)}, nil
}

// UpdateDetails edits notes, tags, rating or priority without moving the pipeline.
func (s *ApplicationService) UpdateDetails(ctx context.Context, actor Actor, rawID string, input jobapp.UpdateDetailsInput) (*jobapp.Application, error) {
	id, err := parseApplicationID(rawID)
	if err != nil {
		return nil, err
	}

	var change jobapp.DetailsChange
	if input.Priority != nil {
		p := jobapp.Priority(*input.Priority)
		if !p.Valid() {
			return nil, validationErr("priority %q is not a valid priority", *input.Priority)
		}
		change.Priority = &p
	}
	if input.Rating != nil {
		if *input.Rating < jobapp.MinRating || *input.Rating > jobapp.MaxRating {
			return nil, validationErr("rating must be between %d and %d", jobapp.MinRating, jobapp.MaxRating)
		}
		change.Rating = input.Rating
	}
	change.Notes = input.Notes
	if input.Tags != nil {
		change.SetTags = true
		change.Tags = cleanTags(*input.Tags)
	}
	if change.Empty() {
		return nil, validationErr("nothing to update")
	}

	app, err := s.Repos.Application.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	before := *app

	if err := s.Repos.Application.UpdateDetails(ctx, id, change); err != nil {
		return nil, notFound(err)
	}
	change.Apply(app)

	utils.LogAuditAsync(utils.AuditEntry{
		UserID:       actor.UserID,
		IP:           actor.IP,
		UserAgent:    actor.UserAgent,
		Action:       audit.ActionUpdateDetails,
		ResourceType: audit.ResourceApplication,
		ResourceID:   id.String(),
		Before:       detailsSnapshot(&before),
		After:        detailsSnapshot(app),
		Description:  fmt.Sprintf("updated details of %s", app.CandidateName),
	}, s.Repos.Audit)

	return app, nil
}

// ResumeURL returns a short-lived download link for the stored resume.
func (s *ApplicationService) ResumeURL(ctx context.Context, rawID string) (string, error) {
	id, err := parseApplicationID(rawID)
	if err != nil {
		return "", err
	}
	app, err := s.Repos.Application.GetByID(ctx, id)
	if err != nil {
		return "", notFound(err)
	}
	if app.ResumeObjectKey == "" {
		return "", ErrNoResume
	}
	if s.storage == nil {
		return app.ResumeURL, nil
	}
	url, err := s.storage.PresignedURL(ctx, app.ResumeObjectKey, resumeURLTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return url, nil
}

func detailsSnapshot(app *jobapp.Application) map[string]any {
	return map[string]any{
		"priority":       app.Priority,
		"rating":         app.Rating,
		"internal_notes": app.InternalNotes,
		"tags":           []string(app.Tags),
	}
}

func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ParseUUID is exposed for handlers that take the id from the path.
func ParseUUID(raw string) (uuid.UUID, error) {
	return parseApplicationID(raw)
}
