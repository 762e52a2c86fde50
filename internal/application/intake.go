package application

import (
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/notification"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/internal/storage"
)

const (
	defaultMaxResumeBytes = 10 << 20
	defaultMaxDocuments   = 5
	sourceWebsite         = "website"
)

var resumeExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// IntakeService accepts public job applications.
type IntakeService struct {
	Repos          *repository.Repos
	MaxResumeBytes int64
	MaxDocuments   int

	storage   storage.BlobStore
	mailer    mailer.Mailer
	content   content.Source
	composer  *notification.Composer
	events    events.Publisher
	teamEmail string
	validate  *validator.Validate
	now       func() time.Time
}

func NewIntakeService(repos *repository.Repos, deps Deps) *IntakeService {
	deps = deps.withDefaults()
	s := &IntakeService{
		Repos:          repos,
		MaxResumeBytes: config.MaxResumeBytes,
		MaxDocuments:   config.MaxDocuments,
		storage:        deps.Storage,
		mailer:         deps.Mailer,
		content:        deps.Content,
		composer:       deps.Composer,
		events:         deps.Events,
		teamEmail:      deps.TeamEmail,
		validate:       validator.New(),
		now:            deps.Now,
	}
	if s.MaxResumeBytes <= 0 {
		s.MaxResumeBytes = defaultMaxResumeBytes
	}
	if s.MaxDocuments <= 0 {
		s.MaxDocuments = defaultMaxDocuments
	}
	return s
}

// Submit stores the resume, then the record, then sends the confirmation
// and team alert. A storage failure aborts before anything is written to
// the database; email failures after the insert are only logged.
func (s *IntakeService) Submit(ctx context.Context, input jobapp.SubmissionInput) (*jobapp.Application, error) {
	input = normalizeSubmission(input)
	if err := s.check(input); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, fmt.Errorf("%w: no storage backend configured", ErrStorage)
	}

	id := uuid.New()
	resume, err := s.storage.Put(ctx,
		storage.ObjectKey("resumes", id.String(), input.Resume.Filename),
		input.Resume.Reader, input.Resume.Size, contentTypeOf(*input.Resume))
	if err != nil {
		log.Printf("[intake] resume upload for %s failed: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	app := &jobapp.Application{
		ID:                  id,
		JobListingID:        input.JobListingID,
		CandidateName:       input.CandidateName,
		CandidateEmail:      input.CandidateEmail,
		CandidatePhone:      input.CandidatePhone,
		LinkedInURL:         input.LinkedInURL,
		GitHubURL:           input.GitHubURL,
		PortfolioURL:        input.PortfolioURL,
		Location:            input.Location,
		CoverLetter:         input.CoverLetter,
		Skills:              input.Skills,
		ExperienceYears:     input.ExperienceYears,
		CurrentCompany:      input.CurrentCompany,
		CurrentPosition:     input.CurrentPosition,
		ExpectedSalary:      input.ExpectedSalary,
		NoticePeriod:        input.NoticePeriod,
		ResumeURL:           resume.URL,
		ResumeObjectKey:     resume.Key,
		AdditionalDocuments: s.uploadDocuments(ctx, id, input.Documents),
		GDPRConsent:         true,
		Source:              sourceWebsite,
		Status:              jobapp.StatusNew,
		Priority:            jobapp.PriorityMedium,
		Tags:                []string{},
	}
	if err := s.Repos.Application.Create(ctx, app); err != nil {
		log.Printf("[intake] insert %s failed: %v", id, err)
		return nil, fmt.Errorf("save application: %w", err)
	}

	s.notifyReceived(ctx, app)
	s.events.Publish(events.Event{
		Type:          events.TypeApplicationCreated,
		ApplicationID: app.ID.String(),
		Status:        string(app.Status),
		Candidate:     app.CandidateName,
		At:            s.now(),
	})
	return app, nil
}

func (s *IntakeService) check(input jobapp.SubmissionInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fromValidator(err)
	}
	if !input.GDPRConsent {
		return validationErr("gdprConsent must be accepted")
	}
	if input.Resume == nil || input.Resume.Reader == nil {
		return validationErr("resume is required")
	}
	if input.Resume.Size <= 0 {
		return validationErr("resume is empty")
	}
	if input.Resume.Size > s.MaxResumeBytes {
		return validationErr("resume exceeds %d bytes", s.MaxResumeBytes)
	}
	if _, ok := resumeExtensions[strings.ToLower(filepath.Ext(input.Resume.Filename))]; !ok {
		return validationErr("resume must be a PDF or Word document")
	}
	if len(input.Documents) > s.MaxDocuments {
		return validationErr("at most %d additional documents are allowed", s.MaxDocuments)
	}
	return nil
}

// uploadDocuments stores the optional attachments. A failed upload is
// logged and the document left out.
func (s *IntakeService) uploadDocuments(ctx context.Context, id uuid.UUID, files []jobapp.FileUpload) []jobapp.Document {
	docs := make([]jobapp.Document, 0, len(files))
	for _, f := range files {
		if f.Reader == nil || f.Size <= 0 || f.Size > s.MaxResumeBytes {
			log.Printf("[intake] skipping document %q for %s", f.Filename, id)
			continue
		}
		obj, err := s.storage.Put(ctx, storage.ObjectKey("documents", id.String(), f.Filename), f.Reader, f.Size, contentTypeOf(f))
		if err != nil {
			log.Printf("[intake] document %q for %s failed: %v", f.Filename, id, err)
			continue
		}
		docs = append(docs, jobapp.Document{
			Name:        f.Filename,
			URL:         obj.URL,
			ObjectKey:   obj.Key,
			ContentType: obj.ContentType,
			Size:        obj.Size,
		})
	}
	return docs
}

func (s *IntakeService) notifyReceived(ctx context.Context, app *jobapp.Application) {
	data := notification.ApplicationData{
		ApplicationID:  app.ID.String(),
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		PositionTitle:  lookupJobTitle(ctx, s.content, app.JobListingID),
		ResumeURL:      app.ResumeURL,
	}

	confirmation := s.composer.ComposeConfirmation(data)
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{app.CandidateEmail},
		Subject: confirmation.Subject,
		HTML:    confirmation.HTML,
	}); err != nil {
		log.Printf("[intake] confirmation email for %s failed: %v", app.ID, err)
	}

	if s.teamEmail == "" {
		return
	}
	alert := s.composer.ComposeTeamAlert(data)
	if err := s.mailer.Send(ctx, mailer.Message{
		To:      []string{s.teamEmail},
		ReplyTo: app.CandidateEmail,
		Subject: alert.Subject,
		HTML:    alert.HTML,
	}); err != nil {
		log.Printf("[intake] team alert for %s failed: %v", app.ID, err)
	}
}

func normalizeSubmission(in jobapp.SubmissionInput) jobapp.SubmissionInput {
	in.JobListingID = strings.TrimSpace(in.JobListingID)
	in.CandidateName = strings.TrimSpace(in.CandidateName)
	in.CandidateEmail = strings.TrimSpace(in.CandidateEmail)
	in.CandidatePhone = strings.TrimSpace(in.CandidatePhone)
	in.LinkedInURL = strings.TrimSpace(in.LinkedInURL)
	in.GitHubURL = strings.TrimSpace(in.GitHubURL)
	in.PortfolioURL = strings.TrimSpace(in.PortfolioURL)
	skills := make([]string, 0, len(in.Skills))
	for _, sk := range in.Skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			skills = append(skills, sk)
		}
	}
	in.Skills = skills
	return in
}

func contentTypeOf(f jobapp.FileUpload) string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
