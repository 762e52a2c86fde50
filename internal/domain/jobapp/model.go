package jobapp

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Application is a candidate's submission for a CMS-held job listing.
type Application struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobListingID string `json:"job_listing_id" gorm:"size:128;not null;index"`

	CandidateName   string         `json:"candidate_name" gorm:"size:200;not null"`
	CandidateEmail  string         `json:"candidate_email" gorm:"size:320;not null;index"`
	CandidatePhone  string         `json:"candidate_phone,omitempty" gorm:"size:64"`
	LinkedInURL     string         `json:"linkedin_url,omitempty" gorm:"column:linkedin_url"`
	GitHubURL       string         `json:"github_url,omitempty" gorm:"column:github_url"`
	PortfolioURL    string         `json:"portfolio_url,omitempty"`
	Location        string         `json:"location,omitempty"`
	CoverLetter     string         `json:"cover_letter,omitempty" gorm:"type:text"`
	Skills          pq.StringArray `json:"skills" gorm:"type:text[]"`
	ExperienceYears *int           `json:"experience_years,omitempty"`
	CurrentCompany  string         `json:"current_company,omitempty"`
	CurrentPosition string         `json:"current_position,omitempty"`
	ExpectedSalary  string         `json:"expected_salary,omitempty"`
	NoticePeriod    string         `json:"notice_period,omitempty"`

	ResumeURL           string                       `json:"resume_url" gorm:"not null"`
	ResumeObjectKey     string                       `json:"resume_object_key" gorm:"not null"`
	AdditionalDocuments datatypes.JSONSlice[Document] `json:"additional_documents" gorm:"type:jsonb"`
	GDPRConsent         bool                         `json:"gdpr_consent" gorm:"column:gdpr_consent;not null"`
	Source              string                       `json:"source" gorm:"size:64;default:'website'"`

	Status            Status             `json:"status" gorm:"type:application_status;not null;default:'new';index"`
	Priority          Priority           `json:"priority" gorm:"type:application_priority;not null;default:'medium'"`
	Rating            *int               `json:"rating,omitempty"`
	InternalNotes     string             `json:"internal_notes,omitempty" gorm:"type:text"`
	Tags              pq.StringArray     `json:"tags" gorm:"type:text[]"`
	Communications    CommunicationLog   `json:"communications" gorm:"type:jsonb;not null;default:'[]'"`
	InterviewSchedule *InterviewSchedule `json:"interview_schedule,omitempty" gorm:"type:jsonb"`
	ReviewedBy        string             `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time         `json:"reviewed_at,omitempty"`
}

func (Application) TableName() string {
	return "job_applications"
}

// Document is an uploaded file stored in blob storage.
type Document struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// InterviewSchedule is attached when an admin schedules an interview.
type InterviewSchedule struct {
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ScheduledAt time.Time `json:"scheduled_at"`
	ScheduledBy string    `json:"scheduled_by,omitempty"`
}

func (s *InterviewSchedule) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *InterviewSchedule) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported interview_schedule value %T", value)
	}
}

// StatusChange is the set of columns a status update overwrites.
// Nil fields keep their stored value.
type StatusChange struct {
	Status     Status
	Priority   *Priority
	Rating     *int
	Notes      *string
	Interview  *InterviewSchedule
	ReviewedBy string
	ReviewedAt time.Time
}

// Apply copies the change onto an in-memory application.
func (c StatusChange) Apply(app *Application) {
	app.Status = c.Status
	if c.Priority != nil {
		app.Priority = *c.Priority
	}
	if c.Rating != nil {
		r := *c.Rating
		app.Rating = &r
	}
	if c.Notes != nil {
		app.InternalNotes = *c.Notes
	}
	if c.Interview != nil {
		app.InterviewSchedule = c.Interview
	}
	app.ReviewedBy = c.ReviewedBy
	at := c.ReviewedAt
	app.ReviewedAt = &at
	app.UpdatedAt = c.ReviewedAt
}

// DetailsChange carries admin edits that do not move the pipeline.
type DetailsChange struct {
	Priority *Priority
	Rating   *int
	Notes    *string
	Tags     []string
	SetTags  bool
}

func (c DetailsChange) Empty() bool {
	return c.Priority == nil && c.Rating == nil && c.Notes == nil && !c.SetTags
}

func (c DetailsChange) Apply(app *Application) {
	if c.Priority != nil {
		app.Priority = *c.Priority
	}
	if c.Rating != nil {
		r := *c.Rating
		app.Rating = &r
	}
	if c.Notes != nil {
		app.InternalNotes = *c.Notes
	}
	if c.SetTags {
		app.Tags = pq.StringArray(c.Tags)
	}
}
