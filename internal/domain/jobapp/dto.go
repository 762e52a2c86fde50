package jobapp

import (
	"io"
	"mime/multipart"
)

// SubmissionForm is the multipart payload of the public application form.
type SubmissionForm struct {
	JobListingID    string                  `form:"jobListingId"`
	CandidateName   string                  `form:"candidateName"`
	CandidateEmail  string                  `form:"candidateEmail"`
	CandidatePhone  string                  `form:"candidatePhone"`
	LinkedInURL     string                  `form:"linkedinUrl"`
	GitHubURL       string                  `form:"githubUrl"`
	PortfolioURL    string                  `form:"portfolioUrl"`
	Location        string                  `form:"location"`
	CoverLetter     string                  `form:"coverLetter"`
	Skills          string                  `form:"skills"` // comma separated
	ExperienceYears string                  `form:"experienceYears"`
	CurrentCompany  string                  `form:"currentCompany"`
	CurrentPosition string                  `form:"currentPosition"`
	ExpectedSalary  string                  `form:"expectedSalary"`
	NoticePeriod    string                  `form:"noticePeriod"`
	GDPRConsent     string                  `form:"gdprConsent"`
	Resume          *multipart.FileHeader   `form:"resume"`
	Documents       []*multipart.FileHeader `form:"documents"`
}

// FileUpload is an opened file waiting to be stored.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// SubmissionInput is the validated-by-service form of a public submission.
type SubmissionInput struct {
	JobListingID    string `validate:"required,max=128"`
	CandidateName   string `validate:"required,max=200"`
	CandidateEmail  string `validate:"required,email,max=320"`
	CandidatePhone  string `validate:"max=64"`
	LinkedInURL     string `validate:"omitempty,url"`
	GitHubURL       string `validate:"omitempty,url"`
	PortfolioURL    string `validate:"omitempty,url"`
	Location        string
	CoverLetter     string `validate:"max=10000"`
	Skills          []string
	ExperienceYears *int `validate:"omitempty,min=0,max=80"`
	CurrentCompany  string
	CurrentPosition string
	ExpectedSalary  string
	NoticePeriod    string
	GDPRConsent     bool
	Resume          *FileUpload
	Documents       []FileUpload
}

type SubmissionResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
}

// StatusUpdateInput is the admin status-update request.
type StatusUpdateInput struct {
	ApplicationID string  `json:"applicationId"`
	NewStatus     Status  `json:"newStatus"`
	Priority      *string `json:"priority,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	InterviewDate string  `json:"interviewDate,omitempty"`
	InterviewTime string  `json:"interviewTime,omitempty"`
	SendEmail     bool    `json:"sendEmail"`
}

type StatusUpdateResponse struct {
	Success     bool         `json:"success"`
	Application *Application `json:"application"`
	EmailSent   bool         `json:"emailSent"`
	Warning     string       `json:"warning,omitempty"`
}

// StatusEmailInput is the request of the status-email endpoint.
type StatusEmailInput struct {
	ApplicationID string `json:"applicationId"`
	NewStatus     Status `json:"newStatus"`
	InterviewDate string `json:"interviewDate,omitempty"`
	InterviewTime string `json:"interviewTime,omitempty"`
}

type StatusEmailResponse struct {
	Success       bool           `json:"success"`
	Communication *Communication `json:"communication,omitempty"`
}

type ResumeURLResponse struct {
	URL string `json:"url"`
}

// UpdateDetailsInput is an admin edit of notes, tags, rating or priority.
type UpdateDetailsInput struct {
	Priority *string   `json:"priority,omitempty"`
	Rating   *int      `json:"rating,omitempty"`
	Notes    *string   `json:"internal_notes,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}

// Detail is an application joined with its job listing title.
type Detail struct {
	Application
	JobTitle string `json:"job_title"`
}

type ListResponse struct {
	Items []Application `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}
