// Package notification builds the outbound emails of the careers site.
// Every function here is pure: no I/O, and the only time dependency is the
// injectable clock used for dates embedded in offer letters.
package notification

import (
	"bytes"
	"html"
	"log"
	"strings"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
)

const (
	displayDateLayout = "Monday, January 2, 2006"
	inputDateLayout   = "2006-01-02"
)

// Email is a composed message.
type Email struct {
	Subject string
	HTML    string
}

// StatusData is what a status-change email is built from.
type StatusData struct {
	CandidateName string
	PositionTitle string
	InterviewDate string
	InterviewTime string
}

type ApplicationData struct {
	ApplicationID  string
	CandidateName  string
	CandidateEmail string
	PositionTitle  string
	ResumeURL      string
}

type ContactData struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Service string
	Message string
}

type Composer struct {
	Company string
	Now     func() time.Time
}

func NewComposer(company string) *Composer {
	return &Composer{Company: company, Now: time.Now}
}

type statusView struct {
	Company       string
	CandidateName string
	PositionTitle string
	Status        string
	InterviewDate string
	InterviewTime string
	HasSchedule   bool
	Today         string
}

// ComposeStatus selects the template for status. Unknown statuses get a
// generic update message instead of an error.
func (c *Composer) ComposeStatus(status jobapp.Status, d StatusData) Email {
	view := statusView{
		Company:       c.Company,
		CandidateName: d.CandidateName,
		PositionTitle: d.PositionTitle,
		Status:        string(status),
	}

	var subject, tmpl string
	switch status {
	case jobapp.StatusNew:
		subject = "Application received: " + d.PositionTitle
		tmpl = string(status)
	case jobapp.StatusReviewing:
		subject = "Your application is being reviewed: " + d.PositionTitle
		tmpl = string(status)
	case jobapp.StatusShortlisted:
		subject = "You have been shortlisted: " + d.PositionTitle
		tmpl = string(status)
	case jobapp.StatusInterviewing:
		subject = "Interview invitation: " + d.PositionTitle
		tmpl = string(status)
		if d.InterviewDate != "" && d.InterviewTime != "" {
			view.HasSchedule = true
			view.InterviewDate = FormatInterviewDate(d.InterviewDate)
			view.InterviewTime = d.InterviewTime
		}
	case jobapp.StatusOffered:
		subject = "Job offer: " + d.PositionTitle
		tmpl = string(status)
		view.Today = c.now().Format(displayDateLayout)
	case jobapp.StatusHired:
		subject = "Welcome to " + c.Company
		tmpl = string(status)
	case jobapp.StatusRejected:
		subject = "Update on your application: " + d.PositionTitle
		tmpl = string(status)
	case jobapp.StatusWithdrawn:
		subject = "Application withdrawn: " + d.PositionTitle
		tmpl = string(status)
	default:
		subject = "Application status update: " + d.PositionTitle
		tmpl = defaultTemplate
	}

	return Email{Subject: subject, HTML: render(tmpl, view)}
}

// ComposeConfirmation is sent to the candidate right after submission.
func (c *Composer) ComposeConfirmation(d ApplicationData) Email {
	return Email{
		Subject: "We received your application: " + d.PositionTitle,
		HTML:    render(confirmationTemplate, c.applicationView(d)),
	}
}

// ComposeTeamAlert is sent to the internal hiring inbox.
func (c *Composer) ComposeTeamAlert(d ApplicationData) Email {
	return Email{
		Subject: "New application: " + d.CandidateName + " for " + d.PositionTitle,
		HTML:    render(teamAlertTemplate, c.applicationView(d)),
	}
}

func (c *Composer) ComposeContactInternal(d ContactData) Email {
	subject := "New contact request from " + d.Name
	if d.Company != "" {
		subject += " (" + d.Company + ")"
	}
	return Email{Subject: subject, HTML: render(contactInternalTemplate, c.contactView(d))}
}

func (c *Composer) ComposeContactConfirmation(d ContactData) Email {
	return Email{
		Subject: "Thank you for contacting " + c.Company,
		HTML:    render(contactConfirmationTemplate, c.contactView(d)),
	}
}

// FormatInterviewDate renders YYYY-MM-DD as a long date; other input is returned as-is.
func FormatInterviewDate(date string) string {
	t, err := time.Parse(inputDateLayout, strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return t.Format(displayDateLayout)
}

type applicationView struct {
	ApplicationData
	Company string
}

type contactView struct {
	ContactData
	Company string
}

func (c *Composer) applicationView(d ApplicationData) applicationView {
	return applicationView{ApplicationData: d, Company: c.Company}
}

func (c *Composer) contactView(d ContactData) contactView {
	return contactView{ContactData: d, Company: c.Company}
}

func (c *Composer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("[notification] render %s: %v", name, err)
		return "<p>" + html.EscapeString(name) + "</p>"
	}
	return buf.String()
}
