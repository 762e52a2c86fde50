package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer() *Composer {
	c := NewComposer("Acme")
	c.Now = func() time.Time { return time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC) }
	return c
}

func TestComposeStatus_EveryStatusMentionsCandidateAndPosition(t *testing.T) {
	c := newTestComposer()
	data := StatusData{CandidateName: "Jane Doe", PositionTitle: "Backend Engineer"}

	for _, status := range jobapp.Statuses {
		t.Run(string(status), func(t *testing.T) {
			email := c.ComposeStatus(status, data)
			assert.NotEmpty(t, email.Subject)
			require.NotEmpty(t, email.HTML)
			assert.Contains(t, email.HTML, "Jane Doe")
			assert.Contains(t, email.HTML, "Backend Engineer")
		})
	}
}

func TestComposeStatus_UnknownStatusUsesDefault(t *testing.T) {
	c := newTestComposer()
	email := c.ComposeStatus(jobapp.Status("on_hold"), StatusData{CandidateName: "Jane Doe", PositionTitle: "Designer"})

	assert.Equal(t, "Application status update: Designer", email.Subject)
	assert.Contains(t, email.HTML, "on_hold")
	assert.Contains(t, email.HTML, "Jane Doe")
}

func TestComposeStatus_InterviewWithSchedule(t *testing.T) {
	c := newTestComposer()
	email := c.ComposeStatus(jobapp.StatusInterviewing, StatusData{
		CandidateName: "Jane Doe",
		PositionTitle: "Backend Engineer",
		InterviewDate: "2026-11-03",
		InterviewTime: "14:30 CET",
	})

	assert.Contains(t, email.HTML, "Tuesday, November 3, 2026")
	assert.Contains(t, email.HTML, "14:30 CET")
	assert.NotContains(t, email.HTML, "to be determined")
}

func TestComposeStatus_InterviewMissingScheduleFallsBack(t *testing.T) {
	c := newTestComposer()
	cases := []StatusData{
		{CandidateName: "Jane Doe", PositionTitle: "QA", InterviewDate: "2026-11-03"},
		{CandidateName: "Jane Doe", PositionTitle: "QA", InterviewTime: "09:00"},
		{CandidateName: "Jane Doe", PositionTitle: "QA"},
	}
	for _, d := range cases {
		email := c.ComposeStatus(jobapp.StatusInterviewing, d)
		assert.Contains(t, email.HTML, "to be determined")
	}
}

func TestComposeStatus_OfferEmbedsCurrentDate(t *testing.T) {
	c := newTestComposer()
	email := c.ComposeStatus(jobapp.StatusOffered, StatusData{CandidateName: "Jane Doe", PositionTitle: "QA"})
	assert.Contains(t, email.HTML, "Wednesday, March 4, 2026")
}

func TestComposeStatus_EscapesCandidateInput(t *testing.T) {
	c := newTestComposer()
	email := c.ComposeStatus(jobapp.StatusReviewing, StatusData{
		CandidateName: "<script>alert(1)</script>",
		PositionTitle: "QA",
	})
	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
}

func TestFormatInterviewDate(t *testing.T) {
	assert.Equal(t, "Tuesday, November 3, 2026", FormatInterviewDate("2026-11-03"))
	assert.Equal(t, "next week", FormatInterviewDate("next week"))
}

func TestComposeApplicationEmails(t *testing.T) {
	c := newTestComposer()
	d := ApplicationData{
		ApplicationID:  "a1b2",
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		PositionTitle:  "Backend Engineer",
		ResumeURL:      "http://files/resume.pdf",
	}

	confirmation := c.ComposeConfirmation(d)
	assert.Contains(t, confirmation.Subject, "Backend Engineer")
	assert.Contains(t, confirmation.HTML, "a1b2")

	alert := c.ComposeTeamAlert(d)
	assert.Equal(t, "New application: Jane Doe for Backend Engineer", alert.Subject)
	assert.Contains(t, alert.HTML, "jane@example.com")
	assert.Contains(t, alert.HTML, "http://files/resume.pdf")
}

func TestComposeContactEmails(t *testing.T) {
	c := newTestComposer()
	d := ContactData{Name: "Sam", Email: "sam@example.com", Company: "Globex", Message: "We need a new website."}

	internal := c.ComposeContactInternal(d)
	assert.Equal(t, "New contact request from Sam (Globex)", internal.Subject)
	assert.Contains(t, internal.HTML, "We need a new website.")
	assert.False(t, strings.Contains(internal.HTML, "Phone:"))

	confirmation := c.ComposeContactConfirmation(d)
	assert.Equal(t, "Thank you for contacting Acme", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "Sam")
}
