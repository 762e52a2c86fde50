package notification

import "html/template"

const layout = `{{define "layout"}}<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #222; max-width: 600px; margin: 0 auto;">
{{template "content" .}}
<p style="margin-top: 32px;">Best regards,<br>The {{.Company}} Team</p>
</body>
</html>{{end}}`

var statusBodies = map[string]string{
	"new": `{{define "content"}}<h2>Application received</h2>
<p>Dear {{.CandidateName}},</p>
<p>Thank you for applying for the <strong>{{.PositionTitle}}</strong> position. Your application has been registered and will be reviewed by our team.</p>{{end}}`,

	"reviewing": `{{define "content"}}<h2>Your application is under review</h2>
<p>Dear {{.CandidateName}},</p>
<p>Our hiring team has started reviewing your application for the <strong>{{.PositionTitle}}</strong> position. We will get back to you as soon as possible.</p>{{end}}`,

	"shortlisted": `{{define "content"}}<h2>Good news: you have been shortlisted</h2>
<p>Dear {{.CandidateName}},</p>
<p>We are pleased to let you know that your application for the <strong>{{.PositionTitle}}</strong> position has been shortlisted. A member of our team will contact you shortly about next steps.</p>{{end}}`,

	"interviewing": `{{define "content"}}<h2>Interview invitation</h2>
<p>Dear {{.CandidateName}},</p>
<p>We would like to invite you to an interview for the <strong>{{.PositionTitle}}</strong> position.</p>
{{if .HasSchedule}}<p><strong>Date:</strong> {{.InterviewDate}}<br><strong>Time:</strong> {{.InterviewTime}}</p>
<p>Please reply to this email to confirm your availability.</p>{{else}}<p>The interview date and time are to be determined. We will contact you shortly to agree on a schedule.</p>{{end}}{{end}}`,

	"offered": `{{define "content"}}<h2>Job offer</h2>
<p>Dear {{.CandidateName}},</p>
<p>Congratulations! We are delighted to offer you the <strong>{{.PositionTitle}}</strong> position. You will receive the formal offer documents separately.</p>
<p>Offer date: {{.Today}}</p>{{end}}`,

	"hired": `{{define "content"}}<h2>Welcome aboard</h2>
<p>Dear {{.CandidateName}},</p>
<p>Welcome to the team! We are excited to have you join us as <strong>{{.PositionTitle}}</strong>. Our HR team will reach out with onboarding details.</p>{{end}}`,

	"rejected": `{{define "content"}}<h2>Update on your application</h2>
<p>Dear {{.CandidateName}},</p>
<p>Thank you for your interest in the <strong>{{.PositionTitle}}</strong> position and for the time you invested in the process. After careful consideration we have decided to move forward with other candidates.</p>
<p>We will keep your details on file and encourage you to apply for future openings.</p>{{end}}`,

	"withdrawn": `{{define "content"}}<h2>Application withdrawn</h2>
<p>Dear {{.CandidateName}},</p>
<p>This confirms that your application for the <strong>{{.PositionTitle}}</strong> position has been withdrawn. You are welcome to apply again at any time.</p>{{end}}`,

	defaultTemplate: `{{define "content"}}<h2>Application status update</h2>
<p>Dear {{.CandidateName}},</p>
<p>The status of your application for the <strong>{{.PositionTitle}}</strong> position has been updated to <strong>{{.Status}}</strong>.</p>{{end}}`,

	confirmationTemplate: `{{define "content"}}<h2>Thank you for your application</h2>
<p>Dear {{.CandidateName}},</p>
<p>We have received your application for the <strong>{{.PositionTitle}}</strong> position. Our team reviews every application carefully and will contact you if your profile matches our needs.</p>
<p>Reference: {{.ApplicationID}}</p>{{end}}`,

	teamAlertTemplate: `{{define "content"}}<h2>New job application</h2>
<p><strong>Position:</strong> {{.PositionTitle}}</p>
<p><strong>Candidate:</strong> {{.CandidateName}} &lt;{{.CandidateEmail}}&gt;</p>
<p><strong>Application ID:</strong> {{.ApplicationID}}</p>
{{if .ResumeURL}}<p><strong>Resume:</strong> {{.ResumeURL}}</p>{{end}}{{end}}`,

	contactInternalTemplate: `{{define "content"}}<h2>New contact form submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
{{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
{{if .Service}}<p><strong>Service:</strong> {{.Service}}</p>{{end}}
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap;">{{.Message}}</p>{{end}}`,

	contactConfirmationTemplate: `{{define "content"}}<h2>Thank you for contacting us</h2>
<p>Dear {{.Name}},</p>
<p>We have received your message and will get back to you within two business days.</p>
<p style="white-space: pre-wrap; color: #555;">{{.Message}}</p>{{end}}`,
}

const (
	defaultTemplate             = "default"
	confirmationTemplate        = "application_confirmation"
	teamAlertTemplate           = "application_team_alert"
	contactInternalTemplate     = "contact_internal"
	contactConfirmationTemplate = "contact_confirmation"
)

var templates = parseTemplates()

func parseTemplates() map[string]*template.Template {
	out := make(map[string]*template.Template, len(statusBodies))
	for name, body := range statusBodies {
		t := template.Must(template.New(name).Parse(layout))
		out[name] = template.Must(t.Parse(body))
	}
	return out
}
