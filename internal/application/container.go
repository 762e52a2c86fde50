package application

import (
	"time"

	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/notification"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/internal/storage"
)

// Deps are the outbound adapters shared by the services.
type Deps struct {
	Mailer    mailer.Mailer
	Storage   storage.BlobStore
	Content   content.Source
	Events    events.Publisher
	Composer  *notification.Composer
	TeamEmail string
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Mailer == nil {
		d.Mailer = mailer.LogMailer{}
	}
	if d.Events == nil {
		d.Events = noopPublisher{}
	}
	if d.Composer == nil {
		d.Composer = notification.NewComposer(config.CompanyName)
	}
	if d.TeamEmail == "" {
		d.TeamEmail = config.TeamEmail
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// Actor identifies the back-office user behind a mutation.
type Actor struct {
	UserID    uint
	Username  string
	IP        string
	UserAgent string
}

type Services struct {
	Audit         *AuditService
	Auth          *AuthService
	Applications  *ApplicationService
	Workflow      *WorkflowService
	Notifications *NotificationService
	Intake        *IntakeService
	Contact       *ContactService
	Content       *ContentService
}

func New(repos *repository.Repos, deps Deps) *Services {
	deps = deps.withDefaults()
	notifications := NewNotificationService(repos, deps)
	return &Services{
		Audit:         NewAuditService(repos),
		Auth:          NewAuthService(repos),
		Applications:  NewApplicationService(repos, deps),
		Workflow:      NewWorkflowService(repos, notifications, deps),
		Notifications: notifications,
		Intake:        NewIntakeService(repos, deps),
		Contact:       NewContactService(deps),
		Content:       NewContentService(deps.Content),
	}
}
