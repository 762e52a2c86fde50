package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/notification"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/internal/repository/mock"
	"github.com/linskybing/corpsite-go/internal/storage"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

var testNow = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

func ptrString(s string) *string { return &s }
func ptrInt(i int) *int          { return &i }

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.Subject)
	}
	return out
}

type fakeStore struct {
	objects map[string][]byte
	failOn  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) (storage.Object, error) {
	if s.failOn != "" && strings.Contains(key, s.failOn) {
		return storage.Object{}, errors.New("bucket unavailable")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return storage.Object{}, err
	}
	s.objects[key] = b
	return storage.Object{Key: key, URL: "http://files.local/" + key, ContentType: contentType, Size: size}, nil
}

func (s *fakeStore) PresignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok && s.failOn != "" {
		return "", errors.New("no such object")
	}
	return "http://files.local/" + key + "?sig=abc", nil
}

type fakeSource struct {
	content.Source
	jobs map[string]content.JobListing
	err  error
}

func (f *fakeSource) JobListingByID(_ context.Context, id string) (*content.JobListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, content.ErrNotFound
	}
	return &j, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	repos     *repository.Repos
	appRepo   *mock.MockApplicationRepo
	auditRepo *mock.MockAuditRepo
	adminRepo *mock.MockAdminRepo
	mailer    *fakeMailer
	store     *fakeStore
	source    *fakeSource
	publisher *recordingPublisher
	audits    *[]utils.AuditEntry
	deps      Deps
}

// newTestEnv wires mocks and fakes. Audit writes are captured synchronously.
func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	env := &testEnv{
		appRepo:   mock.NewMockApplicationRepo(ctrl),
		auditRepo: mock.NewMockAuditRepo(ctrl),
		adminRepo: mock.NewMockAdminRepo(ctrl),
		mailer:    &fakeMailer{},
		store:     newFakeStore(),
		source: &fakeSource{jobs: map[string]content.JobListing{
			"job-1": {ID: "job-1", Title: "Backend Engineer", Slug: "backend-engineer"},
		}},
		publisher: &recordingPublisher{},
	}
	env.repos = &repository.Repos{
		Application: env.appRepo,
		Audit:       env.auditRepo,
		Admin:       env.adminRepo,
	}

	composer := notification.NewComposer("Acme")
	composer.Now = func() time.Time { return testNow }
	env.deps = Deps{
		Mailer:    env.mailer,
		Storage:   env.store,
		Content:   env.source,
		Events:    env.publisher,
		Composer:  composer,
		TeamEmail: "hiring@acme.test",
		Now:       func() time.Time { return testNow },
	}

	var audits []utils.AuditEntry
	env.audits = &audits
	oldAudit := utils.LogAuditAsync
	utils.LogAuditAsync = func(entry utils.AuditEntry, repos repository.AuditRepo) {
		audits = append(audits, entry)
	}
	t.Cleanup(func() { utils.LogAuditAsync = oldAudit })

	return env
}
