package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/cms"
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/internal/repository/mock"
	"github.com/linskybing/corpsite-go/internal/storage"
	"github.com/linskybing/corpsite-go/pkg/response"
	"github.com/linskybing/corpsite-go/pkg/types"
	"github.com/linskybing/corpsite-go/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const contentFixture = `
job_listings:
  - id: job-1
    title: Backend Engineer
    slug: backend-engineer
    department: Engineering
    description: "Build **APIs**"
    is_active: true
    order: 1
team_members:
  - id: tm1
    name: Ada
    role: CTO
    order: 1
`

type memMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *memMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	router    *gin.Engine
	appRepo   *mock.MockApplicationRepo
	adminRepo *mock.MockAdminRepo
	mailer    *memMailer
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	src, err := cms.ParseFileSource([]byte(contentFixture))
	require.NoError(t, err)

	ts := &testServer{
		appRepo:   mock.NewMockApplicationRepo(ctrl),
		adminRepo: mock.NewMockAdminRepo(ctrl),
		mailer:    &memMailer{},
	}
	repos := &repository.Repos{
		Application: ts.appRepo,
		Admin:       ts.adminRepo,
		Audit:       mock.NewMockAuditRepo(ctrl),
	}

	oldAudit := utils.LogAuditAsync
	utils.LogAuditAsync = func(utils.AuditEntry, repository.AuditRepo) {}
	t.Cleanup(func() { utils.LogAuditAsync = oldAudit })

	svc := application.New(repos, application.Deps{
		Mailer:    ts.mailer,
		Storage:   &memStore{},
		Content:   src,
		TeamEmail: "hiring@acme.test",
	})

	r := gin.New()
	h := New(svc, nil, r)
	staff := func(c *gin.Context) {
		c.Set("claims", &types.Claims{UserID: 7, Username: "recruiter", Role: "recruiter"})
		c.Next()
	}

	r.GET("/healthz", Health(nil))
	r.POST("/api/applications", h.Application.Submit)
	r.POST("/api/contact", h.Contact.Submit)
	r.GET("/api/content/jobs", h.Content.Jobs)
	r.GET("/api/content/jobs/:slug", h.Content.JobBySlug)
	r.GET("/api/content/team", h.Content.Team)
	r.POST("/api/admin/login", h.Admin.Login)
	backOffice := r.Group("/api/admin", staff)
	backOffice.PUT("/applications/status", h.Application.UpdateStatus)
	backOffice.POST("/applications/status-email", h.Application.SendStatusEmail)
	backOffice.GET("/applications/:id/resume", h.Application.ResumeURL)
	ts.router = r
	return ts
}

func (ts *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, fields map[string]string, resumeName string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if resumeName != "" {
		part, err := writer.CreateFormFile("resume", resumeName)
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4 resume"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e.Error
}

func storedApplication(status jobapp.Status) *jobapp.Application {
	return &jobapp.Application{
		ID:             uuid.New(),
		JobListingID:   "job-1",
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		Status:         status,
		Priority:       jobapp.PriorityMedium,
	}
}

// --------------------- Submissions ---------------------

func TestSubmit_Success(t *testing.T) {
	ts := newTestServer(t)
	ts.appRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	w := ts.do(t, multipartRequest(t, map[string]string{
		"jobListingId":   "job-1",
		"candidateName":  "Jane Doe",
		"candidateEmail": "jane@example.com",
		"gdprConsent":    "true",
		"skills":         "go, sql",
	}, "cv.pdf"))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp jobapp.SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	_, err := uuid.Parse(resp.ApplicationID)
	assert.NoError(t, err)
	assert.Len(t, ts.mailer.sent, 2)
}

func TestSubmit_MissingConsent(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, multipartRequest(t, map[string]string{
		"jobListingId":   "job-1",
		"candidateName":  "Jane Doe",
		"candidateEmail": "jane@example.com",
	}, "cv.pdf"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ts.mailer.sent)
}

func TestSubmit_MissingResume(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, multipartRequest(t, map[string]string{
		"jobListingId":   "job-1",
		"candidateName":  "Jane Doe",
		"candidateEmail": "jane@example.com",
		"gdprConsent":    "on",
	}, ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit_BadExperienceYears(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, multipartRequest(t, map[string]string{
		"jobListingId":    "job-1",
		"candidateName":   "Jane Doe",
		"candidateEmail":  "jane@example.com",
		"gdprConsent":     "true",
		"experienceYears": "many",
	}, "cv.pdf"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorOf(t, w), "experienceYears")
}

// --------------------- Contact ---------------------

func TestContact(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, jsonRequest(t, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Sam",
		"email":   "sam@example.com",
		"message": "We would like a quote for a new site.",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, ts.mailer.sent, 2)

	w = ts.do(t, jsonRequest(t, http.MethodPost, "/api/contact", map[string]string{
		"name":  "S",
		"email": "not-an-email",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContact_MailFailureStillSucceeds(t *testing.T) {
	ts := newTestServer(t)
	ts.mailer.err = errors.New("smtp down")

	w := ts.do(t, jsonRequest(t, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Sam",
		"email":   "sam@example.com",
		"message": "We would like a quote for a new site.",
	}))
	assert.Equal(t, http.StatusOK, w.Code)
}

// --------------------- Content ---------------------

func TestContent_Jobs(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/content/jobs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var jobs []application.JobListingView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	require.Len(t, jobs, 1)
	assert.Contains(t, jobs[0].DescriptionHTML, "<strong>APIs</strong>")

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/content/jobs?department=Design", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestContent_JobBySlugNotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/content/jobs/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/content/team", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")
}

// --------------------- Back-office ---------------------

func TestUpdateStatus_Handler(t *testing.T) {
	ts := newTestServer(t)
	app := storedApplication(jobapp.StatusNew)
	ts.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
	ts.appRepo.EXPECT().UpdateStatus(gomock.Any(), app.ID, gomock.Any()).Return(nil)

	w := ts.do(t, jsonRequest(t, http.MethodPut, "/api/admin/applications/status", map[string]any{
		"applicationId": app.ID.String(),
		"newStatus":     "reviewing",
	}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp jobapp.StatusUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.EmailSent)
	assert.Equal(t, jobapp.StatusReviewing, resp.Application.Status)
}

func TestUpdateStatus_Handler_Errors(t *testing.T) {
	ts := newTestServer(t)
	missing := uuid.New()
	ts.appRepo.EXPECT().GetByID(gomock.Any(), missing).Return(nil, gorm.ErrRecordNotFound)

	w := ts.do(t, jsonRequest(t, http.MethodPut, "/api/admin/applications/status", map[string]any{
		"applicationId": missing.String(),
		"newStatus":     "reviewing",
	}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, jsonRequest(t, http.MethodPut, "/api/admin/applications/status", map[string]any{
		"applicationId": missing.String(),
		"newStatus":     "promoted",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/applications/status", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w = ts.do(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendStatusEmail_Handler(t *testing.T) {
	ts := newTestServer(t)
	app := storedApplication(jobapp.StatusShortlisted)
	ts.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil).Times(2)
	ts.appRepo.EXPECT().AppendCommunication(gomock.Any(), app.ID, gomock.Any()).Return(nil)

	body := map[string]any{"applicationId": app.ID.String(), "newStatus": "shortlisted"}
	w := ts.do(t, jsonRequest(t, http.MethodPost, "/api/admin/applications/status-email", body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp jobapp.StatusEmailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Communication)
	assert.Equal(t, jobapp.CommunicationStatusUpdateEmail, resp.Communication.Type)
	assert.Equal(t, jobapp.StatusShortlisted, resp.Communication.Status)

	ts.mailer.err = errors.New("smtp down")
	w = ts.do(t, jsonRequest(t, http.MethodPost, "/api/admin/applications/status-email", body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send email", errorOf(t, w))
}

func TestResumeURL_NoResume(t *testing.T) {
	ts := newTestServer(t)
	app := storedApplication(jobapp.StatusNew)
	ts.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/applications/"+app.ID.String()+"/resume", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.adminRepo.EXPECT().GetByUsername("ghost").Return(gormUserNotFound())

	w := ts.do(t, jsonRequest(t, http.MethodPost, "/api/admin/login", map[string]string{
		"username": "ghost",
		"password": "whatever",
	}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, jsonRequest(t, http.MethodPost, "/api/admin/login", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type memStore struct{}

func (memStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) (storage.Object, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return storage.Object{}, err
	}
	return storage.Object{Key: key, URL: "http://files.local/" + key, ContentType: contentType, Size: size}, nil
}

func (memStore) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://files.local/" + key + "?sig=1", nil
}

func gormUserNotFound() (admin.User, error) {
	return admin.User{}, gorm.ErrRecordNotFound
}

func TestHealth_NoDatabase(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
