package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/linskybing/corpsite-go/pkg/response"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

type ApplicationHandler struct {
	intake        *application.IntakeService
	workflow      *application.WorkflowService
	notifications *application.NotificationService
	applications  *application.ApplicationService
}

func NewApplicationHandler(
	intake *application.IntakeService,
	workflow *application.WorkflowService,
	notifications *application.NotificationService,
	applications *application.ApplicationService,
) *ApplicationHandler {
	return &ApplicationHandler{
		intake:        intake,
		workflow:      workflow,
		notifications: notifications,
		applications:  applications,
	}
}

// Submit godoc
// @Summary Submit a job application
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param jobListingId formData string true "Job listing id"
// @Param candidateName formData string true "Full name"
// @Param candidateEmail formData string true "Email"
// @Param gdprConsent formData bool true "Consent to data processing"
// @Param resume formData file true "Resume (PDF, DOC or DOCX)"
// @Param documents formData file false "Additional documents"
// @Success 200 {object} jobapp.SubmissionResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 413 {object} response.ErrorResponse "Upload too large"
// @Failure 429 {object} response.ErrorResponse "Too many requests"
// @Failure 500 {object} response.ErrorResponse "Failed to store application"
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var form jobapp.SubmissionForm
	if err := c.ShouldBindWith(&form, binding.FormMultipart); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{Error: "Upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form data"})
		return
	}

	input, closers, err := submissionInput(form)
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	app, err := h.intake.Submit(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, application.ErrValidation) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[applications] submit failed: %v", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobapp.SubmissionResponse{Success: true, ApplicationID: app.ID.String()})
}

// UpdateStatus godoc
// @Summary Change the pipeline status of an application
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body jobapp.StatusUpdateInput true "Status update"
// @Success 200 {object} jobapp.StatusUpdateResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 404 {object} response.ErrorResponse "Application not found"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /admin/applications/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var input jobapp.StatusUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	resp, err := h.workflow.UpdateStatus(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendStatusEmail godoc
// @Summary Email the candidate about a status
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body jobapp.StatusEmailInput true "Status email"
// @Success 200 {object} jobapp.StatusEmailResponse
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 404 {object} response.ErrorResponse "Application not found"
// @Failure 500 {object} response.ErrorResponse "Failed to send email"
// @Router /admin/applications/status-email [post]
func (h *ApplicationHandler) SendStatusEmail(c *gin.Context) {
	var input jobapp.StatusEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	entry, err := h.notifications.SendStatusEmail(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobapp.StatusEmailResponse{Success: true, Communication: entry})
}

// List godoc
// @Summary List applications
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param job_listing_id query string false "Job listing filter"
// @Param search query string false "Search in name and email"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} jobapp.ListResponse
// @Failure 400 {object} response.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /admin/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	resp, err := h.applications.List(c.Request.Context(), application.ListFilter{
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		JobListingID: c.Query("job_listing_id"),
		Search:       c.Query("search"),
		Page:         utils.QueryInt(c, "page", 1),
		Limit:        utils.QueryInt(c, "limit", application.DefaultPageSize),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one application
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} jobapp.Detail
// @Failure 400 {object} response.ErrorResponse "Invalid id"
// @Failure 404 {object} response.ErrorResponse "Application not found"
// @Router /admin/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	detail, err := h.applications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateDetails godoc
// @Summary Edit notes, tags, rating or priority
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application id"
// @Param input body jobapp.UpdateDetailsInput true "Fields to change"
// @Success 200 {object} jobapp.Application
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 404 {object} response.ErrorResponse "Application not found"
// @Router /admin/applications/{id} [patch]
func (h *ApplicationHandler) UpdateDetails(c *gin.Context) {
	var input jobapp.UpdateDetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	app, err := h.applications.UpdateDetails(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ResumeURL godoc
// @Summary Short-lived resume download link
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application id"
// @Success 200 {object} jobapp.ResumeURLResponse
// @Failure 404 {object} response.ErrorResponse "Application or resume not found"
// @Failure 500 {object} response.ErrorResponse "Storage error"
// @Router /admin/applications/{id}/resume [get]
func (h *ApplicationHandler) ResumeURL(c *gin.Context) {
	url, err := h.applications.ResumeURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobapp.ResumeURLResponse{URL: url})
}

// submissionInput converts the multipart form. The returned files must be
// closed by the caller even when an error is returned.
func submissionInput(form jobapp.SubmissionForm) (jobapp.SubmissionInput, []multipart.File, error) {
	var opened []multipart.File
	input := jobapp.SubmissionInput{
		JobListingID:    form.JobListingID,
		CandidateName:   form.CandidateName,
		CandidateEmail:  form.CandidateEmail,
		CandidatePhone:  form.CandidatePhone,
		LinkedInURL:     form.LinkedInURL,
		GitHubURL:       form.GitHubURL,
		PortfolioURL:    form.PortfolioURL,
		Location:        form.Location,
		CoverLetter:     form.CoverLetter,
		CurrentCompany:  form.CurrentCompany,
		CurrentPosition: form.CurrentPosition,
		ExpectedSalary:  form.ExpectedSalary,
		NoticePeriod:    form.NoticePeriod,
		GDPRConsent:     parseConsent(form.GDPRConsent),
	}
	if form.Skills != "" {
		input.Skills = strings.Split(form.Skills, ",")
	}
	if v := strings.TrimSpace(form.ExperienceYears); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, opened, errors.New("experienceYears must be a number")
		}
		input.ExperienceYears = &n
	}

	if form.Resume != nil {
		f, err := form.Resume.Open()
		if err != nil {
			return input, opened, errors.New("could not read resume")
		}
		opened = append(opened, f)
		input.Resume = fileUpload(form.Resume, f)
	}
	for _, fh := range form.Documents {
		f, err := fh.Open()
		if err != nil {
			continue
		}
		opened = append(opened, f)
		input.Documents = append(input.Documents, *fileUpload(fh, f))
	}
	return input, opened, nil
}

func fileUpload(fh *multipart.FileHeader, f multipart.File) *jobapp.FileUpload {
	return &jobapp.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
}

func parseConsent(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
