package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/pkg/response"
)

type ContentHandler struct {
	svc *application.ContentService
}

func NewContentHandler(svc *application.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

func writeContentError(c *gin.Context, err error) {
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Not found"})
		return
	}
	log.Printf("[content] %s: %v", c.Request.URL.Path, err)
	c.JSON(http.StatusBadGateway, response.ErrorResponse{Error: "Content temporarily unavailable"})
}

// Jobs godoc
// @Summary Active job listings
// @Tags content
// @Produce json
// @Param department query string false "Department filter"
// @Success 200 {array} application.JobListingView
// @Failure 502 {object} response.ErrorResponse "Content temporarily unavailable"
// @Router /content/jobs [get]
func (h *ContentHandler) Jobs(c *gin.Context) {
	jobs, err := h.svc.Jobs(c.Request.Context(), c.Query("department"))
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// JobBySlug godoc
// @Summary One job listing
// @Tags content
// @Produce json
// @Param slug path string true "Job slug"
// @Success 200 {object} application.JobListingView
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /content/jobs/{slug} [get]
func (h *ContentHandler) JobBySlug(c *gin.Context) {
	job, err := h.svc.JobBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Services godoc
// @Summary Service categories
// @Tags content
// @Produce json
// @Success 200 {array} content.ServiceCategory
// @Router /content/services [get]
func (h *ContentHandler) Services(c *gin.Context) {
	out, err := h.svc.ServiceCategories(c.Request.Context())
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ServiceBySlug godoc
// @Summary One service category
// @Tags content
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} content.ServiceCategory
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /content/services/{slug} [get]
func (h *ContentHandler) ServiceBySlug(c *gin.Context) {
	out, err := h.svc.ServiceCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Team godoc
// @Summary Team members
// @Tags content
// @Produce json
// @Success 200 {array} content.TeamMember
// @Router /content/team [get]
func (h *ContentHandler) Team(c *gin.Context) {
	out, err := h.svc.TeamMembers(c.Request.Context())
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Partners godoc
// @Summary Partners
// @Tags content
// @Produce json
// @Success 200 {array} content.Partner
// @Router /content/partners [get]
func (h *ContentHandler) Partners(c *gin.Context) {
	out, err := h.svc.Partners(c.Request.Context())
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Testimonials godoc
// @Summary Testimonials
// @Tags content
// @Produce json
// @Success 200 {array} content.Testimonial
// @Router /content/testimonials [get]
func (h *ContentHandler) Testimonials(c *gin.Context) {
	out, err := h.svc.Testimonials(c.Request.Context())
	if err != nil {
		writeContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
