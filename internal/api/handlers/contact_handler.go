package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/domain/contact"
	"github.com/linskybing/corpsite-go/pkg/response"
)

type ContactHandler struct {
	svc *application.ContactService
}

func NewContactHandler(svc *application.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit godoc
// @Summary Send the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param input body contact.Request true "Contact form"
// @Success 200 {object} contact.Response
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 429 {object} response.ErrorResponse "Too many requests"
// @Router /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	if err := h.svc.Submit(c.Request.Context(), req); err != nil {
		if errors.Is(err, application.ErrValidation) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[contact] submit: %v", err)
	}
	c.JSON(http.StatusOK, contact.Response{Success: true, Message: "Thank you, we will be in touch shortly."})
}
