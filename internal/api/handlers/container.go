package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/pkg/response"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

type Handlers struct {
	Audit       *AuditHandler
	Admin       *AdminHandler
	Application *ApplicationHandler
	Contact     *ContactHandler
	Content     *ContentHandler
	Feed        *FeedHandler
	Router      *gin.Engine
}

func New(svc *application.Services, hub *events.Hub, router *gin.Engine) *Handlers {
	h := &Handlers{
		Audit:       NewAuditHandler(svc.Audit),
		Admin:       NewAdminHandler(svc.Auth),
		Application: NewApplicationHandler(svc.Intake, svc.Workflow, svc.Notifications, svc.Applications),
		Contact:     NewContactHandler(svc.Contact),
		Content:     NewContentHandler(svc.Content),
		Feed:        NewFeedHandler(hub),
		Router:      router,
	}
	return h
}

// actorFrom builds the audit identity of the authenticated request.
func actorFrom(c *gin.Context) application.Actor {
	a := application.Actor{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	if claims, err := utils.GetClaimsFromContext(c); err == nil {
		a.UserID = claims.UserID
		a.Username = claims.Username
	}
	return a
}

// writeServiceError maps service sentinels onto HTTP status codes.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrApplicationNotFound), errors.Is(err, application.ErrNoResume):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrStorage):
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to upload file"})
	case errors.Is(err, application.ErrEmailDelivery):
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to send email"})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Internal server error"})
	}
}
