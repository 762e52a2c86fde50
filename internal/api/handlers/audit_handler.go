package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/pkg/response"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary      Query audit logs
// @Description  Retrieve audit logs filtered by optional parameters like user_id, resource_type, resource_id, action, time range, with pagination support.
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        user_id       query     uint     false  "User ID to filter logs by user" example(3)
// @Param        resource_type query     string   false  "Resource type to filter" example("job_application")
// @Param        resource_id   query     string   false  "Resource id to filter"
// @Param        action        query     string   false  "Action type to filter" example("status_change")
// @Param        start_time    query     string   false  "Start time in RFC3339 format" example("2026-01-01T00:00:00Z")
// @Param        end_time      query     string   false  "End time in RFC3339 format" example("2026-02-01T00:00:00Z")
// @Param        limit         query     int      false  "Max number of records to return (default 100, max 500)" example(100)
// @Param        offset        query     int      false  "Offset for pagination (default 0)" example(0)
// @Success      200 {array}   audit.AuditLog         "List of audit logs"
// @Failure      400 {object}  response.ErrorResponse "Invalid query parameters"
// @Failure      500 {object}  response.ErrorResponse "Internal server error"
// @Router       /admin/audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var params repository.AuditQueryParams

	if uid, err := utils.ParseQueryUintParam(c, "user_id"); err != nil {
		if !errors.Is(err, utils.ErrEmptyParameter) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user_id"})
			return
		}
	} else {
		params.UserID = &uid
	}

	if rt := c.Query("resource_type"); rt != "" {
		params.ResourceType = &rt
	}
	if rid := c.Query("resource_id"); rid != "" {
		params.ResourceID = &rid
	}
	if act := c.Query("action"); act != "" {
		params.Action = &act
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"start_time", &params.StartTime}, {"end_time", &params.EndTime}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid " + p.name})
			return
		}
		*p.dst = &t
	}

	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	params.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.svc.QueryAuditLogs(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// ApplicationHistory godoc
// @Summary      Audit trail of one application
// @Description  Entries are returned oldest first.
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Application id"
// @Success      200 {array}  audit.AuditLog
// @Failure      400 {object} response.ErrorResponse "Invalid id"
// @Router       /admin/applications/{id}/history [get]
func (h *AuditHandler) ApplicationHistory(c *gin.Context) {
	id, err := application.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	logs, err := h.svc.ApplicationHistory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
