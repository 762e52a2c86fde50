package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestActorFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("PUT", "/api/admin/applications/status", nil)
	c.Request.Header.Set("User-Agent", "back-office")
	c.Set("claims", &types.Claims{UserID: 7, Username: "recruiter"})

	a := actorFrom(c)
	assert.Equal(t, uint(7), a.UserID)
	assert.Equal(t, "recruiter", a.Username)
	assert.Equal(t, "back-office", a.UserAgent)

	anon, _ := gin.CreateTestContext(httptest.NewRecorder())
	anon.Request = httptest.NewRequest("PUT", "/", nil)
	assert.Zero(t, actorFrom(anon).UserID)
}
