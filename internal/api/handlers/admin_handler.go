package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/pkg/response"
	"github.com/linskybing/corpsite-go/pkg/utils"
)

type AdminHandler struct {
	svc *application.AuthService
}

func NewAdminHandler(svc *application.AuthService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Login godoc
// @Summary Back-office login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body admin.LoginInput true "Credentials"
// @Success 200 {object} admin.TokenResponse "JWT token and user info"
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 401 {object} response.ErrorResponse "Invalid username or password"
// @Failure 403 {object} response.ErrorResponse "Account disabled"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var input admin.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	usr, token, err := h.svc.Login(input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to generate token"})
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(config.TokenTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, admin.TokenResponse{
		Token:    token,
		UserID:   usr.ID,
		Username: usr.Username,
		Role:     usr.Role,
	})
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary Current back-office user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} admin.User
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Router /admin/me [get]
func (h *AdminHandler) Me(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	usr, err := h.svc.Me(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// CreateUser godoc
// @Summary Create a back-office user
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body admin.CreateUserInput true "New user"
// @Success 201 {object} admin.User
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 409 {object} response.ErrorResponse "Username already taken"
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input admin.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	usr, err := h.svc.CreateUser(input)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUsernameTaken):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrValidation):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, usr)
}
