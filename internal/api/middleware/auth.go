package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/pkg/response"
	"github.com/linskybing/corpsite-go/pkg/types"
	"gorm.io/gorm"
)

// Auth handles authorization middleware
type Auth struct {
	repos *repository.Repos
}

// NewAuth creates a new Auth middleware instance
func NewAuth(repos *repository.Repos) *Auth {
	return &Auth{repos: repos}
}

// Staff admits any active back-office user, admin or recruiter.
func (a *Auth) Staff() gin.HandlerFunc {
	return a.require(func(u admin.User) bool { return true })
}

// Admin admits only users with the admin role.
func (a *Auth) Admin() gin.HandlerFunc {
	return a.require(admin.User.IsAdmin)
}

// require re-reads the user on every request so that deactivation and role
// changes take effect before the token expires.
func (a *Auth) require(allowed func(admin.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("claims")
		claims, ok := val.(*types.Claims)
		if !exists || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}

		u, err := a.repos.Admin.GetByID(claims.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unknown user"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
			return
		}
		if !u.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "account disabled"})
			return
		}
		if !allowed(u) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "admin only"})
			return
		}
		c.Next()
	}
}

// LoggingMiddleware writes one line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http] %s %s %d %s %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}

// CORSMiddleware allows the configured site origins.
func CORSMiddleware() gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(config.CORSAllowedOrigins))
	for _, o := range config.CORSAllowedOrigins {
		allowed[o] = struct{}{}
	}

	corsHandler := cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := allowed["*"]; ok {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return func(c *gin.Context) {
		if c.GetHeader("Upgrade") != "" {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
