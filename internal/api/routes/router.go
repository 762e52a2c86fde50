package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/corpsite-go/internal/api/handlers"
	"github.com/linskybing/corpsite-go/internal/api/middleware"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the public site API, the back-office API and the live feed.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, repos *repository.Repos, limiter middleware.Limiter, db *gorm.DB) {
	authMiddleware := middleware.NewAuth(repos)
	perIP := func(prefix string) gin.HandlerFunc {
		return middleware.RateLimit(limiter, prefix, config.RateLimitRequests, config.RateLimitWindow)
	}
	maxUpload := config.MaxResumeBytes * int64(config.MaxDocuments+1)

	r.GET("/healthz", handlers.Health(db))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/applications", middleware.JWTAuthMiddleware(), authMiddleware.Staff(), h.Feed.Applications)

	api := r.Group("/api")
	{
		api.POST("/applications", perIP("applications"), middleware.SizeLimit(maxUpload), h.Application.Submit)
		api.POST("/contact", perIP("contact"), h.Contact.Submit)

		cms := api.Group("/content")
		{
			cms.GET("/jobs", h.Content.Jobs)
			cms.GET("/jobs/:slug", h.Content.JobBySlug)
			cms.GET("/services", h.Content.Services)
			cms.GET("/services/:slug", h.Content.ServiceBySlug)
			cms.GET("/team", h.Content.Team)
			cms.GET("/partners", h.Content.Partners)
			cms.GET("/testimonials", h.Content.Testimonials)
		}
	}

	api.POST("/admin/login", perIP("login"), h.Admin.Login)
	api.POST("/admin/logout", h.Admin.Logout)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware())
	{
		admin.GET("/me", h.Admin.Me)
		admin.POST("/users", authMiddleware.Admin(), h.Admin.CreateUser)
		admin.GET("/audit/logs", authMiddleware.Admin(), h.Audit.GetAuditLogs)

		apps := admin.Group("/applications", authMiddleware.Staff())
		{
			apps.GET("", h.Application.List)
			apps.PUT("/status", h.Application.UpdateStatus)
			apps.POST("/status-email", h.Application.SendStatusEmail)
			apps.GET("/:id", h.Application.Get)
			apps.PATCH("/:id", h.Application.UpdateDetails)
			apps.GET("/:id/resume", h.Application.ResumeURL)
			apps.GET("/:id/history", h.Audit.ApplicationHistory)
		}
	}
}
