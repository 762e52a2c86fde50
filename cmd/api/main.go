package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/linskybing/corpsite-go/docs"
	"github.com/linskybing/corpsite-go/internal/api/handlers"
	"github.com/linskybing/corpsite-go/internal/api/middleware"
	"github.com/linskybing/corpsite-go/internal/api/routes"
	"github.com/linskybing/corpsite-go/internal/application"
	"github.com/linskybing/corpsite-go/internal/cms"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/config/db"
	"github.com/linskybing/corpsite-go/internal/cron"
	"github.com/linskybing/corpsite-go/internal/domain/content"
	"github.com/linskybing/corpsite-go/internal/events"
	"github.com/linskybing/corpsite-go/internal/mailer"
	"github.com/linskybing/corpsite-go/internal/repository"
	"github.com/linskybing/corpsite-go/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection
	db.Init()

	// Auto migrate database schemas
	if err := db.DB.AutoMigrate(repository.Models()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if config.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Warning: Redis unreachable at %s: %v", config.RedisAddr, err)
		}
		defer rdb.Close()
	}

	blobs := initStorage(ctx)
	hub := events.NewHub(64)
	repos := repository.NewRepositories(db.DB)
	services := application.New(repos, application.Deps{
		Mailer:  initMailer(),
		Storage: blobs,
		Content: initContent(rdb),
		Events:  hub,
	})

	// Start background tasks
	cron.StartCleanupTask(ctx, services.Audit, config.AuditRetentionDays)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, handlers.New(services, hub, router), repos, initLimiter(ctx, rdb), db.DB)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

func initStorage(ctx context.Context) storage.BlobStore {
	switch config.StorageBackend {
	case config.StorageBackendGCS:
		store, err := storage.NewGCSStore(ctx, config.GCSBucket)
		if err != nil {
			log.Printf("Warning: GCS storage unavailable, uploads disabled: %v", err)
			return nil
		}
		return store
	default:
		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			UseSSL:    config.MinioUseSSL,
			Bucket:    config.MinioBucket,
		})
		if err != nil {
			log.Printf("Warning: MinIO storage unavailable, uploads disabled: %v", err)
			return nil
		}
		return store
	}
}

func initMailer() mailer.Mailer {
	if config.SMTPHost == "" {
		log.Println("SMTP_HOST not set, emails will be logged only")
		return mailer.LogMailer{}
	}
	m, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.MailFrom,
	})
	if err != nil {
		log.Fatalf("Failed to configure SMTP: %v", err)
	}
	return m
}

func initContent(rdb *redis.Client) content.Source {
	if config.CMSFixture != "" {
		fs, err := cms.LoadFileSource(config.CMSFixture)
		if err != nil {
			log.Fatalf("Failed to load content fixture: %v", err)
		}
		log.Printf("Serving content from %s", config.CMSFixture)
		return fs
	}
	src := cms.NewClient(cms.Config{
		ProjectID:  config.CMSProjectID,
		Dataset:    config.CMSDataset,
		APIVersion: config.CMSAPIVersion,
		Token:      config.CMSToken,
		BaseURL:    config.CMSBaseURL,
	})

	var cache cms.Cache = cms.NewMemoryCache()
	if rdb != nil {
		cache = cms.NewRedisCache(rdb, "cms:")
	}
	return cms.NewCachedSource(src, cache, config.ContentCacheTTL)
}

func initLimiter(ctx context.Context, rdb *redis.Client) middleware.Limiter {
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb)
	}
	limiter := middleware.NewRateLimiter()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Sweep()
			}
		}
	}()
	return limiter
}
