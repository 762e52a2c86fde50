package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageBackendMinio = "minio"
	StorageBackendGCS   = "gcs"
)

var (
	ServerPort string

	JwtSecret string
	Issuer    string
	TokenTTL  time.Duration

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbSSLMode  string

	StorageBackend string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	GCSBucket      string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	TeamEmail    string
	CompanyName  string
	SiteURL      string

	CMSProjectID  string
	CMSDataset    string
	CMSAPIVersion string
	CMSToken      string
	CMSBaseURL    string
	CMSFixture    string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ContentCacheTTL time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	MaxResumeBytes     int64
	MaxDocuments       int
	AuditRetentionDays int
	CORSAllowedOrigins []string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "corpsite")
	TokenTTL = getEnvDuration("TOKEN_TTL", 12*time.Hour)

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "corpsite")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendMinio))
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "job-applications")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	GCSBucket = getEnv("GCS_BUCKET", "")

	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvInt("SMTP_PORT", 587)
	SMTPUsername = getEnv("SMTP_USERNAME", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	MailFrom = getEnv("MAIL_FROM", "careers@example.com")
	TeamEmail = getEnv("TEAM_EMAIL", "hr@example.com")
	CompanyName = getEnv("COMPANY_NAME", "Our Company")
	SiteURL = getEnv("SITE_URL", "http://localhost:3000")

	CMSProjectID = getEnv("CMS_PROJECT_ID", "")
	CMSDataset = getEnv("CMS_DATASET", "production")
	CMSAPIVersion = getEnv("CMS_API_VERSION", "2024-01-01")
	CMSToken = getEnv("CMS_TOKEN", "")
	CMSBaseURL = getEnv("CMS_BASE_URL", "")
	CMSFixture = getEnv("CMS_FIXTURE_FILE", "")

	RedisAddr = getEnv("REDIS_ADDR", "")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	RedisDB = getEnvInt("REDIS_DB", 0)
	ContentCacheTTL = getEnvDuration("CONTENT_CACHE_TTL", 5*time.Minute)

	RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", 5)
	RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute)

	MaxResumeBytes = int64(getEnvInt("MAX_RESUME_BYTES", 10<<20))
	MaxDocuments = getEnvInt("MAX_DOCUMENTS", 5)
	AuditRetentionDays = getEnvInt("AUDIT_RETENTION_DAYS", 90)
	CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
