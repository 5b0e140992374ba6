package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Upload backend selectors.
const (
	UploadBackendFTP   = "ftp"
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Upload       UploadConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	CookieName            string
	CookieSecure          bool
	AdminEmail            string
	AdminName             string
	AdminPassword         string
}

// FTPConfig holds credentials for the remote file store.
type FTPConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	UploadDir       string
	ConnTimeoutSecs int
	MaxAttempts     int
	RetryDelayMS    int
}

// S3Config holds credentials for an S3-compatible object store.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// UploadConfig drives the image upload pipeline.
type UploadConfig struct {
	Backend            string
	MaxSizeBytes       int64
	MaxWidth           int
	MaxHeight          int
	JPEGQuality        int
	PublicBaseURL      string
	OperationTimeoutSc int
	LocalDir           string
	FTP                FTPConfig
	S3                 S3Config
}

// RateLimitConfig bounds contact-form submissions per client.
type RateLimitConfig struct {
	Limit         int
	WindowSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "eftah-restaurant-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60*24),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			CookieName:            getEnv("AUTH_COOKIE_NAME", "session"),
			CookieSecure:          getEnvAsBool("AUTH_COOKIE_SECURE", false),
			AdminEmail:            getEnv("ADMIN_EMAIL", ""),
			AdminName:             getEnv("ADMIN_NAME", "Admin"),
			AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		},
		Upload: UploadConfig{
			Backend:            getEnv("UPLOAD_BACKEND", UploadBackendFTP),
			MaxSizeBytes:       int64(getEnvAsInt("UPLOAD_MAX_SIZE_BYTES", 10*1024*1024)),
			MaxWidth:           getEnvAsInt("UPLOAD_MAX_WIDTH", 1000),
			MaxHeight:          getEnvAsInt("UPLOAD_MAX_HEIGHT", 1000),
			JPEGQuality:        getEnvAsInt("UPLOAD_JPEG_QUALITY", 80),
			PublicBaseURL:      getEnv("UPLOAD_PUBLIC_URL", getEnv("FTP_PUBLIC_URL", "")),
			OperationTimeoutSc: getEnvAsInt("UPLOAD_OPERATION_TIMEOUT_SECONDS", 60),
			LocalDir:           getEnv("UPLOAD_LOCAL_DIR", "public/uploads"),
			FTP: FTPConfig{
				Host:            os.Getenv("FTP_HOST"),
				Port:            getEnvAsInt("FTP_PORT", 21),
				User:            os.Getenv("FTP_USER"),
				Password:        os.Getenv("FTP_PASSWORD"),
				UploadDir:       getEnv("FTP_UPLOAD_DIR", "/"),
				ConnTimeoutSecs: getEnvAsInt("FTP_CONN_TIMEOUT_SECONDS", 10),
				MaxAttempts:     getEnvAsInt("FTP_MAX_ATTEMPTS", 3),
				RetryDelayMS:    getEnvAsInt("FTP_RETRY_DELAY_MS", 1000),
			},
			S3: S3Config{
				Endpoint:  os.Getenv("S3_ENDPOINT"),
				AccessKey: os.Getenv("S3_ACCESS_KEY"),
				SecretKey: os.Getenv("S3_SECRET_KEY"),
				Bucket:    getEnv("S3_BUCKET", "uploads"),
				Region:    getEnv("S3_REGION", ""),
				UseSSL:    getEnvAsBool("S3_USE_SSL", true),
			},
		},
		RateLimit: RateLimitConfig{
			Limit:         getEnvAsInt("RATE_LIMIT_MAX", 5),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", ""),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the session token validity window.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// OperationTimeout bounds a single store/delete round trip.
func (u UploadConfig) OperationTimeout() time.Duration {
	if u.OperationTimeoutSc <= 0 {
		return 0
	}
	return time.Duration(u.OperationTimeoutSc) * time.Second
}

// RetryDelay returns the fixed backoff between connection attempts.
func (f FTPConfig) RetryDelay() time.Duration {
	return time.Duration(f.RetryDelayMS) * time.Millisecond
}

// ConnTimeout returns the dial timeout for one attempt.
func (f FTPConfig) ConnTimeout() time.Duration {
	return time.Duration(f.ConnTimeoutSecs) * time.Second
}

// Window returns the rate-limit window duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
