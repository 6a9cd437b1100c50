package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"FlowQuote"`
		Port     int    `envconfig:"PORT" default:"8080"`
		BaseURL  string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"flowquote"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"52428800"`
	}

	Auth struct {
		Secret     string        `envconfig:"AUTH_SECRET"`
		TokenTTL   time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"168h"`
		AdminToken string        `envconfig:"ADMIN_TOKEN"`
	}

	Storage struct {
		LocalDir       string `envconfig:"UPLOADS_DIR" default:"./public/uploads"`
		LocalURLPrefix string `envconfig:"UPLOADS_URL_PREFIX" default:"/uploads"`
	}

	R2 struct {
		AccountID       string        `envconfig:"R2_ACCOUNT_ID"`
		Endpoint        string        `envconfig:"R2_ENDPOINT"`
		AccessKeyID     string        `envconfig:"R2_ACCESS_KEY_ID"`
		SecretAccessKey string        `envconfig:"R2_SECRET_ACCESS_KEY"`
		Bucket          string        `envconfig:"R2_BUCKET"`
		PublicBaseURL   string        `envconfig:"R2_PUBLIC_BASE_URL"`
		UseSignedURLs   bool          `envconfig:"R2_USE_SIGNED_URLS" default:"false"`
		SignedURLExpiry time.Duration `envconfig:"R2_SIGNED_URL_EXPIRY" default:"10m"`
		UseSSL          bool          `envconfig:"R2_USE_SSL" default:"true"`
	}

	Mail struct {
		Host       string `envconfig:"SMTP_HOST"`
		Port       int    `envconfig:"SMTP_PORT" default:"587"`
		Username   string `envconfig:"SMTP_USERNAME"`
		Password   string `envconfig:"SMTP_PASSWORD"`
		From       string `envconfig:"MAIL_FROM"`
		ReplyTo    string `envconfig:"MAIL_REPLY_TO"`
		AdminEmail string `envconfig:"ADMIN_EMAIL"`
	}

	Notify struct {
		Workers   int `envconfig:"NOTIFY_WORKERS" default:"2"`
		QueueSize int `envconfig:"NOTIFY_QUEUE_SIZE" default:"100"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"https://www.flowquote.io,https://flowquote.io"`
	}

	RateLimit struct {
		PerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"1"`
		Burst     int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
	}
}

// ObjectStorage holds the resolved settings for the S3-compatible bucket.
type ObjectStorage struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UseSignedURLs   bool
	SignedURLExpiry time.Duration
	UseSSL          bool
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// ObjectStorage returns the bucket settings, or nil when the bucket is not
// fully configured and uploads should go to local disk.
func (c *Config) ObjectStorage() *ObjectStorage {
	r2 := c.R2
	if r2.Bucket == "" || r2.AccessKeyID == "" || r2.SecretAccessKey == "" {
		return nil
	}

	endpoint := strings.TrimSpace(r2.Endpoint)
	if endpoint == "" {
		if r2.AccountID == "" {
			return nil
		}

		endpoint = r2.AccountID + ".r2.cloudflarestorage.com"
	}

	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")

	publicBase := r2.PublicBaseURL
	if publicBase == "" && r2.AccountID != "" {
		publicBase = fmt.Sprintf("https://%s.%s.r2.cloudflarestorage.com", r2.Bucket, r2.AccountID)
	}

	return &ObjectStorage{
		Endpoint:        strings.TrimSuffix(endpoint, "/"),
		AccessKeyID:     r2.AccessKeyID,
		SecretAccessKey: r2.SecretAccessKey,
		Bucket:          r2.Bucket,
		PublicBaseURL:   strings.TrimSuffix(publicBase, "/"),
		UseSignedURLs:   r2.UseSignedURLs,
		SignedURLExpiry: r2.SignedURLExpiry,
		UseSSL:          r2.UseSSL,
	}
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.Mail.Host != "" && c.Mail.From != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.App.BaseURL = strings.TrimSuffix(cfg.App.BaseURL, "/")

	return &cfg, nil
}
