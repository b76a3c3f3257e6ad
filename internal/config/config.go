// Package config assembles the process configuration from the environment.
// Theme settings are read from an optional YAML file and handed explicitly to
// the services and handlers that render storefront pages.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr  string
	DBDSN string

	CookieSecret  []byte
	CookieSecure  bool
	SessionTTL    time.Duration
	CartCookie    string
	FlashCookie   string
	SessionCookie string
	CSRFCookie    string

	SMTP     SMTPConfig
	Mailtrap MailtrapConfig
	Storage  StorageConfig
	Reviews  ReviewsConfig
	Theme    ThemeSettings
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // "", "starttls" or "tls"
	SkipVerifyTLS bool
	From          string
	FromName      string
}

// Enabled reports whether an SMTP host was configured.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// MailtrapConfig selects the Mailtrap HTTP API instead of SMTP when a token
// is set.
type MailtrapConfig struct {
	APIURL   string
	APIToken string
}

func (c MailtrapConfig) Enabled() bool { return c.APIURL != "" && c.APIToken != "" }

type StorageConfig struct {
	Driver string // local | s3

	LocalDir       string
	LocalURLPrefix string

	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

type ReviewsConfig struct {
	ModeratorEmail string
	AutoPublish    bool
}

// Load reads the environment. DB_DSN and COOKIE_SECRET are required.
func Load() (Config, error) {
	cfg := Config{
		Addr:          envOr("APP_ADDR", ":8080"),
		DBDSN:         os.Getenv("DB_DSN"),
		CookieSecret:  []byte(os.Getenv("COOKIE_SECRET")),
		CookieSecure:  envBool("COOKIE_SECURE", false),
		SessionTTL:    envDuration("SESSION_TTL", 14*24*time.Hour),
		CartCookie:    envOr("CART_COOKIE_NAME", "lumen_cart"),
		FlashCookie:   envOr("FLASH_COOKIE_NAME", "lumen_flash"),
		SessionCookie: envOr("SESSION_COOKIE_NAME", "lumen_session"),
		CSRFCookie:    envOr("CSRF_COOKIE_NAME", "lumen_csrf"),
		SMTP: SMTPConfig{
			Host:          os.Getenv("SMTP_HOST"),
			Port:          envOr("SMTP_PORT", "1025"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			TLSMode:       strings.ToLower(os.Getenv("SMTP_TLS_MODE")),
			SkipVerifyTLS: envBool("SMTP_SKIP_VERIFY", false),
			From:          envOr("SMTP_FROM", "no-reply@lumen.local"),
			FromName:      envOr("SMTP_FROM_NAME", "Lumen"),
		},
		Mailtrap: MailtrapConfig{
			APIURL:   os.Getenv("MAILTRAP_API_URL"),
			APIToken: os.Getenv("MAILTRAP_API_TOKEN"),
		},
		Storage: StorageConfig{
			Driver:          envOr("STORAGE_DRIVER", "local"),
			LocalDir:        envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:        os.Getenv("S3_REGION"),
			S3Bucket:        os.Getenv("S3_BUCKET"),
			S3Prefix:        envOr("S3_PREFIX", "uploads"),
			S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Reviews: ReviewsConfig{
			ModeratorEmail: os.Getenv("REVIEWS_MODERATOR_EMAIL"),
			AutoPublish:    envBool("REVIEWS_AUTO_PUBLISH", false),
		},
	}

	if cfg.DBDSN == "" {
		return Config{}, errors.New("DB_DSN environment variable is required")
	}
	if len(cfg.CookieSecret) < 32 {
		return Config{}, errors.New("COOKIE_SECRET must be at least 32 bytes")
	}

	theme, err := LoadTheme(os.Getenv("THEME_SETTINGS_PATH"))
	if err != nil {
		return Config{}, fmt.Errorf("theme settings: %w", err)
	}
	cfg.Theme = theme

	return cfg, nil
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
