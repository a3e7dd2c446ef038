package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MiB JSON body ceiling

type Config struct {
	Port            string
	AppEnv          string
	ProjectID       string
	CredentialsFile string
	WebAPIKey       string
	AdminEmail      string
	AllowedOrigins  []string
	MaxBodyBytes    int64

	// DealWebhookURL, when set, receives an announcement for every deal
	// created through the API. Empty disables announcements.
	DealWebhookURL string

	// AmazonAssociateTag is stamped onto Amazon affiliate links at write
	// time so outbound clicks always credit the configured associate.
	AmazonAssociateTag string
}

func Load() (*Config, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required but not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	webAPIKey := os.Getenv("FIREBASE_WEB_API_KEY")
	if webAPIKey == "" {
		slog.Warn("FIREBASE_WEB_API_KEY not set, login and token exchange will be unavailable")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		slog.Warn("ADMIN_EMAIL not set, admin access requires the custom claim")
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	maxBody := int64(defaultMaxBodyBytes)
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid MAX_BODY_BYTES %q: %v", v, err)
		}
		maxBody = parsed
	}

	return &Config{
		Port:               port,
		AppEnv:             appEnv,
		ProjectID:          projectID,
		CredentialsFile:    os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		WebAPIKey:          webAPIKey,
		AdminEmail:         adminEmail,
		AllowedOrigins:     origins,
		MaxBodyBytes:       maxBody,
		DealWebhookURL:     os.Getenv("DEAL_WEBHOOK_URL"),
		AmazonAssociateTag: os.Getenv("AMAZON_ASSOCIATE_TAG"),
	}, nil
}

// IsDevelopment reports whether the service runs in development mode, which
// relaxes CORS for loopback origins and exposes internal error detail.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
