package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// Config holds all configuration for the application
type Config struct {
	Port            string
	PublicDir       string
	ViewsDir        string
	SpreadsheetID   string
	CredentialsFile string
	InquiryRange    string
	NewsletterRange string
	Timezone        *time.Location
	PhotoBucket     string
	LogLevel        string
	SubmitRateLimit int
}

// ErrSpreadsheetIDNotSet is returned when the SPREADSHEET_ID environment variable is not set
var ErrSpreadsheetIDNotSet = errors.New("SPREADSHEET_ID environment variable not set")

// ErrCredentialsNotSet is returned when the GOOGLE_CREDENTIALS_FILE environment variable is not set
var ErrCredentialsNotSet = errors.New("GOOGLE_CREDENTIALS_FILE environment variable not set")

const (
	defaultPort            = "8080"
	defaultPublicDir       = "./public"
	defaultViewsDir        = "./views"
	defaultInquiryRange    = "Inquiries!A:J"
	defaultNewsletterRange = "Newsletter!A:B"
	defaultTimezone        = "America/New_York"
	defaultSubmitRateLimit = 5
)

// Load loads configuration from environment variables.
// Lead capture settings are checked separately by RequireSheets so that
// read-only commands work without spreadsheet credentials.
func Load() (*Config, error) {
	tzName := envOr("TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}

	rateLimit := defaultSubmitRateLimit
	if raw := os.Getenv("SUBMIT_RATE_LIMIT"); raw != "" {
		rateLimit, err = strconv.Atoi(raw)
		if err != nil || rateLimit <= 0 {
			return nil, fmt.Errorf("invalid SUBMIT_RATE_LIMIT %q: must be a positive integer", raw)
		}
	}

	return &Config{
		Port:            envOr("PORT", defaultPort),
		PublicDir:       envOr("PUBLIC_DIR", defaultPublicDir),
		ViewsDir:        envOr("VIEWS_DIR", defaultViewsDir),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		InquiryRange:    envOr("INQUIRY_RANGE", defaultInquiryRange),
		NewsletterRange: envOr("NEWSLETTER_RANGE", defaultNewsletterRange),
		Timezone:        loc,
		PhotoBucket:     os.Getenv("PHOTO_BUCKET"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		SubmitRateLimit: rateLimit,
	}, nil
}

// RequireSheets reports whether the spreadsheet settings needed for lead capture are present
func (c *Config) RequireSheets() error {
	if c.SpreadsheetID == "" {
		return ErrSpreadsheetIDNotSet
	}
	if c.CredentialsFile == "" {
		return ErrCredentialsNotSet
	}
	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Site URL: http://localhost:%s/\n", c.Port)
	if c.PhotoBucket != "" {
		fmt.Printf("Project photos: gs://%s/projects\n", c.PhotoBucket)
	} else {
		fmt.Printf("Project photos: %s/projects\n", c.PublicDir)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
