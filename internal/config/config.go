// Package config builds the application configuration from environment
// variables. The configuration is constructed once at startup and passed
// explicitly into each component; there is no package-level singleton.
package config

import (
	"fmt"
	"strings"
)

// Environment variable names recognized by FromEnv.
const (
	EnvEventsPageURL    = "EVENTS_PAGE_URL"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvOpenRouterModel  = "OPENROUTER_MODEL"
	EnvArtifactsDir     = "ARTIFACTS_DIR"
	EnvICSFileName      = "ICS_FILE_NAME"
	EnvHTMLFileName     = "HTML_FILE_NAME"
	EnvScraperUserAgent = "SCRAPER_USER_AGENT"
	EnvLogLevel         = "LOG_LEVEL"
)

// Defaults for the optional variables.
const (
	DefaultModel        = "deepseek/deepseek-chat-v3.1:free"
	DefaultArtifactsDir = "artifacts"
	DefaultICSFileName  = "events.ics"
	DefaultHTMLFileName = "events.html"
	DefaultUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 15.7; rv:143.0) Gecko/20100101 Firefox/143.0"
	DefaultLogLevel     = "DEBUG"
)

// Config holds everything the pipeline needs for one run.
type Config struct {
	EventsPageURL    string
	OpenRouterAPIKey string
	OpenRouterModel  string
	ArtifactsDir     string
	ICSFileName      string
	HTMLFileName     string
	ScraperUserAgent string
	LogLevel         string
}

// FromEnv reads the environment and returns a validated Config. All missing
// required variables are reported in a single error so a misconfigured
// deployment can be fixed in one pass.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		EventsPageURL:    getenv(EnvEventsPageURL),
		OpenRouterAPIKey: getenv(EnvOpenRouterAPIKey),
		OpenRouterModel:  getenvDefault(getenv, EnvOpenRouterModel, DefaultModel),
		ArtifactsDir:     getenvDefault(getenv, EnvArtifactsDir, DefaultArtifactsDir),
		ICSFileName:      getenvDefault(getenv, EnvICSFileName, DefaultICSFileName),
		HTMLFileName:     getenvDefault(getenv, EnvHTMLFileName, DefaultHTMLFileName),
		ScraperUserAgent: getenvDefault(getenv, EnvScraperUserAgent, DefaultUserAgent),
		LogLevel:         getenvDefault(getenv, EnvLogLevel, DefaultLogLevel),
	}

	var missing []string
	if cfg.EventsPageURL == "" {
		missing = append(missing, EnvEventsPageURL)
	}
	if cfg.OpenRouterAPIKey == "" {
		missing = append(missing, EnvOpenRouterAPIKey)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenvDefault(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
