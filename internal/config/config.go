package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App        AppConfig
	ServiceNow ServiceNowConfig
	Slack      SlackConfig
	GitHub     GitHubConfig
	Auth       AuthConfig
	Logger     LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	Description           string
	RequestTimeoutSeconds int
}

// ServiceNowConfig holds ServiceNow instance credentials. Credentials may be
// absent; the client surfaces a structured error when actually invoked.
type ServiceNowConfig struct {
	Instance string
	Username string
	Password string
}

// SlackConfig holds the bot credential and default notification channel.
type SlackConfig struct {
	BotToken       string
	DefaultChannel string
}

// GitHubConfig holds the issue-tracker credential and default repository.
type GitHubConfig struct {
	Token       string
	DefaultRepo string
}

// AuthConfig defines the shared-secret gate. An empty APIKey disables it.
type AuthConfig struct {
	APIKey string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. Absent integration credentials are not an error here.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "technova-support-api"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
			Version:               getEnv("APP_VERSION", "1.0.0"),
			Description:           getEnv("APP_DESCRIPTION", "API for creating ServiceNow incidents and sending Slack notifications"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		ServiceNow: ServiceNowConfig{
			Instance: getEnv("SERVICENOW_INSTANCE", "your-instance.service-now.com"),
			Username: os.Getenv("SERVICENOW_USERNAME"),
			Password: os.Getenv("SERVICENOW_PASSWORD"),
		},
		Slack: SlackConfig{
			BotToken:       os.Getenv("SLACK_BOT_TOKEN"),
			DefaultChannel: getEnv("SLACK_DEFAULT_CHANNEL", "#incidents"),
		},
		GitHub: GitHubConfig{
			Token:       os.Getenv("GITHUB_TOKEN"),
			DefaultRepo: os.Getenv("GITHUB_DEFAULT_REPO"),
		},
		Auth: AuthConfig{
			APIKey: os.Getenv("API_KEY"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
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
