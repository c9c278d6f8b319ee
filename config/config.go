// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration loaded from the environment.
type Config struct {
	Port string

	// Completion API
	OpenAIModel   string
	OpenAIAPIKey  string
	LLMBaseURL    string
	MaxChatLength int

	// Slack
	SlackBotToken      string
	SlackSigningSecret string
	SlackAppURL        string
	SlackEvents        []string

	// Stripe
	StripeSecret       string
	StripeMonthlyLink  string
	StripeAnnualLink   string
	StripeLifetimeLink string

	// Subscription
	FreeTrialDays int

	// Store
	StoreDriver string // "dynamodb", "mysql" or "memory"
	Dynamo      DynamoConfig
	MySQL       MySQLConfig
}

// DynamoConfig names the DynamoDB tables and connection settings.
type DynamoConfig struct {
	Region       string
	Endpoint     string // optional override for local DynamoDB
	UsersTable   string
	EmailsTable  string
	PublicChats  string
	PrivateChats string
	AccessKey    string
	SecretKey    string
}

// MySQLConfig holds the SQL_* connection variables.
type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		LLMBaseURL:    os.Getenv("LLM_BASE_URL"),
		MaxChatLength: getEnvInt("MAX_CHAT_LENGTH", 21),

		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		SlackAppURL:        os.Getenv("SLACK_APP_URL"),
		SlackEvents:        splitList(getEnv("SLACK_EVENTS", "app_mention,message,app_home_opened")),

		StripeSecret:       os.Getenv("STRIPE_SECRET"),
		StripeMonthlyLink:  os.Getenv("STRIPE_MONTHLY_LINK"),
		StripeAnnualLink:   os.Getenv("STRIPE_ANNUAL_LINK"),
		StripeLifetimeLink: os.Getenv("STRIPE_LIFETIME_LINK"),

		FreeTrialDays: getEnvInt("FREE_TRIAL_DAYS", 14),

		StoreDriver: getEnv("STORE_DRIVER", "dynamodb"),
		Dynamo: DynamoConfig{
			Region:       getEnv("AWS_REGION", "us-east-1"),
			Endpoint:     os.Getenv("DYNAMODB_ENDPOINT"),
			UsersTable:   getEnv("DDB_USERS_ID", "users_id"),
			EmailsTable:  getEnv("DDB_USERS_EMAIL", "users_email"),
			PublicChats:  getEnv("DDB_PUBLIC_CHATS", "public_chats"),
			PrivateChats: getEnv("DDB_PRIVATE_CHATS", "private_chats"),
			AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		MySQL: MySQLConfig{
			Host:     os.Getenv("SQL_HOST"),
			Port:     getEnv("SQL_PORT", "3306"),
			User:     os.Getenv("SQL_USER"),
			Password: os.Getenv("SQL_PASSWORD"),
			DBName:   getEnv("SQL_DBNAME", "bounce"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the handlers cannot run without.
func (c *Config) Validate() error {
	if c.MaxChatLength < 3 {
		return fmt.Errorf("MAX_CHAT_LENGTH must be at least 3")
	}
	if c.FreeTrialDays <= 0 {
		return fmt.Errorf("FREE_TRIAL_DAYS must be positive")
	}
	if len(c.SlackEvents) == 0 {
		return fmt.Errorf("SLACK_EVENTS cannot be empty")
	}
	switch c.StoreDriver {
	case "dynamodb", "mysql", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// EventAllowed reports whether the Slack event type is on the allow-list.
func (c *Config) EventAllowed(eventType string) bool {
	for _, t := range c.SlackEvents {
		if t == eventType {
			return true
		}
	}
	return false
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
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
