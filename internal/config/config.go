package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Inbox search
	SearchQuery string
	ParserName  string
	Timezone    string

	// Google Sheets / Drive
	SpreadsheetID string
	SheetName     string

	// Distribution
	Recipient     string
	CC            []string
	SenderName    string
	CategoryLabel string

	// Sink selection
	Backend string
	// Inbox fixture consumed by the memory backend.
	MessagesFile string

	// Run journal
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker scheduling
	RunDay        int
	CheckInterval time.Duration
}

func Load() *Config {
	return &Config{
		SearchQuery: getEnv("SEARCH_QUERY", "from:notifications@bank.com"),
		ParserName:  getEnv("PARSER", "debitcard"),
		Timezone:    getEnv("TIMEZONE", "UTC"),

		SpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SheetName:     getEnv("GOOGLE_SHEET_NAME", "Report"),

		Recipient:     getEnv("REPORT_RECIPIENT", ""),
		CC:            splitList(getEnv("REPORT_CC", "")),
		SenderName:    getEnv("REPORT_SENDER_NAME", "Financial Report"),
		CategoryLabel: getEnv("CATEGORY_LABEL", ""),

		Backend:      getEnv("BACKEND", "memory"),
		MessagesFile: getEnv("MESSAGES_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/rendiconto.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "rendiconto"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_runs"),

		RunDay:        getEnvInt("RUN_DAY", 28),
		CheckInterval: getEnvDuration("CHECK_INTERVAL", 1*time.Hour),
	}
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.SearchQuery) == "" {
		errs = append(errs, "search query cannot be empty")
	}
	if strings.TrimSpace(c.ParserName) == "" {
		errs = append(errs, "parser name cannot be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	switch c.Backend {
	case "memory":
		// Nothing else required for dry runs.
	case "google":
		if c.SpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required for the google backend")
		}
		if c.SheetName == "" {
			errs = append(errs, "GOOGLE_SHEET_NAME is required for the google backend")
		}
		if c.Recipient == "" {
			errs = append(errs, "REPORT_RECIPIENT is required for the google backend")
		} else if _, err := mail.ParseAddress(c.Recipient); err != nil {
			errs = append(errs, fmt.Sprintf("invalid recipient '%s': %v", c.Recipient, err))
		}
		for _, cc := range c.CC {
			if _, err := mail.ParseAddress(cc); err != nil {
				errs = append(errs, fmt.Sprintf("invalid CC address '%s': %v", cc, err))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of [memory google]", c.Backend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RunDay < 1 || c.RunDay > 28 {
		// Capped at 28 so the schedule exists in every month.
		errs = append(errs, fmt.Sprintf("invalid run day %d: must be between 1 and 28", c.RunDay))
	}
	if c.CheckInterval < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid check interval %v: must be at least 1 minute", c.CheckInterval))
	} else if c.CheckInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid check interval %v: must be at most 24 hours", c.CheckInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Location resolves the configured timezone. Validate must have passed.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
