// Package config provides configuration management for journalfmt.
// It loads configuration from environment variables, .env files and an optional format file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pigeonworks-llc/journalfmt/pkg/serializer"
)

// Config represents the application configuration.
type Config struct {
	Journal JournalConfig
	Format  serializer.Settings
	Debug   bool
	AppEnv  string
}

// JournalConfig represents where journal files and the price database live.
type JournalConfig struct {
	Root       string
	DBPath     string
	FormatFile string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	config := &Config{
		Journal: JournalConfig{
			Root:       getEnvOrDefault("JOURNAL_ROOT", "./journal"),
			DBPath:     os.Getenv("JOURNAL_DB_PATH"),
			FormatFile: os.Getenv("JOURNAL_FORMAT_FILE"),
		},
		Format: serializer.DefaultSettings(),
		Debug:  os.Getenv("DEBUG") == "true",
		AppEnv: getEnvOrDefault("APP_ENV", "development"),
	}

	if config.Journal.FormatFile != "" {
		if err := loadFormatFile(config.Journal.FormatFile, &config.Format); err != nil {
			return nil, err
		}
	}

	if err := applyFormatEnv(&config.Format); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFormatFile overlays the keys present in a YAML format file onto s.
func loadFormatFile(path string, s *serializer.Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read format file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse format file %s: %w", path, err)
	}
	return nil
}

func applyFormatEnv(s *serializer.Settings) error {
	indent, err := parseIntEnv("JOURNAL_INDENT_WIDTH", s.IndentWidth)
	if err != nil {
		return fmt.Errorf("invalid JOURNAL_INDENT_WIDTH: %w", err)
	}
	column, err := parseIntEnv("JOURNAL_AMOUNT_COLUMN", s.AmountColumn)
	if err != nil {
		return fmt.Errorf("invalid JOURNAL_AMOUNT_COLUMN: %w", err)
	}

	s.IndentWidth = indent
	s.AmountColumn = column
	s.DateSeparator = getEnvOrDefault("JOURNAL_DATE_SEPARATOR", s.DateSeparator)

	switch s.DateSeparator {
	case "-", "/", ".":
	default:
		return fmt.Errorf("invalid date separator %q: expected -, / or .", s.DateSeparator)
	}
	if s.IndentWidth < 1 {
		return fmt.Errorf("invalid indent width %d: must be at least 1", s.IndentWidth)
	}
	if s.AmountColumn < 0 {
		return fmt.Errorf("invalid amount column %d: must not be negative", s.AmountColumn)
	}
	return nil
}

// SerializerSettings returns the rendering settings for journal output.
func (c *Config) SerializerSettings() serializer.Settings {
	return c.Format
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 || path[0] != "journal" {
			continue
		}

		var value string
		switch path[1] {
		case "root":
			value = c.Journal.Root
		case "dbPath":
			value = c.Journal.DBPath
		case "formatFile":
			value = c.Journal.FormatFile
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
