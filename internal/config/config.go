package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Category taxonomy
	TaxonomyPath string

	// Alerts
	AlertHorizonDays int
	AlertMaxCount    int

	// Backend selection
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8082"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/bilancio.db"),
		TaxonomyPath: getEnv("TAXONOMY_PATH", ""),

		AlertHorizonDays: getEnvInt("ALERT_HORIZON_DAYS", 3),
		AlertMaxCount:    getEnvInt("ALERT_MAX_COUNT", 3),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite. The database
	// directory is created by the store on open, not here.
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	// Validate taxonomy file if specified
	if c.TaxonomyPath != "" {
		if _, err := os.Stat(c.TaxonomyPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("taxonomy file does not exist: %s", c.TaxonomyPath))
		}
	}

	// Validate alert configuration
	if c.AlertHorizonDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid alert horizon %d: must be at least 1 day", c.AlertHorizonDays))
	} else if c.AlertHorizonDays > 365 {
		errors = append(errors, fmt.Sprintf("invalid alert horizon %d: must be at most 365 days", c.AlertHorizonDays))
	}

	if c.AlertMaxCount < 1 {
		errors = append(errors, fmt.Sprintf("invalid alert max count %d: must be at least 1", c.AlertMaxCount))
	} else if c.AlertMaxCount > 100 {
		errors = append(errors, fmt.Sprintf("invalid alert max count %d: must be at most 100", c.AlertMaxCount))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
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
