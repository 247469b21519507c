package logger

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// fileConfig wraps Config for YAML parsing.
type fileConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns the logging defaults: INFO-level text output to
// the console, file logging off.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/straycat.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig loads logging configuration from a YAML file and applies
// environment variable overrides. A missing or unparseable file falls
// back to defaults silently.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var parsed fileConfig
			if err := yaml.Unmarshal(data, &parsed); err == nil {
				config.ConsoleEnabled = parsed.Logging.ConsoleEnabled
				config.FileEnabled = parsed.Logging.FileEnabled
				if parsed.Logging.Level != "" {
					config.Level = parsed.Logging.Level
				}
				if parsed.Logging.ConsoleFormat != "" {
					config.ConsoleFormat = parsed.Logging.ConsoleFormat
				}
				if parsed.Logging.FilePath != "" {
					config.FilePath = parsed.Logging.FilePath
				}
				if parsed.Logging.FileFormat != "" {
					config.FileFormat = parsed.Logging.FileFormat
				}
				if parsed.Logging.FileMaxSizeMB > 0 {
					config.FileMaxSizeMB = parsed.Logging.FileMaxSizeMB
				}
				if parsed.Logging.FileMaxBackups > 0 {
					config.FileMaxBackups = parsed.Logging.FileMaxBackups
				}
				if parsed.Logging.FileMaxAgeDays > 0 {
					config.FileMaxAgeDays = parsed.Logging.FileMaxAgeDays
				}
			}
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = level
	}
	if format := os.Getenv("LOG_CONSOLE_FORMAT"); format != "" {
		config.ConsoleFormat = format
	}
	if enabled := os.Getenv("LOG_FILE_ENABLED"); enabled != "" {
		if parsed, err := strconv.ParseBool(enabled); err == nil {
			config.FileEnabled = parsed
		}
	}
	if path := os.Getenv("LOG_FILE_PATH"); path != "" {
		config.FilePath = path
	}

	return config, nil
}
