package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, constructed once in main and
// passed by reference into repositories, exporters and services.
type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	DataDir   string `env:"DATA_DIR" envDefault:"data"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"output"`
	LogDir    string `env:"LOG_DIR" envDefault:"logs"`

	EnableBackup bool `env:"ENABLE_BACKUP" envDefault:"true"`
	MaxBackups   int  `env:"MAX_BACKUPS" envDefault:"5"`

	AllowPastDates   bool `env:"ALLOW_PAST_DATES" envDefault:"false"`
	MaxShiftsPerUnit int  `env:"MAX_SHIFTS_PER_UNIT" envDefault:"50"`

	DefaultExportFormat string `env:"DEFAULT_EXPORT_FORMAT" envDefault:"json"`
	ExcelAuthor         string `env:"EXCEL_AUTHOR" envDefault:"Schedule DND"`
	IncludeMetadata     bool   `env:"INCLUDE_METADATA" envDefault:"true"`
	PrettyJSON          bool   `env:"PRETTY_JSON" envDefault:"true"`

	LogMaxSizeMB   int `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	LogBackupCount int `env:"LOG_BACKUP_COUNT" envDefault:"5"`
}

// Load reads configuration from the environment with the SCHEDULE_DND_
// prefix. A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	// Missing .env is fine; only report real read failures.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SCHEDULE_DND_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Invalid configuration is fatal at startup.
func (c *Config) Validate() error {
	if c.MaxBackups < 1 || c.MaxBackups > 20 {
		return fmt.Errorf("invalid configuration for MAX_BACKUPS: must be between 1 and 20, got %d", c.MaxBackups)
	}
	if c.MaxShiftsPerUnit < 10 || c.MaxShiftsPerUnit > 100 {
		return fmt.Errorf("invalid configuration for MAX_SHIFTS_PER_UNIT: must be between 10 and 100, got %d", c.MaxShiftsPerUnit)
	}
	switch c.DefaultExportFormat {
	case "json", "excel", "csv", "markdown", "html":
	default:
		return fmt.Errorf("invalid configuration for DEFAULT_EXPORT_FORMAT: %q", c.DefaultExportFormat)
	}
	if c.LogMaxSizeMB < 1 {
		return fmt.Errorf("invalid configuration for LOG_MAX_SIZE_MB: %d", c.LogMaxSizeMB)
	}
	return nil
}

// BackupDir returns the backups subdirectory of the data directory.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// SchedulePath returns the canonical data path for a schedule period.
func (c *Config) SchedulePath(year, month int) string {
	return filepath.Join(c.DataDir, fmt.Sprintf("schedule_%d_%02d.json", year, month))
}
