package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/calendar"
)

// Source kinds
const (
	SourceSheets = "sheets"
	SourceXLSX   = "xlsx"
)

// Database kinds
const (
	DatabaseSheets   = "sheets"
	DatabasePostgres = "postgres"
	DatabaseNone     = "none"
)

const (
	defaultInferenceRows     = 10
	defaultServerAddr        = ":8080"
	defaultRequestsPerMinute = 120
)

// Source locates one grid: a Google spreadsheet ID or a local .xlsx path, plus the tab to read
type Source struct {
	Kind     string `yaml:"kind" validate:"required,oneof=sheets xlsx"`
	Location string `yaml:"location" validate:"required"`
	Tab      string `yaml:"tab"`
}

// IsSheets reports whether the source is read through the Sheets API
func (s *Source) IsSheets() bool {
	return s != nil && s.Kind == SourceSheets
}

// Database selects where ingested schedules and happiness ratings are persisted
type Database struct {
	Kind    string `yaml:"kind" validate:"required,oneof=sheets postgres none"`
	SheetID string `yaml:"sheetID" validate:"required_if=Kind sheets"`
	URL     string `yaml:"url" validate:"required_if=Kind postgres"`
}

// ReportingPeriod pins the month under analysis. Left empty, the month is
// inferred from the schedule's dates.
type ReportingPeriod struct {
	Year  int `yaml:"year" validate:"omitempty,min=1900,max=9999"`
	Month int `yaml:"month" validate:"omitempty,min=1,max=12"`
}

// Server configures the HTTP API
type Server struct {
	Addr              string   `yaml:"addr"`
	AllowedOrigins    []string `yaml:"allowedOrigins,omitempty"`
	RequestsPerMinute int      `yaml:"requestsPerMinute" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	ReportingPeriod   ReportingPeriod `yaml:"reportingPeriod"`
	ScheduleSource    Source          `yaml:"scheduleSource"`
	VolumeSource      *Source         `yaml:"volumeSource,omitempty" validate:"omitempty"`
	ContractSource    *Source         `yaml:"contractSource,omitempty" validate:"omitempty"`
	CredentialSource  *Source         `yaml:"credentialSource,omitempty" validate:"omitempty"`
	CoverageSource    *Source         `yaml:"coverageSource,omitempty" validate:"omitempty"`
	Database          Database        `yaml:"database"`
	ReportSheetID     string          `yaml:"reportSheetID,omitempty"`
	RatingsFormID     string          `yaml:"ratingsFormID,omitempty"`
	ReportRecipients  []string        `yaml:"reportRecipients,omitempty" validate:"omitempty,dive,email"`
	DateInferenceRows int             `yaml:"dateInferenceRows" validate:"omitempty,min=1"`
	WeekendRule       string          `yaml:"weekendRule"`
	Server            Server          `yaml:"server"`
}

// Period returns the configured reporting period, or the zero Period when unset
func (c *Config) Period() calendar.Period {
	if c.ReportingPeriod.Year == 0 || c.ReportingPeriod.Month == 0 {
		return calendar.Period{}
	}
	return calendar.NewPeriod(c.ReportingPeriod.Year, time.Month(c.ReportingPeriod.Month))
}

// NeedsGoogle reports whether any source, store or report target lives in Google Sheets
func (c *Config) NeedsGoogle() bool {
	for _, s := range []*Source{&c.ScheduleSource, c.VolumeSource, c.ContractSource, c.CredentialSource, c.CoverageSource} {
		if s.IsSheets() {
			return true
		}
	}
	return c.Database.Kind == DatabaseSheets || c.ReportSheetID != "" || c.RatingsFormID != "" || len(c.ReportRecipients) > 0
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates scheduler_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration for an environment.
// env="dev" looks for "scheduler_config.dev.yaml" in the current directory, then the home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Kind == "" {
		cfg.Database.Kind = DatabaseNone
	}
	if cfg.DateInferenceRows == 0 {
		cfg.DateInferenceRows = defaultInferenceRows
	}
	if strings.TrimSpace(cfg.WeekendRule) == "" {
		cfg.WeekendRule = calendar.DefaultWeekendRule
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}
	if cfg.Server.RequestsPerMinute == 0 {
		cfg.Server.RequestsPerMinute = defaultRequestsPerMinute
	}
}

// Validate validates the configuration struct, the reporting period and the weekend rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if (cfg.ReportingPeriod.Year == 0) != (cfg.ReportingPeriod.Month == 0) {
		return fmt.Errorf("config validation failed: reportingPeriod needs both year and month")
	}

	if cfg.WeekendRule != "" {
		if _, err := rrule.StrToRRule(cfg.WeekendRule); err != nil {
			return fmt.Errorf("invalid rrule in weekendRule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file
func findConfigFile(env string) (string, error) {
	name := "scheduler_config.yaml"
	if env != "" {
		name = "scheduler_config." + env + ".yaml"
	}
	return findFile(name)
}

// findFile looks for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
