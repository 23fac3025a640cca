package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfiguration is returned when crew or schedule settings cannot
// produce a meaningful duration.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Scheduling strategies
const (
	StrategySinglePass = "single-pass"
	StrategyGraph      = "graph"
)

// DateLayout is the layout used for project_start in the config file
const DateLayout = "2006-01-02"

// Config represents the application configuration
type Config struct {
	Crew         CrewConfig         `yaml:"crew"`
	Schedule     ScheduleConfig     `yaml:"schedule"`
	Completeness CompletenessConfig `yaml:"completeness"`
	Output       OutputConfig       `yaml:"output"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// CrewConfig converts labor-hours into calendar days
type CrewConfig struct {
	Size         int     `yaml:"size"`
	WorkdayHours float64 `yaml:"workday_hours"`
}

// ScheduleConfig represents scheduling configuration
type ScheduleConfig struct {
	ProjectStart string `yaml:"project_start"`
	Strategy     string `yaml:"strategy"`
}

// CriterionConfig represents one entry of the document catalog
type CriterionConfig struct {
	Key            string  `yaml:"key"`
	Label          string  `yaml:"label"`
	Weight         float64 `yaml:"weight"`
	Recommendation string  `yaml:"recommendation,omitempty"`
}

// CompletenessConfig overrides the built-in document catalog when Criteria is non-empty
type CompletenessConfig struct {
	Criteria []CriterionConfig `yaml:"criteria,omitempty"`
}

// OutputConfig represents report output configuration
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	SaveReport bool   `yaml:"save_report"`
}

// LoggingConfig represents log file configuration
type LoggingConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Crew: CrewConfig{
			Size:         2,
			WorkdayHours: 8,
		},
		Schedule: ScheduleConfig{
			ProjectStart: "2024-06-01",
			Strategy:     StrategyGraph,
		},
		Output: OutputConfig{
			Dir:        "output",
			SaveReport: false,
		},
		Logging: LoggingConfig{
			File:       "site-planner.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// WriteDefault writes the default configuration to path, refusing to overwrite
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Schedule.Strategy == "" {
		c.Schedule.Strategy = defaults.Schedule.Strategy
	}
	if c.Schedule.ProjectStart == "" {
		c.Schedule.ProjectStart = defaults.Schedule.ProjectStart
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaults.Output.Dir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Crew.Size <= 0 {
		return fmt.Errorf("%w: crew size must be positive, got %d", ErrInvalidConfiguration, c.Crew.Size)
	}

	if c.Crew.WorkdayHours <= 0 {
		return fmt.Errorf("%w: workday hours must be positive, got %g", ErrInvalidConfiguration, c.Crew.WorkdayHours)
	}

	if _, err := c.ProjectStart(); err != nil {
		return err
	}

	switch c.Schedule.Strategy {
	case StrategySinglePass, StrategyGraph:
	default:
		return fmt.Errorf("%w: unknown schedule strategy %q", ErrInvalidConfiguration, c.Schedule.Strategy)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging level %q", ErrInvalidConfiguration, c.Logging.Level)
	}

	for _, criterion := range c.Completeness.Criteria {
		if criterion.Key == "" {
			return fmt.Errorf("%w: completeness criterion without key", ErrInvalidConfiguration)
		}
		if criterion.Weight < 0 {
			return fmt.Errorf("%w: criterion %s has negative weight", ErrInvalidConfiguration, criterion.Key)
		}
	}

	return nil
}

// ProjectStart parses schedule.project_start as a UTC date
func (c *Config) ProjectStart() (time.Time, error) {
	start, err := time.Parse(DateLayout, c.Schedule.ProjectStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: project_start %q: %v", ErrInvalidConfiguration, c.Schedule.ProjectStart, err)
	}
	return start, nil
}
