// Package config loads nudge settings from YAML and NUDGE_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SurveyConfig configures the survey prompt and modal.
type SurveyConfig struct {
	URL            string        `mapstructure:"url" yaml:"url"`
	Delay          time.Duration `mapstructure:"delay" yaml:"delay"`
	Tick           time.Duration `mapstructure:"tick" yaml:"tick"`
	PromptDuration time.Duration `mapstructure:"prompt_duration" yaml:"prompt_duration"`
	// CompleteDelay is how long after a successful open the survey counts as
	// completed.
	CompleteDelay time.Duration `mapstructure:"complete_delay" yaml:"complete_delay"`
	Title         string        `mapstructure:"title" yaml:"title"`
	Message       string        `mapstructure:"message" yaml:"message"`
	ActionLabel   string        `mapstructure:"action_label" yaml:"action_label"`
}

// NotificationsConfig holds defaults for ad-hoc notifications.
type NotificationsConfig struct {
	DefaultDuration time.Duration `mapstructure:"default_duration" yaml:"default_duration"`
}

// StorageConfig selects the durable backend for the survey record.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Config is the top-level application configuration.
type Config struct {
	Survey        SurveyConfig        `mapstructure:"survey" yaml:"survey"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	Storage       StorageConfig       `mapstructure:"storage" yaml:"storage"`
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
}

// Dir returns ~/.config/nudge, or the working directory if home is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "nudge")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultSurveyURL is the satisfaction survey form shipped with the client.
const DefaultSurveyURL = "https://forms.office.com/r/cy6uDF6SiX?origin=lprLink"

func setDefaults(v *viper.Viper) {
	dir := Dir()
	v.SetDefault("survey.url", DefaultSurveyURL)
	v.SetDefault("survey.delay", 5*time.Minute)
	v.SetDefault("survey.tick", time.Second)
	v.SetDefault("survey.prompt_duration", 10*time.Second)
	v.SetDefault("survey.complete_delay", 1500*time.Millisecond)
	v.SetDefault("survey.title", "📝 Satisfaction survey")
	v.SetDefault("survey.message", "We'd love to hear what you think of the platform. It only takes a couple of minutes!")
	v.SetDefault("survey.action_label", "Take survey")
	v.SetDefault("notifications.default_duration", 5*time.Second)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", filepath.Join(dir, "state"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dir, "nudge.log"))
}

// Load reads configuration from path. A missing file yields defaults;
// NUDGE_* variables (NUDGE_SURVEY_URL, NUDGE_STORAGE_BACKEND, ...) override
// both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("NUDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			var pathErr *os.PathError
			if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks presence of required values and sign of durations. The
// survey URL is opaque and not parsed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Survey.URL) == "" {
		return errors.New("config: survey.url is required")
	}
	durations := map[string]time.Duration{
		"survey.delay":                   c.Survey.Delay,
		"survey.prompt_duration":         c.Survey.PromptDuration,
		"survey.complete_delay":          c.Survey.CompleteDelay,
		"notifications.default_duration": c.Notifications.DefaultDuration,
	}
	for key, d := range durations {
		if d < 0 {
			return fmt.Errorf("config: %s must not be negative, got %s", key, d)
		}
	}
	if c.Survey.Tick <= 0 {
		return fmt.Errorf("config: survey.tick must be positive, got %s", c.Survey.Tick)
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set("survey", map[string]any{
		"url":             cfg.Survey.URL,
		"delay":           cfg.Survey.Delay.String(),
		"tick":            cfg.Survey.Tick.String(),
		"prompt_duration": cfg.Survey.PromptDuration.String(),
		"complete_delay":  cfg.Survey.CompleteDelay.String(),
		"title":           cfg.Survey.Title,
		"message":         cfg.Survey.Message,
		"action_label":    cfg.Survey.ActionLabel,
	})
	v.Set("notifications", map[string]any{
		"default_duration": cfg.Notifications.DefaultDuration.String(),
	})
	v.Set("storage", map[string]any{"backend": cfg.Storage.Backend, "path": cfg.Storage.Path})
	v.Set("log", map[string]any{"level": cfg.Log.Level, "file": cfg.Log.File})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
