// Package config manages application configuration from environment variables,
// an optional config file, and default values.
package config

import "time"

// Config defines the application configuration. Values can be set via environment
// variables prefixed with CLANWATCH_ (e.g., CLANWATCH_CLAN_TAG) or through config.yaml.
// The two credentials also honour their historical names CR_ACCESS_KEY and
// LINE_NOTIFY_ACCESS_TOKEN.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Clan      ClanConfig      `mapstructure:"clan"`
	Report    ReportConfig    `mapstructure:"report"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ClanConfig points the member fetcher at the game API.
type ClanConfig struct {
	BaseURL   string        `mapstructure:"base_url"   validate:"required,url"`
	Tag       string        `mapstructure:"tag"        validate:"required"`
	AccessKey string        `mapstructure:"access_key" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"min=1s,max=5m"`
}

// ReportConfig defines what counts as inactive and how each member line is rendered.
type ReportConfig struct {
	Window time.Duration `mapstructure:"window" validate:"min=1m"`
	Detail string        `mapstructure:"detail" validate:"required,oneof=date elapsed"`
}

// NotifyConfig selects and configures the notification backend.
type NotifyConfig struct {
	Kind           string `mapstructure:"kind"             validate:"required,oneof=webhook telegram"`
	URL            string `mapstructure:"url"              validate:"required_if=Kind webhook,omitempty,url"`
	Token          string `mapstructure:"token"            validate:"required"`
	TelegramChatID string `mapstructure:"telegram_chat_id" validate:"required_if=Kind telegram"`
}

// SchedulerConfig holds the cron schedule of every named task.
type SchedulerConfig struct {
	RunOnStart bool                  `mapstructure:"run_on_start"`
	Tasks      map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig is the schedule of a single task. Schedule is a cron
// expression with a leading seconds field.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
