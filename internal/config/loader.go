package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/edgard/clanwatch/internal/errors"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "CLANWATCH"

// LoadEnvFile loads variables from a dotenv file into the process environment.
// An empty path means ".env" in the working directory, which may be absent.
// Variables already present in the environment are not overridden.
func LoadEnvFile(path string) error {
	optional := path == ""
	if optional {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.NewConfigError(fmt.Sprintf("failed to load env file %s", path), err)
	}

	return nil
}

// Load loads and validates configuration from:
// 1. Default values
// 2. the config file at path, or an optional config.yaml in the working directory
// 3. CLANWATCH_* environment variables (plus CR_ACCESS_KEY and LINE_NOTIFY_ACCESS_TOKEN)
//
// Missing credentials are reported here, before any network client is built.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("clan.access_key", EnvPrefix+"_CLAN_ACCESS_KEY", EnvClanAccessKey); err != nil {
		return nil, apperrors.NewConfigError("failed to bind clan access key", err)
	}
	if err := v.BindEnv("notify.token", EnvPrefix+"_NOTIFY_TOKEN", EnvNotifyToken); err != nil {
		return nil, apperrors.NewConfigError("failed to bind notify token", err)
	}

	if err := readConfigFile(v, path); err != nil {
		return nil, apperrors.NewConfigError("failed to load config file", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readConfigFile reads an explicit config file, or config.yaml from the working
// directory when path is empty. Only the implicit file may be missing.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// Validate checks the struct tags of the whole configuration and lists every
// offending field in a single CONFIG error.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewConfigError("configuration validation failed", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}

	return apperrors.NewConfigError(
		"invalid configuration: "+strings.Join(problems, ", "),
		ErrValidation,
	)
}

// ErrValidation is the cause of every error returned by Validate.
var ErrValidation = errors.New("validation error")
