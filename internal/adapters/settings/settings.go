// Package settings loads the global ptask settings through viper.
package settings

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PTASK_LOG_LEVEL.
	EnvPrefix = "PTASK"
	// EnvConfig names an explicit settings file.
	EnvConfig = "PTASK_CONFIG"
	// DefaultDir holds the settings file and the persisted results.
	DefaultDir = ".ptask"
)

// Settings holds the global configuration.
type Settings struct {
	LogLevel       string        `mapstructure:"log_level"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	MaxCommandLine int           `mapstructure:"max_command_line"`
	ResultsPath    string        `mapstructure:"results_path"`
	CASDir         string        `mapstructure:"cas_dir"`
	Manifest       string        `mapstructure:"manifest"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("tick_interval", 16*time.Millisecond)
	v.SetDefault("max_command_line", domain.DefaultMaxCommandLine)
	v.SetDefault("results_path", filepath.Join(DefaultDir, "results.json"))
	v.SetDefault("cas_dir", filepath.Join(DefaultDir, "cas"))
	v.SetDefault("manifest", "ptask.yaml")
}

// Load reads settings from file, then PTASK_* environment variables, then defaults.
// An empty file selects ./.ptask/config.toml, which may be absent.
func Load(file string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(DefaultDir)
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, zerr.With(zerr.Wrap(err, "failed to read settings"), "file", file)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, zerr.Wrap(err, "failed to decode settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFromEnv loads settings from the file named by PTASK_CONFIG, if set.
func LoadFromEnv() (*Settings, error) {
	return Load(os.Getenv(EnvConfig))
}

// Validate rejects values the host cannot run with.
func (s *Settings) Validate() error {
	if s.TickInterval <= 0 {
		return zerr.With(zerr.New("tick interval must be positive"), "tick_interval", s.TickInterval)
	}
	if s.MaxCommandLine <= 0 {
		return zerr.With(zerr.New("max command line must be positive"), "max_command_line", s.MaxCommandLine)
	}
	return nil
}
