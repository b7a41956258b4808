// Package config resolves runtime settings from a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/domain"
)

// Prefix marks the environment keys this package reads.
const Prefix = "TERMFOLIO_"

// DefaultEnvFile is read when no explicit path is given.
const DefaultEnvFile = ".env"

// Config holds every setting a command may need. Zero values mean "use the component default".
type Config struct {
	Locale     string        `mapstructure:"locale"`
	SkipBoot   bool          `mapstructure:"skip_boot"`
	FrameDelay time.Duration `mapstructure:"frame_delay"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFile    string        `mapstructure:"log_file"`
	Port       int           `mapstructure:"port"`
	RedisURL   string        `mapstructure:"redis_url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	SessionDir string        `mapstructure:"session_dir"`
	Redact     bool          `mapstructure:"redact"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Port:     8080,
	}
}

// Load reads envFile (DefaultEnvFile when empty), overlays the process environment and decodes
// the TERMFOLIO_* keys. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	return LoadFrom(envFile, os.Environ())
}

// LoadFrom is Load with an explicit environment in os.Environ form.
func LoadFrom(envFile string, environ []string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	values, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		values = map[string]string{}
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			values[k] = v
		}
	}

	return Decode(values)
}

// Decode maps TERMFOLIO_* entries of values onto a Config, on top of Default.
// Other keys are ignored.
func Decode(values map[string]string) (*Config, error) {
	input := make(map[string]any)
	for k, v := range values {
		if !strings.HasPrefix(k, Prefix) {
			continue
		}
		input[strings.ToLower(strings.TrimPrefix(k, Prefix))] = strings.TrimSpace(v)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component could use.
func (c *Config) Validate() error {
	var errs []error
	if c.Locale != "" {
		if _, err := domain.ParseLocale(c.Locale); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.FrameDelay < 0 {
		errs = append(errs, fmt.Errorf("negative frame delay %s", c.FrameDelay))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("negative session ttl %s", c.SessionTTL))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level. Invalid levels fall back to info.
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// ParsedLocale returns the fixed locale and whether one is configured.
func (c *Config) ParsedLocale() (domain.Locale, bool) {
	if c.Locale == "" {
		return "", false
	}
	locale, err := domain.ParseLocale(c.Locale)
	return locale, err == nil
}
