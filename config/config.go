// Package config loads logkit settings from a YAML file, .env files and
// LOGKIT_* environment variables, and turns them into a ready Logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/trickstertwo/logkit"
	logrusadapter "github.com/trickstertwo/logkit/adapter/logrus"
	slogadapter "github.com/trickstertwo/logkit/adapter/slog"
	zapadapter "github.com/trickstertwo/logkit/adapter/zap"
	zerologadapter "github.com/trickstertwo/logkit/adapter/zerolog"
)

// Backend names accepted in the "backend" key.
const (
	BackendConsole = "console"
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
	BackendSlog    = "slog"
	BackendLogrus  = "logrus"
)

// Format names accepted in the "format" key.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

// EnvPrefix is prepended to every environment override, e.g. LOGKIT_BACKEND.
const EnvPrefix = "LOGKIT"

var (
	ErrUnknownBackend = errors.New("config: unknown backend")
	ErrUnknownFormat  = errors.New("config: unknown format")
)

// DotEnvPaths are the .env files Load tries when Options.DotEnv is nil.
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
}

// Config holds the logger settings.
type Config struct {
	// Backend selects the structured adapter, or "console" for none.
	Backend string `mapstructure:"backend"`
	// Format is json, text or console; its meaning is backend specific.
	Format string `mapstructure:"format"`
	// Subsystem overrides the main module path reported to the backend.
	Subsystem string `mapstructure:"subsystem"`
	// PreviewEnv names the variable that forces console output when true.
	PreviewEnv string `mapstructure:"preview_env"`
	// Structured is the host's structured-logging capability flag.
	Structured bool `mapstructure:"structured"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an optional YAML file. Missing files are an error when set.
	File string
	// DotEnv lists .env files to load first; nil means DotEnvPaths.
	// Files that do not exist are skipped.
	DotEnv []string
}

// Load reads configuration with precedence env > file > defaults.
func Load(opts Options) (*Config, error) {
	if err := loadDotEnvFiles(opts.DotEnv); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", BackendConsole)
	v.SetDefault("format", FormatJSON)
	v.SetDefault("subsystem", "")
	v.SetDefault("preview_env", logkit.DefaultPreviewEnv)
	v.SetDefault("structured", true)
}

// loadDotEnvFiles loads every existing file. godotenv never overrides
// variables that are already set.
func loadDotEnvFiles(paths []string) error {
	if paths == nil {
		paths = DotEnvPaths
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
	}
	return nil
}

// Validate reports unknown backend or format names.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendConsole, BackendZap, BackendZerolog, BackendSlog, BackendLogrus:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	switch c.Format {
	case FormatJSON, FormatText, FormatConsole:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	return nil
}

// NewLogger builds a Logger writing to w (os.Stdout when nil). The console
// backend never uses structured logging; other backends honour Structured.
func (c *Config) NewLogger(w io.Writer) (*logkit.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stdout
	}

	b := logkit.NewBuilder().
		WithWriter(w).
		WithPreviewProbe(logkit.EnvProbe(c.PreviewEnv))
	if c.Subsystem != "" {
		b = b.WithSubsystem(c.Subsystem)
	}
	if a := c.adapter(w); a != nil {
		b = b.WithAdapter(a).WithStructured(c.Structured)
	}

	l, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s logger: %w", c.Backend, err)
	}
	return l, nil
}

func (c *Config) adapter(w io.Writer) logkit.Adapter {
	pretty := c.Format != FormatJSON
	switch c.Backend {
	case BackendZap:
		return zapadapter.NewAdapter(zapadapter.Config{Writer: w, Console: pretty})
	case BackendZerolog:
		return zerologadapter.NewAdapter(zerologadapter.Config{Writer: w, Console: pretty})
	case BackendSlog:
		format := slogadapter.FormatJSON
		if pretty {
			format = slogadapter.FormatText
		}
		return slogadapter.NewAdapter(slogadapter.Config{Writer: w, Format: format})
	case BackendLogrus:
		return logrusadapter.NewAdapter(logrusadapter.Config{Writer: w, Text: pretty})
	default:
		return nil
	}
}
