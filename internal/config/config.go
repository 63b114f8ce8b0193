package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/list-creation/internal/app"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envSource        = "LIST_CREATION_SOURCE"
	envTimeout       = "LIST_CREATION_TIMEOUT"
	envRetryInterval = "LIST_CREATION_RETRY_INTERVAL"
	envWidth         = "LIST_CREATION_WIDTH"
	envHeight        = "LIST_CREATION_HEIGHT"
	envShowFooter    = "LIST_CREATION_FOOTER"
	envVerbose       = "LIST_CREATION_VERBOSE"
	envTrace         = "LIST_CREATION_TRACE"
	envLogFile       = "LIST_CREATION_LOG_FILE"
)

// Flags holds the values bound to a flag set. Environment variables supply
// the defaults, so an explicit flag always wins.
type Flags struct {
	source        *string
	timeout       *time.Duration
	retryInterval *time.Duration
	width         *int
	height        *int
	footer        *bool
	trace         *bool
	verbose       *bool
	logFile       *string
}

// Register binds the application flags to fs.
func Register(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		source:        fs.String("source", envOrDefault(env, envSource, source.DefaultURL), "lists endpoint URL or path to a .json/.yaml fixture"),
		timeout:       fs.Duration("timeout", envOrDuration(env, envTimeout, 10*time.Second), "HTTP timeout for a single fetch (0 disables)"),
		retryInterval: fs.Duration("retry-interval", envOrDuration(env, envRetryInterval, 250*time.Millisecond), "minimum spacing between successive fetches"),
		width:         fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:        fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:        fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key hint row"),
		trace:         fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		verbose:       fs.Bool("verbose", envOrBool(env, envVerbose, false), "report successful merges on the status line"),
		logFile:       fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Config resolves the bound values. args is recorded for startup tracing.
func (f *Flags) Config(args []string) (Config, error) {
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}
	cfg := Config{
		App: app.Config{
			Source:        strings.TrimSpace(*f.source),
			Timeout:       *f.timeout,
			RetryInterval: *f.retryInterval,
			Width:         *f.width,
			Height:        *f.height,
			ShowFooter:    *f.footer,
			Verbose:       *f.verbose,
		},
		Logging: Logging{
			FilePath: *f.logFile,
			Trace:    *f.trace,
		},
		Features: Features{
			Verbose: *f.verbose,
		},
		Flags: map[string]string{
			"source":        *f.source,
			"timeout":       f.timeout.String(),
			"retryInterval": f.retryInterval.String(),
			"width":         strconv.Itoa(*f.width),
			"height":        strconv.Itoa(*f.height),
			"footer":        strconv.FormatBool(*f.footer),
			"trace":         strconv.FormatBool(*f.trace),
			"verbose":       strconv.FormatBool(*f.verbose),
			"logFile":       *f.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("list-creation", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Config(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Source == "" {
		errs = append(errs, errors.New("source must not be empty"))
	}
	if cfg.App.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must be >= 0 (got %s)", cfg.App.Timeout))
	}
	if cfg.App.RetryInterval < 0 {
		errs = append(errs, fmt.Errorf("retry-interval must be >= 0 (got %s)", cfg.App.RetryInterval))
	}
	return errors.Join(errs...)
}
