package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dockpeek/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBin           = "DOCKPEEK_BIN"
	envHost          = "DOCKPEEK_HOST"
	envDockerHost    = "DOCKER_HOST"
	envWidth         = "DOCKPEEK_WIDTH"
	envHeight        = "DOCKPEEK_HEIGHT"
	envShowFooter    = "DOCKPEEK_FOOTER"
	envVerbose       = "DOCKPEEK_VERBOSE"
	envTrace         = "DOCKPEEK_TRACE"
	envLogFile       = "DOCKPEEK_LOG_FILE"
	envTopInterval   = "DOCKPEEK_TOP_INTERVAL"
	envStatsInterval = "DOCKPEEK_STATS_INTERVAL"
	envLogTail       = "DOCKPEEK_LOG_TAIL"
)

const (
	defaultBin           = "docker"
	defaultTopInterval   = 2 * time.Second
	defaultStatsInterval = 2 * time.Second
	defaultLogTail       = 20
	minimumInterval      = 100 * time.Millisecond
)

// FromEnv derives default configuration from environment variables. Command
// line flags layer on top of the returned value before Validate runs.
func FromEnv(environ []string) Config {
	env := parseEnv(environ)
	return Config{
		App: app.Config{
			Bin:           envOrDefault(env, envBin, defaultBin),
			Host:          envOrDefault(env, envHost, envOrDefault(env, envDockerHost, "")),
			Width:         envOrInt(env, envWidth, 0),
			Height:        envOrInt(env, envHeight, 0),
			ShowFooter:    envOrBool(env, envShowFooter, false),
			Verbose:       envOrBool(env, envVerbose, false),
			TopInterval:   envOrDuration(env, envTopInterval, defaultTopInterval),
			StatsInterval: envOrDuration(env, envStatsInterval, defaultStatsInterval),
			LogTail:       envOrInt(env, envLogTail, defaultLogTail),
		},
		Logging: Logging{
			FilePath: envOrDefault(env, envLogFile, ""),
			Trace:    envOrBool(env, envTrace, false),
		},
	}
}

// Snapshot records the effective flag values and argv for trace logging.
func (c *Config) Snapshot(args []string) {
	c.Flags = map[string]string{
		"bin":            c.App.Bin,
		"host":           c.App.Host,
		"container":      c.App.Container,
		"width":          strconv.Itoa(c.App.Width),
		"height":         strconv.Itoa(c.App.Height),
		"footer":         strconv.FormatBool(c.App.ShowFooter),
		"verbose":        strconv.FormatBool(c.App.Verbose),
		"top-interval":   c.App.TopInterval.String(),
		"stats-interval": c.App.StatsInterval.String(),
		"log-tail":       strconv.Itoa(c.App.LogTail),
		"trace":          strconv.FormatBool(c.Logging.Trace),
		"log-file":       c.Logging.FilePath,
	}
	c.Args = append([]string(nil), args...)
}

// Validate ensures the assembled configuration is usable.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Bin) == "" {
		return fmt.Errorf("runtime binary must not be empty")
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.TopInterval < minimumInterval {
		return fmt.Errorf("top interval must be >= %s (got %s)", minimumInterval, cfg.App.TopInterval)
	}
	if cfg.App.StatsInterval < minimumInterval {
		return fmt.Errorf("stats interval must be >= %s (got %s)", minimumInterval, cfg.App.StatsInterval)
	}
	if cfg.App.LogTail < 0 {
		return fmt.Errorf("log tail must be >= 0 (got %d)", cfg.App.LogTail)
	}
	return nil
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
