package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(nil)
	if cfg.App.Bin != "docker" {
		t.Fatalf("expected docker binary, got %q", cfg.App.Bin)
	}
	if cfg.App.Host != "" {
		t.Fatalf("expected empty host, got %q", cfg.App.Host)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.TopInterval != 2*time.Second || cfg.App.StatsInterval != 2*time.Second {
		t.Fatalf("unexpected intervals: %s / %s", cfg.App.TopInterval, cfg.App.StatsInterval)
	}
	if cfg.App.LogTail != 20 {
		t.Fatalf("expected log tail 20, got %d", cfg.App.LogTail)
	}
	if cfg.Logging.Trace || cfg.Logging.FilePath != "" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	environ := []string{
		"DOCKPEEK_BIN=podman",
		"DOCKPEEK_HOST=tcp://10.0.0.5:2375",
		"DOCKPEEK_WIDTH=120",
		"DOCKPEEK_HEIGHT=40",
		"DOCKPEEK_FOOTER=true",
		"DOCKPEEK_VERBOSE=1",
		"DOCKPEEK_TRACE=true",
		"DOCKPEEK_LOG_FILE=/tmp/dockpeek.log",
		"DOCKPEEK_TOP_INTERVAL=750ms",
		"DOCKPEEK_STATS_INTERVAL=3s",
		"DOCKPEEK_LOG_TAIL=50",
	}
	cfg := FromEnv(environ)
	if cfg.App.Bin != "podman" {
		t.Fatalf("expected podman, got %q", cfg.App.Bin)
	}
	if cfg.App.Host != "tcp://10.0.0.5:2375" {
		t.Fatalf("unexpected host %q", cfg.App.Host)
	}
	if cfg.App.Width != 120 || cfg.App.Height != 40 {
		t.Fatalf("unexpected dimensions %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.ShowFooter || !cfg.App.Verbose {
		t.Fatalf("expected footer and verbose enabled")
	}
	if cfg.App.TopInterval != 750*time.Millisecond {
		t.Fatalf("unexpected top interval %s", cfg.App.TopInterval)
	}
	if cfg.App.StatsInterval != 3*time.Second {
		t.Fatalf("unexpected stats interval %s", cfg.App.StatsInterval)
	}
	if cfg.App.LogTail != 50 {
		t.Fatalf("unexpected log tail %d", cfg.App.LogTail)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/dockpeek.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestFromEnvRespectsDockerHost(t *testing.T) {
	cfg := FromEnv([]string{"DOCKER_HOST=unix:///run/user/1000/docker.sock"})
	if cfg.App.Host != "unix:///run/user/1000/docker.sock" {
		t.Fatalf("expected DOCKER_HOST fallback, got %q", cfg.App.Host)
	}

	cfg = FromEnv([]string{
		"DOCKER_HOST=unix:///run/user/1000/docker.sock",
		"DOCKPEEK_HOST=tcp://remote:2375",
	})
	if cfg.App.Host != "tcp://remote:2375" {
		t.Fatalf("expected DOCKPEEK_HOST to win, got %q", cfg.App.Host)
	}
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	cfg := FromEnv([]string{
		"DOCKPEEK_WIDTH=wide",
		"DOCKPEEK_FOOTER=sure",
		"DOCKPEEK_TOP_INTERVAL=fast",
	})
	if cfg.App.Width != 0 {
		t.Fatalf("expected malformed width to fall back, got %d", cfg.App.Width)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("expected malformed bool to fall back")
	}
	if cfg.App.TopInterval != 2*time.Second {
		t.Fatalf("expected malformed duration to fall back, got %s", cfg.App.TopInterval)
	}
}

func TestValidate(t *testing.T) {
	valid := FromEnv(nil)
	if err := Validate(valid); err != nil {
		t.Fatalf("unexpected error for defaults: %v", err)
	}

	cases := []struct {
		name     string
		mutate   func(*Config)
		fragment string
	}{
		{"blank bin", func(c *Config) { c.App.Bin = "  " }, "runtime binary"},
		{"negative width", func(c *Config) { c.App.Width = -1 }, "width"},
		{"negative height", func(c *Config) { c.App.Height = -2 }, "height"},
		{"fast top", func(c *Config) { c.App.TopInterval = 50 * time.Millisecond }, "top interval"},
		{"fast stats", func(c *Config) { c.App.StatsInterval = time.Millisecond }, "stats interval"},
		{"negative tail", func(c *Config) { c.App.LogTail = -1 }, "log tail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := FromEnv(nil)
			tc.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Fatalf("expected error mentioning %q, got %v", tc.fragment, err)
			}
		})
	}
}

func TestSnapshotRecordsFlagsAndArgs(t *testing.T) {
	cfg := FromEnv(nil)
	cfg.App.Container = "a1b2c3"
	args := []string{"--footer", "a1b2c3"}
	cfg.Snapshot(args)
	if cfg.Flags["container"] != "a1b2c3" {
		t.Fatalf("expected container flag recorded, got %q", cfg.Flags["container"])
	}
	if cfg.Flags["top-interval"] != "2s" {
		t.Fatalf("expected top-interval 2s, got %q", cfg.Flags["top-interval"])
	}
	if len(cfg.Args) != 2 || cfg.Args[0] != "--footer" {
		t.Fatalf("unexpected args %v", cfg.Args)
	}
	args[1] = "mutated"
	if cfg.Args[1] != "a1b2c3" {
		t.Fatalf("expected args copy to be independent")
	}
}
