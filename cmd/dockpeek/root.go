package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dockpeek/internal/app"
	"dockpeek/internal/config"
	"dockpeek/internal/docker"
	"dockpeek/internal/logging"
	"dockpeek/internal/logging/events"
)

// cfg starts from DOCKPEEK_* environment defaults; cobra flags overwrite the
// fields they are bound to before any RunE fires.
var cfg = config.FromEnv(os.Environ())

// Seams swapped out by tests.
var (
	runTUI         = app.Run
	runtimeFactory = func() runtimeClient {
		return docker.NewClient(cfg.App.Bin, cfg.App.Host)
	}
)

// runtimeClient is the slice of the docker client the subcommands need.
type runtimeClient interface {
	Ping(ctx context.Context) (string, error)
	Top(ctx context.Context, id string) (docker.TopSnapshot, error)
}

var rootCmd = &cobra.Command{
	Use:   "dockpeek [container]",
	Short: "Browse container process trees from the terminal",
	Long: `dockpeek polls a container runtime CLI (docker or podman) and presents
each container's process table as a navigable tree, with details, live
resource graphs and signal delivery.

Without arguments it opens a container picker. Naming a container (ID,
ID prefix or name) skips the picker and opens it directly.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(cfg); err != nil {
			return err
		}
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		cfg.Snapshot(os.Args[1:])
		events.App.Start(startupTracePayload(cfg))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.App.Container = args[0]
		}
		return runTUI(cfg.App)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.App.Bin, "bin", cfg.App.Bin, "container runtime binary (docker or podman)")
	flags.StringVar(&cfg.App.Host, "host", cfg.App.Host, "runtime host passed as the CLI -H value")
	flags.StringVar(&cfg.Logging.FilePath, "log-file", cfg.Logging.FilePath, "append logs to this file")
	flags.BoolVar(&cfg.Logging.Trace, "trace", cfg.Logging.Trace, "emit JSON trace events to the log file")

	local := rootCmd.Flags()
	local.IntVar(&cfg.App.Width, "width", cfg.App.Width, "fixed UI width (0 = follow the terminal)")
	local.IntVar(&cfg.App.Height, "height", cfg.App.Height, "fixed UI height (0 = follow the terminal)")
	local.BoolVar(&cfg.App.ShowFooter, "footer", cfg.App.ShowFooter, "show the key hint footer")
	local.BoolVar(&cfg.App.Verbose, "verbose", cfg.App.Verbose, "show snapshot freshness detail")
	local.DurationVar(&cfg.App.TopInterval, "top-interval", cfg.App.TopInterval, "process table poll interval")
	local.DurationVar(&cfg.App.StatsInterval, "stats-interval", cfg.App.StatsInterval, "resource stats poll interval")
	local.IntVar(&cfg.App.LogTail, "log-tail", cfg.App.LogTail, "log lines shown in the picker preview")
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and
// dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
