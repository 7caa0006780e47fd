// Package docker shells out to the container runtime CLI and parses its
// output into typed snapshots. Every call builds a fresh command; there
// is no persistent connection to the daemon.
package docker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"dockpeek/internal/logging/events"
)

// Client runs runtime CLI commands. The zero value is unusable; build
// one with NewClient.
type Client struct {
	bin  string
	host string
}

// NewClient returns a client for the given runtime binary. An empty bin
// falls back to "docker"; a non-empty host is injected as `-H <host>`
// on every invocation.
func NewClient(bin, host string) *Client {
	if strings.TrimSpace(bin) == "" {
		bin = "docker"
	}
	return &Client{bin: strings.TrimSpace(bin), host: strings.TrimSpace(host)}
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append(c.baseArgs(), args...)
	started := time.Now()
	output, err := runExecCommand(ctx, c.bin, full...).Output()
	events.Docker.Exec(append([]string{c.bin}, full...), time.Since(started), err)
	if err != nil {
		return nil, c.wrapError(full, err)
	}
	return output, nil
}

// runCombined merges stdout and stderr, for commands like `logs` where
// the container's own stderr stream is part of the payload.
func (c *Client) runCombined(ctx context.Context, args ...string) ([]byte, error) {
	full := append(c.baseArgs(), args...)
	started := time.Now()
	output, err := runExecCommand(ctx, c.bin, full...).CombinedOutput()
	events.Docker.Exec(append([]string{c.bin}, full...), time.Since(started), err)
	if err != nil {
		return nil, c.wrapError(full, err)
	}
	return output, nil
}

func (c *Client) baseArgs() []string {
	if c.host == "" {
		return []string{}
	}
	return []string{"-H", c.host}
}

// wrapError folds captured stderr into the returned error so callers
// see the CLI's own message ("No such container: ...") instead of a
// bare exit status.
func (c *Client) wrapError(args []string, err error) error {
	verb := c.bin
	if len(args) > 0 {
		verb = fmt.Sprintf("%s %s", c.bin, commandVerb(args))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := firstLine(string(exitErr.Stderr)); msg != "" {
			return fmt.Errorf("%s: %s", verb, msg)
		}
	}
	return fmt.Errorf("%s: %w", verb, err)
}

func commandVerb(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-H" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
