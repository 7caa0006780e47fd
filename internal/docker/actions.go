package docker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kill delivers a signal to one process inside the container, using the
// container's own kill binary so the PID resolves in its namespace.
func (c *Client) Kill(ctx context.Context, id string, pid int, signal string) error {
	target := strings.TrimSpace(id)
	if target == "" {
		return fmt.Errorf("container id required")
	}
	if pid <= 0 {
		return fmt.Errorf("pid must be positive")
	}
	sig := normalizeSignal(signal)
	if sig == "" {
		return fmt.Errorf("signal required")
	}
	_, err := c.run(ctx, "exec", target, "kill", "-"+sig, strconv.Itoa(pid))
	return err
}

// Ping asks the daemon for its version, verifying both that the CLI
// binary exists and that a daemon answers on the configured host.
func (c *Client) Ping(ctx context.Context) (string, error) {
	output, err := c.run(ctx, "version", "--format", "{{.Server.Version}}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// normalizeSignal accepts "term", "TERM" and "SIGTERM" alike.
func normalizeSignal(signal string) string {
	sig := strings.ToUpper(strings.TrimSpace(signal))
	if len(sig) > 3 && strings.HasPrefix(sig, "SIG") {
		sig = sig[3:]
	}
	return sig
}
