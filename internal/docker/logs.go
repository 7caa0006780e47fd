package docker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Logs returns the trailing lines of the container's output, stdout and
// stderr interleaved. ANSI escapes pass through untouched so colored
// logs render as-is in the preview panel.
func (c *Client) Logs(ctx context.Context, id string, tail int) ([]string, error) {
	target := strings.TrimSpace(id)
	if target == "" {
		return nil, fmt.Errorf("container id required")
	}
	if tail <= 0 {
		tail = 20
	}
	output, err := c.runCombined(ctx, "logs", "--tail", strconv.Itoa(tail), target)
	if err != nil {
		return nil, err
	}
	return splitLogLines(string(output)), nil
}

func splitLogLines(raw string) []string {
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return []string{}
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
