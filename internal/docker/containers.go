package docker

import (
	"context"
	"encoding/json"
	"strings"

	"dockpeek/internal/logging/events"
)

// Containers lists all containers, stopped ones included, in the order
// the runtime reports them. Lines that fail to decode are skipped.
func (c *Client) Containers(ctx context.Context) ([]Container, error) {
	output, err := c.run(ctx, "ps", "-a", "--format", "{{json .}}")
	if err != nil {
		return nil, err
	}
	containers := parseContainers(string(output))
	events.Docker.Snapshot("containers", len(containers))
	return containers, nil
}

func parseContainers(raw string) []Container {
	lines := strings.Split(raw, "\n")
	out := make([]Container, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry Container
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entry.ID == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}
