package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dockpeek/internal/logging/events"
)

const topColumns = "pid,ppid,args"

// Top captures the container's process table. Rows keep their raw
// string fields so a bad snapshot surfaces as a build error, not a
// silent drop here.
func (c *Client) Top(ctx context.Context, id string) (TopSnapshot, error) {
	target := strings.TrimSpace(id)
	if target == "" {
		return TopSnapshot{}, fmt.Errorf("container id required")
	}
	output, err := c.run(ctx, "top", target, "-eo", topColumns)
	if err != nil {
		return TopSnapshot{}, err
	}
	snapshot, err := parseTop(target, string(output))
	if err != nil {
		return TopSnapshot{}, err
	}
	events.Docker.Snapshot("top", len(snapshot.Rows))
	return snapshot, nil
}

// parseTop maps columns by the title row rather than by position: some
// runtimes ignore the requested -eo columns and emit their own layout.
func parseTop(id, raw string) (TopSnapshot, error) {
	lines := strings.Split(raw, "\n")
	var titles []string
	pidIdx, ppidIdx, cmdIdx := -1, -1, -1
	rows := make([]ProcessRow, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if titles == nil {
			titles = fields
			for i, title := range titles {
				switch strings.ToUpper(title) {
				case "PID":
					pidIdx = i
				case "PPID":
					ppidIdx = i
				case "COMMAND", "CMD", "ARGS":
					cmdIdx = i
				}
			}
			if pidIdx < 0 || ppidIdx < 0 {
				return TopSnapshot{}, fmt.Errorf("top %s: missing PID/PPID columns in %q", id, strings.Join(titles, " "))
			}
			if cmdIdx < 0 {
				return TopSnapshot{}, fmt.Errorf("top %s: missing command column in %q", id, strings.Join(titles, " "))
			}
			continue
		}
		if len(fields) <= pidIdx || len(fields) <= ppidIdx || len(fields) <= cmdIdx {
			continue
		}
		rows = append(rows, ProcessRow{
			PID:     fields[pidIdx],
			PPID:    fields[ppidIdx],
			Command: strings.Join(fields[cmdIdx:], " "),
		})
	}
	if titles == nil {
		return TopSnapshot{}, fmt.Errorf("top %s: empty output", id)
	}
	return TopSnapshot{
		ContainerID: id,
		Titles:      titles,
		Rows:        rows,
		FetchedAt:   time.Now(),
	}, nil
}
