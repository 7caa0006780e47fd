package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
)

type statsPayload struct {
	CPUPerc  string `json:"CPUPerc"`
	MemPerc  string `json:"MemPerc"`
	MemUsage string `json:"MemUsage"`
	NetIO    string `json:"NetIO"`
	BlockIO  string `json:"BlockIO"`
	PIDs     string `json:"PIDs"`
}

// Stats takes a single resource-usage reading for the container.
func (c *Client) Stats(ctx context.Context, id string) (StatsSample, error) {
	target := strings.TrimSpace(id)
	if target == "" {
		return StatsSample{}, fmt.Errorf("container id required")
	}
	output, err := c.run(ctx, "stats", "--no-stream", "--format", "{{json .}}", target)
	if err != nil {
		return StatsSample{}, err
	}
	return parseStats(target, string(output))
}

func parseStats(id, raw string) (StatsSample, error) {
	doc := strings.TrimSpace(raw)
	if doc == "" {
		return StatsSample{}, fmt.Errorf("stats %s: empty output", id)
	}
	// A multi-line response keeps only the first reading.
	if idx := strings.IndexByte(doc, '\n'); idx >= 0 {
		doc = doc[:idx]
	}
	var payload statsPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return StatsSample{}, fmt.Errorf("stats %s: %w", id, err)
	}
	sample := StatsSample{
		At:         time.Now(),
		CPUPercent: parsePercent(payload.CPUPerc),
		MemPercent: parsePercent(payload.MemPerc),
		NetIO:      strings.TrimSpace(payload.NetIO),
		BlockIO:    strings.TrimSpace(payload.BlockIO),
		PIDs:       parseCount(payload.PIDs),
	}
	sample.MemUsed, sample.MemLimit = parseMemUsage(payload.MemUsage)
	return sample, nil
}

// parsePercent reads values like "12.34%"; the runtime reports "--" for
// containers it cannot sample.
func parsePercent(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" || s == "--" {
		return 0
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return 0
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return value
}

// parseMemUsage splits "16.22MiB / 1.944GiB" into used and limit bytes.
func parseMemUsage(s string) (uint64, uint64) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	used, err := humanize.ParseBytes(strings.TrimSpace(parts[0]))
	if err != nil {
		used = 0
	}
	limit, err := humanize.ParseBytes(strings.TrimSpace(parts[1]))
	if err != nil {
		limit = 0
	}
	return used, limit
}
