package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"dockpeek/internal/docker"
)

const previewFetchTimeout = 5 * time.Second

// previewData caches the side-panel content for one container so moving the
// cursor back to it does not refetch.
type previewData struct {
	target  string
	label   string
	lines   []string
	err     error
	loading bool
	seq     int
	rawANSI bool
}

type previewLoadedMsg struct {
	target  string
	seq     int
	lines   []string
	err     error
	rawANSI bool
}

// ensurePreviewForPicker kicks off a detail fetch for the container under the
// picker cursor unless a usable preview is already cached.
func (m *Model) ensurePreviewForPicker() tea.Cmd {
	if m.mode != ModePicker || m.picker == nil {
		return nil
	}
	item, ok := m.picker.Current()
	if !ok {
		return nil
	}
	if existing, found := m.preview[item.ID]; found {
		if existing.target == item.ID && !existing.loading {
			return nil
		}
		if existing.loading {
			return nil
		}
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview[item.ID] = &previewData{
		target:  item.ID,
		label:   item.Label,
		loading: true,
		seq:     seq,
	}
	client := m.client
	target := item.ID
	tail := m.logTail
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), previewFetchTimeout)
		defer cancel()
		details, err := client.Inspect(ctx, target)
		if err != nil {
			return previewLoadedMsg{target: target, seq: seq, err: err}
		}
		lines := previewSummaryLines(details)
		lines = append(lines, "", "recent logs:")
		logs, logErr := client.Logs(ctx, target, tail)
		switch {
		case logErr != nil:
			lines = append(lines, fmt.Sprintf("(logs unavailable: %s)", logErr))
		case len(logs) == 0:
			lines = append(lines, "(no log output)")
		default:
			lines = append(lines, logs...)
		}
		return previewLoadedMsg{target: target, seq: seq, lines: lines, rawANSI: true}
	}
}

func previewSummaryLines(details docker.Details) []string {
	lines := make([]string, 0, 8)
	add := func(key, value string) {
		if value == "" {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: %s", key, value))
	}
	add("name", details.Name)
	add("image", details.Image)
	add("status", details.Status)
	if !details.Created.IsZero() {
		add("created", humanize.Time(details.Created))
	}
	add("command", details.Command)
	add("ip", details.IPAddress)
	add("ports", strings.Join(details.Ports, ", "))
	return lines
}

func (m *Model) handlePreviewLoadedMsg(message tea.Msg) tea.Cmd {
	loaded, ok := message.(previewLoadedMsg)
	if !ok {
		return nil
	}
	existing, found := m.preview[loaded.target]
	if !found || existing.seq != loaded.seq {
		// A newer fetch superseded this one.
		return nil
	}
	existing.loading = false
	existing.lines = loaded.lines
	existing.err = loaded.err
	existing.rawANSI = loaded.rawANSI
	return nil
}

// prunePreviews drops cached previews for containers that left the list.
func (m *Model) prunePreviews(entries []docker.Container) {
	if len(m.preview) == 0 {
		return
	}
	keep := make(map[string]bool, len(entries))
	for _, entry := range entries {
		keep[entry.ID] = true
	}
	for id := range m.preview {
		if !keep[id] {
			delete(m.preview, id)
		}
	}
}

// activePreview returns the preview for the container under the cursor.
func (m *Model) activePreview() *previewData {
	if m.picker == nil {
		return nil
	}
	item, ok := m.picker.Current()
	if !ok {
		return nil
	}
	data, found := m.preview[item.ID]
	if !found || data.target != item.ID {
		return nil
	}
	return data
}

func previewTitleText(data *previewData) string {
	if data == nil {
		return ""
	}
	title := data.label
	if title == "" {
		title = data.target
	}
	if data.loading {
		title += " (loading…)"
	}
	return title
}

func previewBodyLines(data *previewData) []string {
	if data == nil {
		return nil
	}
	if data.loading {
		return []string{"fetching container details…"}
	}
	if data.err != nil {
		return strings.Split(fmt.Sprintf("error: %s", data.err), "\n")
	}
	return data.lines
}
