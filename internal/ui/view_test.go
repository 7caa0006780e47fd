package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/backend"
	"dockpeek/internal/docker"
)

func TestSparklineScalesToWindowMax(t *testing.T) {
	if got := sparkline([]float64{0, 50, 100}, 10); got != "▁▄█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := sparkline(nil, 10); got != "" {
		t.Fatalf("expected empty sparkline for no samples, got %q", got)
	}
	// Only the trailing window is drawn.
	if got := sparkline([]float64{100, 1, 2}, 2); got != "▄█" {
		t.Fatalf("expected tail window, got %q", got)
	}
	// Negative samples clamp to the baseline.
	if got := sparkline([]float64{-5, 10}, 10); got != "▁█" {
		t.Fatalf("expected clamped baseline, got %q", got)
	}
}

func TestTruncateTextEllipsis(t *testing.T) {
	if got := truncateText("hello", 10); got != "hello" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	if got := truncateText("hello world", 5); got != "hell…" {
		t.Fatalf("expected ellipsis truncation, got %q", got)
	}
	if got := truncateText("hello", 1); got != "…" {
		t.Fatalf("expected bare ellipsis, got %q", got)
	}
	if got := truncateText("hello", 0); got != "hello" {
		t.Fatalf("expected zero width to disable truncation, got %q", got)
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := limitHeight(lines, 2); len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected clip %q", got)
	}
	if got := limitHeight(lines, 0); len(got) != 3 {
		t.Fatalf("expected no clip for zero max, got %q", got)
	}
}

func TestMaxPickerItemsReservesChrome(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client, Options{})
	if got := m.maxPickerItems(); got != 10 {
		t.Fatalf("expected default window without size, got %d", got)
	}
	m.height = 20
	if got := m.maxPickerItems(); got != 17 {
		t.Fatalf("expected height minus chrome, got %d", got)
	}
	m.showFooter = true
	if got := m.maxPickerItems(); got != 16 {
		t.Fatalf("expected footer to cost one row, got %d", got)
	}
}

func TestStatusLinePrecedence(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client, Options{})

	m.loading = true
	m.pendingLabel = "terminate"
	if text, _ := m.statusLine(); text != "terminate…" {
		t.Fatalf("expected pending label first, got %q", text)
	}

	m.loading = false
	m.errMsg = "kill failed"
	m.listErr = "runtime unreachable"
	m.setInfo("done")
	if text, _ := m.statusLine(); text != "kill failed" {
		t.Fatalf("expected error over list error, got %q", text)
	}

	m.errMsg = ""
	if text, _ := m.statusLine(); text != "runtime unreachable" {
		t.Fatalf("expected list error in picker mode, got %q", text)
	}

	m.mode = ModeInfo
	if text, _ := m.statusLine(); text != "done" {
		t.Fatalf("expected list error hidden outside picker, got %q", text)
	}
}

func TestKeyValueLinesAlignValues(t *testing.T) {
	lines := keyValueLines([][]string{
		{"id", "abc"},
		{"image", "nginx:1.25"},
	}, styles.DetailKey)
	if len(lines) != 2 {
		t.Fatalf("expected two rows, got %d", len(lines))
	}
	first := renderLine(lines[0], 0)
	second := renderLine(lines[1], 0)
	if !strings.HasPrefix(first, "  id") || !strings.HasPrefix(second, "  image") {
		t.Fatalf("unexpected rows %q / %q", first, second)
	}
	if strings.Index(first, "abc") != strings.Index(second, "nginx:1.25") {
		t.Fatalf("expected aligned value column:\n%q\n%q", first, second)
	}
}

func TestViewInfoShowsSections(t *testing.T) {
	client := &fakeClient{}
	h := openSampleContainer(t, client)
	id := client.containers[0].ID

	h.Send(containerEventMsg{event: backend.Event{
		Kind: backend.KindDetails,
		Details: docker.Details{
			ID:     id,
			Name:   "web",
			Image:  "nginx:1.25",
			Status: "Up 2 hours",
		},
	}})
	h.Send(containerEventMsg{event: backend.Event{
		Kind: backend.KindStats,
		Stats: docker.StatsSample{
			At:         time.Now(),
			CPUPercent: 12.5,
			MemPercent: 50,
			MemUsed:    512 * 1024 * 1024,
			MemLimit:   1024 * 1024 * 1024,
			NetIO:      "1.2kB / 648B",
			BlockIO:    "0B / 0B",
			PIDs:       3,
		},
	}})

	view := h.View()
	for _, want := range []string{
		"containers → web",
		"● running",
		"Details",
		"nginx:1.25",
		"Processes",
		"▌",
		"▾",
		"[1]",
		"nginx: master process",
		"Resources",
		"12.5%",
		"512 MiB",
		"1.2kB / 648B",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in info view, got\n%s", want, view)
		}
	}
}

func TestFootersRenderWhenEnabled(t *testing.T) {
	stubWatcherSeam(t)
	client := &fakeClient{containers: sampleContainers()}
	m := newTestModel(t, client, Options{ShowFooter: true})
	h := NewHarness(m)
	h.Send(listEvent(client.containers))
	if !strings.Contains(h.View(), "ctrl+r refresh") {
		t.Fatalf("expected picker footer, got\n%s", h.View())
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(h.View(), "s signal") {
		t.Fatalf("expected info footer, got\n%s", h.View())
	}
}

func TestStateBadgeVariants(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client, Options{})

	m.current = docker.Container{ID: "abc", Name: "web"}
	if line := m.breadcrumbLine(""); strings.Contains(line.text, "●") {
		t.Fatalf("expected no badge without state, got %q", line.text)
	}

	m.current.State = "running"
	if line := m.breadcrumbLine(""); !strings.Contains(line.text, "● running") {
		t.Fatalf("expected running badge, got %q", line.text)
	}

	m.current.State = "exited"
	if line := m.breadcrumbLine(""); !strings.Contains(line.text, "● exited") {
		t.Fatalf("expected exited badge, got %q", line.text)
	}
}

func TestBreadcrumbFallsBackToShortID(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client, Options{})
	m.current = docker.Container{ID: "d9e8f7a6b5c4d3e2"}

	line := m.breadcrumbLine("")
	if !strings.Contains(line.text, "containers → d9e8f7a6b5c4") {
		t.Fatalf("expected short id crumb, got %q", line.text)
	}
	if strings.Contains(line.text, "d9e8f7a6b5c4d3e2") {
		t.Fatalf("expected id clipped to twelve chars, got %q", line.text)
	}
}

func TestVerboseShowsSnapshotFreshness(t *testing.T) {
	stubWatcherSeam(t)
	client := &fakeClient{containers: sampleContainers()}
	m := newTestModel(t, client, Options{Verbose: true})
	h := NewHarness(m)
	h.Send(listEvent(client.containers))
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(processesEvent(sampleTop(client.containers[0].ID)))

	if !strings.Contains(h.View(), "rows, refreshed") {
		t.Fatalf("expected freshness line in verbose mode, got\n%s", h.View())
	}
}

func TestDetailSectionAddsExitCode(t *testing.T) {
	lines := detailSection(docker.Details{
		ID:       "abc",
		Image:    "nginx:1.25",
		Status:   "Exited (137) 5 minutes ago",
		ExitCode: 137,
	})
	var found bool
	for _, line := range lines {
		if strings.Contains(line.text, "exit code") && strings.Contains(line.text, "137") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected exit code row, got %#v", lines)
	}
}

func TestLabelSectionCapsRows(t *testing.T) {
	labels := map[string]string{
		"a": "1", "b": "2", "c": "3", "d": "4", "e": "5", "f": "6",
	}
	lines := labelSection(docker.Details{Labels: labels})
	var more string
	for _, line := range lines {
		if strings.Contains(line.text, "more") {
			more = line.text
		}
	}
	if more == "" || !strings.Contains(more, "and 2 more") {
		t.Fatalf("expected overflow note, got %#v", lines)
	}
	// Section title plus capped rows plus the note.
	if len(lines) != maxLabelRows+2 {
		t.Fatalf("expected %d lines, got %d", maxLabelRows+2, len(lines))
	}
}

func TestPreviewPanelWidthThreshold(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client, Options{})

	m.width = 100
	if !m.shouldRenderPreview() {
		t.Fatalf("expected panel at width 100")
	}
	m.width = 66
	if m.shouldRenderPreview() {
		t.Fatalf("expected no panel below minimum width")
	}
	m.width = 0
	if m.shouldRenderPreview() {
		t.Fatalf("expected no panel without a known width")
	}
}

func TestFixedSizeIgnoresResize(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client, Options{Width: 80, Height: 24})
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 200, Height: 60})

	if m.width != 80 || m.height != 24 {
		t.Fatalf("expected fixed geometry kept, got %dx%d", m.width, m.height)
	}
}
