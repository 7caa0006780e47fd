package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"dockpeek/internal/docker"
	"dockpeek/internal/format/table"
	"dockpeek/internal/proctree"
	"dockpeek/internal/treeview"
)

const (
	previewPanelMinWidth   = 40
	previewPanelFraction   = 0.6
	previewMaxDisplayLines = 20
	infoDisplayDuration    = 5 * time.Second
	treeMinHeight          = 3
	resourceGraphWidth     = 24
	maxLabelRows           = 4
)

const (
	pickerFooterText = "↑/↓ move  enter open  ctrl+r refresh  ctrl+c quit"
	infoFooterText   = "↑/↓ move  ←/→ fold  s signal  r refresh  esc back  q quit"
	signalFooterText = "↑/↓ move  enter send  esc cancel"
)

var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// styledLine is one output line before width handling. Raw lines already
// carry ANSI sequences and are truncated ANSI-aware instead of styled.
type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool
}

func (m *Model) View() string {
	switch m.mode {
	case ModeInfo:
		return m.viewInfo()
	case ModeSignal:
		return m.viewSignal()
	default:
		return m.viewPicker()
	}
}

func (m *Model) viewPicker() string {
	listWidth := m.width
	var previewWidth int
	if m.shouldRenderPreview() {
		previewWidth = m.previewPanelWidth()
		listWidth = m.width - previewWidth
	}
	left := m.pickerLines(listWidth)
	if previewWidth == 0 {
		return strings.Join(left, "\n")
	}
	panel := m.renderPreviewPanel(previewWidth)
	if len(panel) == 0 {
		return strings.Join(left, "\n")
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		strings.Join(left, "\n"),
		strings.Join(panel, "\n"),
	)
}

func (m *Model) pickerLines(width int) []string {
	header := fmt.Sprintf("Containers (%d)", len(m.picker.Items))
	lines := []styledLine{
		{text: header, style: styles.Header},
		{text: m.filterPrompt(), raw: true},
	}
	if len(m.picker.Items) == 0 {
		empty := "no containers"
		if strings.TrimSpace(m.picker.Filter) != "" {
			empty = "no matches"
		}
		lines = append(lines, styledLine{text: "  " + empty, style: styles.Loading})
	} else {
		visible := m.maxPickerItems()
		offset := m.picker.ViewportOffset
		if offset < 0 {
			offset = 0
		}
		end := len(m.picker.Items)
		if visible > 0 && offset+visible < end {
			end = offset + visible
		}
		for i := offset; i < end; i++ {
			lines = append(lines, m.buildItemLine(m.picker, i))
		}
	}
	if text, style := m.statusLine(); text != "" {
		lines = append(lines, styledLine{text: text, style: style})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: pickerFooterText, style: styles.Footer})
	}
	rendered := renderLines(lines, width)
	if m.height > 0 {
		rendered = limitHeight(rendered, m.height)
	}
	return rendered
}

func (m *Model) viewInfo() string {
	details, haveDetails := m.details.Get()

	top := []styledLine{
		m.breadcrumbLine(""),
		{},
		{text: "Details", style: styles.SectionTitle},
	}
	if haveDetails {
		top = append(top, detailSection(details)...)
	} else {
		top = append(top, styledLine{text: "  fetching details…", style: styles.Loading})
	}
	top = append(top, styledLine{}, styledLine{text: "Processes", style: styles.SectionTitle})
	if m.verbose {
		if snap := m.processes.Snapshot(); !snap.FetchedAt.IsZero() {
			freshness := fmt.Sprintf("  %d rows, refreshed %s",
				len(snap.Rows), humanize.Time(snap.FetchedAt))
			top = append(top, styledLine{text: freshness, style: styles.DetailKey})
		}
	}

	var bottom []styledLine
	if resources := m.resourceSection(); len(resources) > 0 {
		bottom = append(bottom, styledLine{})
		bottom = append(bottom, resources...)
	}
	if haveDetails {
		if labels := labelSection(details); len(labels) > 0 {
			bottom = append(bottom, styledLine{})
			bottom = append(bottom, labels...)
		}
	}
	if text, style := m.statusLine(); text != "" {
		bottom = append(bottom, styledLine{text: text, style: style})
	}
	if m.showFooter {
		bottom = append(bottom, styledLine{text: infoFooterText, style: styles.Footer})
	}

	budget := 0
	if m.height > 0 {
		budget = m.height - len(top) - len(bottom)
		if budget < treeMinHeight {
			budget = treeMinHeight
		}
	}
	all := append(top, m.treeSection(budget)...)
	all = append(all, bottom...)

	rendered := renderLines(all, m.width)
	if m.height > 0 {
		rendered = limitHeight(rendered, m.height)
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) viewSignal() string {
	if m.signal == nil {
		return ""
	}
	lines := []styledLine{
		m.breadcrumbLine("signal"),
		{},
		{text: m.signal.Title, style: styles.Header},
		{},
	}
	for i := range m.signal.Items {
		lines = append(lines, m.buildItemLine(m.signal, i))
	}
	if text, style := m.statusLine(); text != "" {
		lines = append(lines, styledLine{}, styledLine{text: text, style: style})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: signalFooterText, style: styles.Footer})
	}
	rendered := renderLines(lines, m.width)
	if m.height > 0 {
		rendered = limitHeight(rendered, m.height)
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) buildItemLine(l *level, index int) styledLine {
	item := l.Items[index]
	indicator := " "
	prefixStyle := styles.ItemIndicator
	style := styles.Item
	if index == l.Cursor {
		indicator = "▌"
		prefixStyle = styles.SelectedItemIndicator
		style = styles.SelectedItem
	}
	return styledLine{
		text:          indicator + " " + item.Label,
		style:         style,
		prefixStyle:   prefixStyle,
		highlightFrom: 1,
	}
}

func (m *Model) breadcrumbLine(extra string) styledLine {
	name := m.current.Name
	if name == "" {
		name = shortID(m.current.ID)
	}
	crumb := "containers → " + name
	if extra != "" {
		crumb += " → " + extra
	}
	text := render(styles.Breadcrumb, crumb)
	if badge := m.stateBadge(); badge != "" {
		text += "  " + badge
	}
	return styledLine{text: text, raw: true}
}

func (m *Model) stateBadge() string {
	state := strings.ToLower(strings.TrimSpace(m.current.State))
	switch state {
	case "":
		return ""
	case "running", "restarting":
		return render(styles.StateRunning, "● "+state)
	default:
		return render(styles.StateStopped, "● "+state)
	}
}

func detailSection(details docker.Details) []styledLine {
	rows := [][]string{
		{"id", shortID(details.ID)},
		{"image", details.Image},
		{"status", details.Status},
	}
	if !details.Created.IsZero() {
		rows = append(rows, []string{"created", humanize.Time(details.Created)})
	}
	if details.Command != "" {
		rows = append(rows, []string{"command", details.Command})
	}
	if details.IPAddress != "" {
		rows = append(rows, []string{"ip", details.IPAddress})
	}
	if len(details.Ports) > 0 {
		rows = append(rows, []string{"ports", strings.Join(details.Ports, ", ")})
	}
	if strings.HasPrefix(details.Status, "Exited") {
		rows = append(rows, []string{"exit code", strconv.Itoa(details.ExitCode)})
	}
	return keyValueLines(rows, styles.DetailKey)
}

func labelSection(details docker.Details) []styledLine {
	if len(details.Labels) == 0 {
		return nil
	}
	rows := table.KeyValues(details.Labels)
	extra := 0
	if len(rows) > maxLabelRows {
		extra = len(rows) - maxLabelRows
		rows = rows[:maxLabelRows]
	}
	out := []styledLine{{text: "Labels", style: styles.SectionTitle}}
	out = append(out, keyValueLines(rows, styles.LabelKey)...)
	if extra > 0 {
		more := fmt.Sprintf("  … and %d more", extra)
		out = append(out, styledLine{text: more, style: styles.DetailKey})
	}
	return out
}

// keyValueLines renders two-column rows with the key column in keyStyle.
func keyValueLines(rows [][]string, keyStyle *lipgloss.Style) []styledLine {
	keyWidth := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if w := len([]rune(row[0])); w > keyWidth {
			keyWidth = w
		}
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	out := make([]styledLine, 0, len(formatted))
	for _, line := range formatted {
		out = append(out, styledLine{
			text:          "  " + line,
			style:         styles.DetailValue,
			prefixStyle:   keyStyle,
			highlightFrom: 2 + keyWidth,
		})
	}
	return out
}

func (m *Model) treeSection(budget int) []styledLine {
	if m.treeErr != "" {
		return []styledLine{{text: "  " + m.treeErr, style: styles.Error}}
	}
	if m.tree == nil {
		return []styledLine{{text: "  fetching processes…", style: styles.Loading}}
	}
	if m.tree.Empty() {
		return []styledLine{{text: "  no processes", style: styles.Loading}}
	}
	if budget > 0 {
		m.tree.SetHeight(budget)
	} else {
		m.tree.SetHeight(m.tree.Len())
	}
	rows := m.tree.Rows()
	offset := m.tree.Offset()
	end := len(rows)
	if budget > 0 && offset+budget < end {
		end = offset + budget
	}
	out := make([]styledLine, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, buildTreeLine(rows[i], i == m.tree.Cursor()))
	}
	return out
}

func buildTreeLine(row treeview.Row[proctree.Record], selected bool) styledLine {
	fold := " "
	if row.HasChildren {
		fold = "▸"
		if row.Expanded {
			fold = "▾"
		}
	}
	indicator := " "
	indicatorStyle := styles.ItemIndicator
	labelStyle := styles.Item
	if selected {
		indicator = "▌"
		indicatorStyle = styles.SelectedItemIndicator
		labelStyle = styles.SelectedItem
	}
	var b strings.Builder
	b.WriteString(render(indicatorStyle, indicator))
	b.WriteString(" ")
	if row.Prefix != "" {
		b.WriteString(render(styles.TreeBranch, row.Prefix))
	}
	b.WriteString(render(styles.TreeIndicator, fold))
	b.WriteString(" ")
	pid := fmt.Sprintf("[%d]", row.Pos.PID)
	if selected {
		b.WriteString(render(labelStyle, pid+" "+row.Pos.Command))
	} else {
		b.WriteString(render(styles.TreePID, pid))
		b.WriteString(" ")
		b.WriteString(render(labelStyle, row.Pos.Command))
	}
	return styledLine{text: b.String(), raw: true}
}

func (m *Model) resourceSection() []styledLine {
	latest, ok := m.stats.Latest()
	if !ok {
		return nil
	}
	cpu := "  cpu " +
		render(styles.CPUGraph, sparkline(m.stats.CPUHistory(), resourceGraphWidth)) +
		" " + render(styles.StatValue, fmt.Sprintf("%.1f%%", latest.CPUPercent))
	mem := "  mem " +
		render(styles.MemGraph, sparkline(m.stats.MemHistory(), resourceGraphWidth)) +
		" " + render(styles.StatValue, fmt.Sprintf("%.1f%%", latest.MemPercent)) +
		render(styles.DetailValue, fmt.Sprintf("  %s / %s",
			humanize.IBytes(latest.MemUsed), humanize.IBytes(latest.MemLimit)))
	io := "  " +
		render(styles.DetailKey, "net ") + render(styles.DetailValue, latest.NetIO) +
		render(styles.DetailKey, "  block ") + render(styles.DetailValue, latest.BlockIO) +
		render(styles.DetailKey, "  pids ") + render(styles.DetailValue, strconv.Itoa(latest.PIDs))
	return []styledLine{
		{text: "Resources", style: styles.SectionTitle},
		{text: cpu, raw: true},
		{text: mem, raw: true},
		{text: io, raw: true},
	}
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// sparkline maps the tail of values onto block glyphs scaled to the window
// maximum.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}
	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		idx := int(v / max * float64(len(sparkGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkGlyphs) {
			idx = len(sparkGlyphs) - 1
		}
		b.WriteRune(sparkGlyphs[idx])
	}
	return b.String()
}

func (m *Model) shouldRenderPreview() bool {
	if m.mode != ModePicker || m.width <= 0 {
		return false
	}
	return m.previewPanelWidth() >= previewPanelMinWidth
}

func (m *Model) previewPanelWidth() int {
	return int(float64(m.width) * previewPanelFraction)
}

func (m *Model) renderPreviewPanel(width int) []string {
	data := m.activePreview()
	if data == nil {
		return nil
	}
	inner := width - 4
	if inner < 1 {
		return nil
	}

	body := previewBodyLines(data)
	maxBody := previewMaxDisplayLines
	if m.height > 0 {
		if avail := m.height - 2; avail < maxBody {
			maxBody = avail
		}
	}
	if maxBody < 1 {
		maxBody = 1
	}
	total := len(body)
	display := body
	if total > maxBody {
		display = body[total-maxBody:]
	}

	var contentStyle *lipgloss.Style
	switch {
	case data.err != nil:
		contentStyle = styles.PreviewError
	case data.loading:
		contentStyle = styles.Loading
	case data.rawANSI:
		contentStyle = nil
	default:
		contentStyle = styles.PreviewBody
	}

	out := make([]string, 0, len(display)+2)

	titleSeg := ""
	if title := truncateText(previewTitleText(data), inner); title != "" {
		titleSeg = " " + render(styles.PreviewTitle, title) + " "
	}
	dashes := width - 3 - lipgloss.Width(titleSeg)
	if dashes < 0 {
		dashes = 0
	}
	out = append(out,
		previewBorderStyle.Render("╭─")+titleSeg+
			previewBorderStyle.Render(strings.Repeat("─", dashes)+"╮"))

	for _, line := range display {
		content := truncate.StringWithTail(line, uint(inner), "…")
		pad := inner - lipgloss.Width(content)
		if pad < 0 {
			pad = 0
		}
		if contentStyle != nil {
			content = contentStyle.Render(content)
		}
		out = append(out,
			previewBorderStyle.Render("│")+" "+content+
				strings.Repeat(" ", pad)+" "+previewBorderStyle.Render("│"))
	}

	scrollSeg := ""
	if total > len(display) {
		scrollSeg = previewScrollStyle.Render(fmt.Sprintf(" %d/%d ", len(display), total))
	}
	dashes = width - 3 - lipgloss.Width(scrollSeg)
	if dashes < 0 {
		dashes = 0
	}
	out = append(out,
		previewBorderStyle.Render("╰"+strings.Repeat("─", dashes))+scrollSeg+
			previewBorderStyle.Render("─╯"))
	return out
}

func (m *Model) statusLine() (string, *lipgloss.Style) {
	if m.loading {
		label := m.pendingLabel
		if label == "" {
			label = "working"
		}
		return label + "…", styles.Loading
	}
	if m.errMsg != "" {
		return m.errMsg, styles.Error
	}
	if m.mode == ModePicker && m.listErr != "" {
		return m.listErr, styles.Error
	}
	if info := m.currentInfo(); info != "" {
		return info, styles.Info
	}
	return "", nil
}

func (m *Model) handleWindowSizeMsg(message tea.Msg) tea.Cmd {
	size, ok := message.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	if m.picker != nil {
		m.syncViewport(m.picker)
	}
	return nil
}

func (m *Model) maxPickerItems() int {
	if m.height <= 0 {
		return 10
	}
	reserved := 3 // header, filter, status line
	if m.showFooter {
		reserved++
	}
	visible := m.height - reserved
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.infoExpire = time.Now().Add(infoDisplayDuration)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg == "" {
		return ""
	}
	if !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		return ""
	}
	return m.infoMsg
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func renderLines(lines []styledLine, width int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renderLine(line, width)
	}
	return out
}

func renderLine(line styledLine, width int) string {
	if line.raw {
		if width > 0 {
			return truncate.StringWithTail(line.text, uint(width), "…")
		}
		return line.text
	}
	text := truncateText(line.text, width)
	if line.highlightFrom > 0 {
		runes := []rune(text)
		n := line.highlightFrom
		if n > len(runes) {
			n = len(runes)
		}
		return render(line.prefixStyle, string(runes[:n])) +
			render(line.style, string(runes[n:]))
	}
	return render(line.style, text)
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func limitHeight(lines []string, max int) []string {
	if max <= 0 || len(lines) <= max {
		return lines
	}
	return lines[:max]
}
