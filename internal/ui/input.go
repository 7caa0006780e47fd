package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dockpeek/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleFilterInput feeds key presses into the picker filter. It reports
// whether the key was consumed so navigation keys still work.
func (m *Model) handleFilterInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	l := m.picker
	if l == nil {
		return false, nil
	}
	switch msg.String() {
	case "ctrl+u":
		if l.Filter == "" {
			return false, nil
		}
		return m.editFilter(l, func() bool { l.SetFilter("", 0); return true }, func() {
			events.Filter.Cleared(l.ID)
		})
	case "ctrl+w":
		return m.editFilter(l, l.DeleteFilterWordBackward, func() {
			events.Filter.WordBackspace(l.ID, l.Filter)
		})
	case "ctrl+a":
		return m.moveFilterCursor(l, l.MoveFilterCursorStart, false)
	case "ctrl+e":
		return m.moveFilterCursor(l, l.MoveFilterCursorEnd, false)
	case "alt+b":
		return m.moveFilterCursor(l, l.MoveFilterCursorWordBackward, true)
	case "alt+f":
		return m.moveFilterCursor(l, l.MoveFilterCursorWordForward, true)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.editFilter(l, l.DeleteFilterRuneBackward, func() {
			events.Filter.Backspace(l.ID, l.Filter)
		})
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			// Spaces arrive as tea.KeySpace; control runes stay available
			// for navigation bindings.
			if unicode.IsControl(r) || unicode.IsSpace(r) {
				return false, nil
			}
		}
		return m.editFilter(l, func() bool { return l.InsertFilterText(string(msg.Runes)) }, func() {
			events.Filter.Append(l.ID, l.Filter)
		})
	case tea.KeySpace:
		return m.editFilter(l, func() bool { return l.InsertFilterText(" ") }, func() {
			events.Filter.Append(l.ID, l.Filter)
		})
	case tea.KeyLeft:
		return m.moveFilterCursor(l, l.MoveFilterCursorRuneBackward, false)
	case tea.KeyRight:
		return m.moveFilterCursor(l, l.MoveFilterCursorRuneForward, false)
	}
	return false, nil
}

// editFilter runs a mutating filter op. When the op changes something it
// clears transient status text, traces, and refreshes viewport and preview.
func (m *Model) editFilter(l *level, op func() bool, trace func()) (bool, tea.Cmd) {
	before := l.FilterCursorPos()
	if !op() {
		return false, nil
	}
	m.noteFilterCursorChange(l, before)
	m.forceClearInfo()
	m.errMsg = ""
	trace()
	m.syncViewport(l)
	return true, m.ensurePreviewForPicker()
}

// moveFilterCursor runs a cursor-only op; word selects the coarse-jump
// trace event.
func (m *Model) moveFilterCursor(l *level, op func() bool, word bool) (bool, tea.Cmd) {
	before := l.FilterCursorPos()
	if !op() {
		return false, nil
	}
	m.noteFilterCursorChange(l, before)
	if word {
		events.Filter.CursorWord(l.ID, l.FilterCursor)
	} else {
		events.Filter.Cursor(l.ID, l.FilterCursor)
	}
	return true, nil
}

func (m *Model) filterPrompt() string {
	l := m.picker
	if l == nil {
		return ">"
	}
	m.syncFilterCursorStyles()
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if l.Filter == "" {
		return prompt + m.placeholderPrompt()
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	head := styled(styles.Filter, string(runes[:pos]))
	caretRune := " "
	tail := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		tail = styled(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + head + m.renderFilterCursor(caretRune) + tail
}

// placeholderPrompt renders the empty-filter hint with the caret parked on
// its first rune.
func (m *Model) placeholderPrompt() string {
	const placeholder = "(type to search)"
	runes := []rune(placeholder)
	if styles.FilterPlaceholder != nil {
		m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
	}
	caret := m.renderFilterCursor(string(runes[0]))
	return caret + styled(styles.FilterPlaceholder, string(runes[1:]))
}

func (m *Model) syncFilterCursorStyles() {
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

func styled(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}
