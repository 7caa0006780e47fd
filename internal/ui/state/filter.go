package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the filter query and seats both cursors. Entering a
// query parks the list cursor on the best match and remembers where it was;
// clearing the query brings that position back when it still exists.
func (l *Level) SetFilter(query string, cursor int) {
	active := strings.TrimSpace(query) != ""
	wasActive := strings.TrimSpace(l.Filter) != ""
	l.Filter = query
	l.FilterCursor = clampRuneIndex(query, cursor)
	if active {
		if !wasActive {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
	}
	l.applyFilter()
	switch {
	case active:
		if len(l.Items) > 0 {
			if idx := BestMatchIndex(l.Items, strings.TrimSpace(query)); idx >= 0 {
				l.Cursor = idx
			}
		}
	case wasActive:
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		} else if len(l.Items) > 0 {
			l.Cursor = 0
		}
		l.LastCursor = -1
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		// First fill after construction rests on the top entry.
		l.Cursor = 0
		return
	}
	if l.Cursor > n-1 {
		l.Cursor = n - 1
	}
	if l.ViewportOffset > n-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor, clamped to
// the current query.
func (l *Level) FilterCursorPos() int {
	return clampRuneIndex(l.Filter, l.FilterCursor)
}

func clampRuneIndex(s string, idx int) int {
	if idx < 0 {
		return 0
	}
	if n := len([]rune(s)); idx > n {
		return n
	}
	return idx
}

// InsertFilterText splices text in at the cursor.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	next := make([]rune, 0, len(runes)+len(insert))
	next = append(next, runes[:pos]...)
	next = append(next, insert...)
	next = append(next, runes[pos:]...)
	l.SetFilter(string(next), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward removes the rune left of the cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	runes := []rune(l.Filter)
	next := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(next), pos-1)
	return true
}

// DeleteFilterWordBackward removes from the cursor back to the start of the
// previous word.
func (l *Level) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	start := prevWordStart(runes, pos)
	if start == pos {
		return false
	}
	next := append(runes[:start], runes[pos:]...)
	l.SetFilter(string(next), start)
	return true
}

// MoveFilterCursorStart jumps the filter cursor to offset zero.
func (l *Level) MoveFilterCursorStart() bool {
	if l.FilterCursorPos() == 0 {
		return false
	}
	l.FilterCursor = 0
	return true
}

// MoveFilterCursorEnd jumps the filter cursor past the last rune.
func (l *Level) MoveFilterCursorEnd() bool {
	end := len([]rune(l.Filter))
	if l.FilterCursorPos() == end {
		return false
	}
	l.FilterCursor = end
	return true
}

// MoveFilterCursorRuneBackward steps one rune left.
func (l *Level) MoveFilterCursorRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.FilterCursor = pos - 1
	return true
}

// MoveFilterCursorRuneForward steps one rune right.
func (l *Level) MoveFilterCursorRuneForward() bool {
	pos := l.FilterCursorPos()
	if pos >= len([]rune(l.Filter)) {
		return false
	}
	l.FilterCursor = pos + 1
	return true
}

// MoveFilterCursorWordBackward jumps to the start of the previous word.
func (l *Level) MoveFilterCursorWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	target := prevWordStart(runes, pos)
	if target == pos {
		return false
	}
	l.FilterCursor = target
	return true
}

// MoveFilterCursorWordForward jumps to the start of the next word, or the
// end of the query when no word follows.
func (l *Level) MoveFilterCursorWordForward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	target := nextWordStart(runes, pos)
	if target == pos {
		return false
	}
	l.FilterCursor = target
	return true
}

// prevWordStart walks left from pos over whitespace, then over the word
// itself.
func prevWordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// nextWordStart walks right from pos over the current word, then over the
// whitespace after it.
func nextWordStart(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// FilterItems narrows items to those matching query: fuzzy matches on the
// label first, then a case-insensitive substring scan over label and ID when
// fuzzy search finds nothing. Results keep the input order and are always
// fresh copies.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	if matched := fuzzyMatches(items, trimmed); len(matched) > 0 {
		return matched
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) ||
			strings.Contains(strings.ToLower(item.ID), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func fuzzyMatches(items []Item, query string) []Item {
	ranks := fuzzy.RankFindNormalizedFold(query, itemLabels(items))
	if len(ranks) == 0 {
		return nil
	}
	keep := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		keep[rank.OriginalIndex] = struct{}{}
	}
	matched := make([]Item, 0, len(keep))
	for i, item := range items {
		if _, ok := keep[i]; ok {
			matched = append(matched, item)
		}
	}
	return matched
}

func itemLabels(items []Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

// BestMatchIndex picks the row the cursor should land on for query: an exact
// label or ID match wins, then a label prefix, an ID prefix, an ID substring,
// a label substring, and finally the closest fuzzy rank. Ties go to the
// earlier row. The index is -1 only when there are no items.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	passes := []func(Item) bool{
		func(it Item) bool { return strings.EqualFold(it.Label, trimmed) || strings.EqualFold(it.ID, trimmed) },
		func(it Item) bool { return strings.HasPrefix(strings.ToLower(it.Label), lower) },
		func(it Item) bool { return strings.HasPrefix(strings.ToLower(it.ID), lower) },
		func(it Item) bool { return strings.Contains(strings.ToLower(it.ID), lower) },
		func(it Item) bool { return strings.Contains(strings.ToLower(it.Label), lower) },
	}
	for _, match := range passes {
		for i, item := range items {
			if match(item) {
				return i
			}
		}
	}
	bestIdx := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, itemLabels(items)) {
		if rank.OriginalIndex < 0 || rank.OriginalIndex >= len(items) {
			continue
		}
		better := bestIdx == -1 ||
			rank.Distance < bestDistance ||
			(rank.Distance == bestDistance && rank.OriginalIndex < bestIdx)
		if better {
			bestIdx = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	if bestIdx >= 0 {
		return bestIdx
	}
	return 0
}
