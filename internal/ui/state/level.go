package state

// Level is the state behind one scrollable list: the visible items, the
// unfiltered backing set, and the cursor, filter, and viewport positions.
type Level struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel builds a Level over items. The cursor starts on the first item
// once the initial fill runs.
func NewLevel(id, title string, items []Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the position of the item with the given ID, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// SelectID moves the cursor onto the item with the given ID.
func (l *Level) SelectID(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// UpdateItems swaps in a fresh item set, keeping the cursor on the same ID
// when it survives and the viewport where it was while still in range.
func (l *Level) UpdateItems(items []Item) {
	var keepID string
	if item, ok := l.Current(); ok {
		keepID = item.ID
	}
	offset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if keepID != "" {
		l.SelectID(keepID)
	}
	if offset < 0 || offset > len(l.Items)-1 {
		offset = 0
	}
	l.ViewportOffset = offset
}
