// Package treeview flattens a lazily navigated hierarchy into visible rows
// with collapse state and a cursor. It knows nothing about what the
// positions are; it only asks a Navigator for neighbours of rows that are
// currently on screen, so collapsed subtrees are never walked.
package treeview

// Navigator supplies tree structure one neighbour at a time. Implementations
// answer for arbitrary positions without panicking; a miss is reported
// through the boolean.
type Navigator[P comparable] interface {
	Root() (P, bool)
	Parent(P) (P, bool)
	FirstChild(P) (P, bool)
	LastChild(P) (P, bool)
	NextSibling(P) (P, bool)
	PrevSibling(P) (P, bool)
	Label(P) string
}

// Row is one visible line of the flattened tree.
type Row[P comparable] struct {
	Pos         P
	Depth       int
	HasChildren bool
	Expanded    bool
	Prefix      string
	Label       string
}

// Model tracks collapse state, the flattened rows, and the cursor for one
// navigator. Swapping in a fresh snapshot via SetNavigator keeps collapse
// state and cursor for positions that still exist.
type Model[P comparable] struct {
	nav       Navigator[P]
	collapsed map[P]bool
	rows      []Row[P]
	cursor    int
	offset    int
	height    int
}

// New builds a model over nav with everything expanded.
func New[P comparable](nav Navigator[P]) *Model[P] {
	m := &Model[P]{nav: nav, collapsed: make(map[P]bool)}
	m.rebuild()
	return m
}

// SetNavigator replaces the navigated snapshot wholesale. The previous
// snapshot is dropped; collapse state carries over by position equality and
// the cursor re-seats on its old position when that is still visible.
func (m *Model[P]) SetNavigator(nav Navigator[P]) {
	var current P
	hadCurrent := false
	if row, ok := m.Current(); ok {
		current = row.Pos
		hadCurrent = true
	}
	m.nav = nav
	m.rebuild()
	if hadCurrent && m.Select(current) {
		return
	}
	m.cursor = 0
	m.offset = 0
}

// Rows returns the flattened visible rows.
func (m *Model[P]) Rows() []Row[P] { return m.rows }

// Len reports the number of visible rows.
func (m *Model[P]) Len() int { return len(m.rows) }

// Empty reports whether nothing is visible, which happens when the
// navigator has no root.
func (m *Model[P]) Empty() bool { return len(m.rows) == 0 }

// Cursor returns the index of the selected row.
func (m *Model[P]) Cursor() int { return m.cursor }

// Offset returns the viewport scroll position.
func (m *Model[P]) Offset() int { return m.offset }

// SetHeight sets the viewport height used for paging and scrolling.
func (m *Model[P]) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	m.height = h
	m.ensureVisible()
}

// Current returns the selected row.
func (m *Model[P]) Current() (Row[P], bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row[P]{}, false
	}
	return m.rows[m.cursor], true
}

// Select moves the cursor to pos if it is visible.
func (m *Model[P]) Select(pos P) bool {
	for i, row := range m.rows {
		if row.Pos == pos {
			m.cursor = i
			m.ensureVisible()
			return true
		}
	}
	return false
}

// MoveUp moves the cursor one row up.
func (m *Model[P]) MoveUp() bool {
	if m.cursor <= 0 {
		return false
	}
	m.cursor--
	m.ensureVisible()
	return true
}

// MoveDown moves the cursor one row down.
func (m *Model[P]) MoveDown() bool {
	if m.cursor >= len(m.rows)-1 {
		return false
	}
	m.cursor++
	m.ensureVisible()
	return true
}

// PageUp moves the cursor up by one viewport height.
func (m *Model[P]) PageUp() bool {
	if m.cursor <= 0 {
		return false
	}
	step := m.pageStep()
	m.cursor -= step
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
	return true
}

// PageDown moves the cursor down by one viewport height.
func (m *Model[P]) PageDown() bool {
	if m.cursor >= len(m.rows)-1 {
		return false
	}
	step := m.pageStep()
	m.cursor += step
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	m.ensureVisible()
	return true
}

// Home moves the cursor to the root row.
func (m *Model[P]) Home() bool {
	if len(m.rows) == 0 || m.cursor == 0 {
		return false
	}
	m.cursor = 0
	m.ensureVisible()
	return true
}

// End moves the cursor to the deepest last visible descendant, following
// LastChild through expanded nodes.
func (m *Model[P]) End() bool {
	root, ok := m.nav.Root()
	if !ok {
		return false
	}
	seen := map[P]bool{root: true}
	cur := root
	for {
		if m.collapsed[cur] {
			break
		}
		last, ok := m.nav.LastChild(cur)
		if !ok || seen[last] {
			break
		}
		seen[last] = true
		cur = last
	}
	before := m.cursor
	if !m.Select(cur) {
		if len(m.rows) == 0 {
			return false
		}
		m.cursor = len(m.rows) - 1
		m.ensureVisible()
	}
	return m.cursor != before
}

// Toggle flips collapse state of the selected row.
func (m *Model[P]) Toggle() bool {
	row, ok := m.Current()
	if !ok || !row.HasChildren {
		return false
	}
	if m.collapsed[row.Pos] {
		delete(m.collapsed, row.Pos)
	} else {
		m.collapsed[row.Pos] = true
	}
	m.rebuild()
	m.Select(row.Pos)
	return true
}

// ExpandOrDescend expands a collapsed row, or moves to the first child of an
// expanded one.
func (m *Model[P]) ExpandOrDescend() bool {
	row, ok := m.Current()
	if !ok || !row.HasChildren {
		return false
	}
	if m.collapsed[row.Pos] {
		delete(m.collapsed, row.Pos)
		m.rebuild()
		m.Select(row.Pos)
		return true
	}
	child, ok := m.nav.FirstChild(row.Pos)
	if !ok {
		return false
	}
	return m.Select(child)
}

// CollapseOrAscend collapses an expanded row, or jumps to the parent of a
// leaf or already collapsed one.
func (m *Model[P]) CollapseOrAscend() bool {
	row, ok := m.Current()
	if !ok {
		return false
	}
	if row.HasChildren && !m.collapsed[row.Pos] {
		m.collapsed[row.Pos] = true
		m.rebuild()
		m.Select(row.Pos)
		return true
	}
	return m.JumpParent()
}

// JumpParent moves the cursor to the parent of the selected row.
func (m *Model[P]) JumpParent() bool {
	row, ok := m.Current()
	if !ok {
		return false
	}
	parent, ok := m.nav.Parent(row.Pos)
	if !ok {
		return false
	}
	return m.Select(parent)
}

// JumpNextSibling moves the cursor to the next sibling of the selected row.
func (m *Model[P]) JumpNextSibling() bool {
	row, ok := m.Current()
	if !ok {
		return false
	}
	next, ok := m.nav.NextSibling(row.Pos)
	if !ok {
		return false
	}
	return m.Select(next)
}

// JumpPrevSibling moves the cursor to the previous sibling of the selected
// row.
func (m *Model[P]) JumpPrevSibling() bool {
	row, ok := m.Current()
	if !ok {
		return false
	}
	prev, ok := m.nav.PrevSibling(row.Pos)
	if !ok {
		return false
	}
	return m.Select(prev)
}

// ExpandAll clears all collapse state.
func (m *Model[P]) ExpandAll() bool {
	if len(m.collapsed) == 0 {
		return false
	}
	row, hadRow := m.Current()
	m.collapsed = make(map[P]bool)
	m.rebuild()
	if hadRow {
		m.Select(row.Pos)
	}
	return true
}

// CollapseAll collapses every expandable node, leaving only the root row.
func (m *Model[P]) CollapseAll() bool {
	root, ok := m.nav.Root()
	if !ok {
		return false
	}
	changed := false
	visited := map[P]bool{}
	var walk func(pos P)
	walk = func(pos P) {
		if visited[pos] {
			return
		}
		visited[pos] = true
		child, ok := m.nav.FirstChild(pos)
		if !ok {
			return
		}
		if !m.collapsed[pos] {
			m.collapsed[pos] = true
			changed = true
		}
		for ok {
			walk(child)
			child, ok = m.nav.NextSibling(child)
			if ok && visited[child] {
				break
			}
		}
	}
	walk(root)
	if !changed {
		return false
	}
	m.rebuild()
	m.cursor = 0
	m.offset = 0
	return true
}

func (m *Model[P]) pageStep() int {
	if m.height > 1 {
		return m.height - 1
	}
	return 1
}

func (m *Model[P]) ensureVisible() {
	if m.height <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model[P]) rebuild() {
	m.rows = m.rows[:0]
	if m.nav == nil {
		return
	}
	root, ok := m.nav.Root()
	if !ok {
		return
	}
	visited := map[P]bool{}
	m.appendNode(root, 0, nil, true, visited)
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// appendNode emits pos and, when expanded, its children. The visited set
// keeps self-parented or duplicated positions from looping the walk.
func (m *Model[P]) appendNode(pos P, depth int, trail []bool, isLast bool, visited map[P]bool) {
	if visited[pos] {
		return
	}
	visited[pos] = true
	_, hasChildren := m.nav.FirstChild(pos)
	expanded := hasChildren && !m.collapsed[pos]
	m.rows = append(m.rows, Row[P]{
		Pos:         pos,
		Depth:       depth,
		HasChildren: hasChildren,
		Expanded:    expanded,
		Prefix:      buildPrefix(trail, depth, isLast),
		Label:       m.nav.Label(pos),
	})
	if !expanded {
		return
	}
	children := m.childrenOf(pos, visited)
	var childTrail []bool
	if depth > 0 {
		childTrail = append(append([]bool(nil), trail...), !isLast)
	}
	for i, child := range children {
		m.appendNode(child, depth+1, childTrail, i == len(children)-1, visited)
	}
}

func (m *Model[P]) childrenOf(pos P, visited map[P]bool) []P {
	var children []P
	seen := map[P]bool{}
	child, ok := m.nav.FirstChild(pos)
	for ok {
		if seen[child] || visited[child] {
			break
		}
		seen[child] = true
		children = append(children, child)
		child, ok = m.nav.NextSibling(child)
	}
	return children
}

func buildPrefix(trail []bool, depth int, isLast bool) string {
	if depth == 0 {
		return ""
	}
	prefix := ""
	for _, more := range trail {
		if more {
			prefix += "│  "
		} else {
			prefix += "   "
		}
	}
	if isLast {
		return prefix + "└─ "
	}
	return prefix + "├─ "
}
