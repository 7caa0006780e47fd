package state

// MoveCursorHome jumps to the first item. It reports whether the cursor
// actually moved.
func (l *Level) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	moved := l.Cursor != 0
	l.Cursor = 0
	return moved
}

// MoveCursorEnd jumps to the last item.
func (l *Level) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	moved := l.Cursor != n-1
	l.Cursor = n - 1
	return moved
}

// MoveCursorPageUp jumps up one page. maxVisible sets the page size; zero
// or negative means the whole list.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.cursorJump(-l.pageSize(maxVisible))
}

// MoveCursorPageDown jumps down one page.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.cursorJump(l.pageSize(maxVisible))
}

func (l *Level) cursorJump(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	was := l.Cursor
	target := was
	if target < 0 {
		target = 0
	}
	target += delta
	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}
	l.Cursor = target
	return target != was
}

func (l *Level) pageSize(maxVisible int) int {
	n := len(l.Items)
	if n == 0 {
		return 0
	}
	if maxVisible < 1 || maxVisible > n {
		return n
	}
	return maxVisible
}

// EnsureCursorVisible slides the viewport so the cursor row stays on
// screen. maxVisible is the row budget; zero or negative pins the viewport
// to the top.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	} else if l.Cursor > n-1 {
		l.Cursor = n - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	top := l.ViewportOffset
	maxTop := n - maxVisible
	if maxTop < 0 {
		maxTop = 0
	}
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	if l.Cursor < top {
		top = l.Cursor
	} else if last := top + maxVisible - 1; l.Cursor > last {
		top = l.Cursor - maxVisible + 1
		if top < 0 {
			top = 0
		}
		if top > maxTop {
			top = maxTop
		}
	}
	l.ViewportOffset = top
}
