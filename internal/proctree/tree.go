package proctree

import "fmt"

// Tracer receives navigation events from a Tree. A nil Tracer disables
// tracing; the index itself never logs.
type Tracer interface {
	Root(pid int, ok bool, candidates int)
	Step(op string, fromPID, toPID int, ok bool)
}

// Tree adapts an Index to the position-based navigation contract the tree
// view consumes. Positions are Record values compared by PID. A Tree holds
// no state beyond the index pointer; swapping snapshots means swapping
// trees.
type Tree struct {
	ix     *Index
	tracer Tracer
}

// NewTree wraps ix for navigation. tr may be nil.
func NewTree(ix *Index, tr Tracer) *Tree {
	return &Tree{ix: ix, tracer: tr}
}

// Index returns the underlying snapshot index.
func (t *Tree) Index() *Index { return t.ix }

// Root resolves the snapshot root. A rootless snapshot reports a miss
// instead of an error so that navigation stays total; callers deciding
// whether to build a view at all should consult Index.Root directly.
func (t *Tree) Root() (Record, bool) {
	rec, err := t.ix.Root()
	ok := err == nil
	if t.tracer != nil {
		t.tracer.Root(rec.PID, ok, t.ix.rootCount())
	}
	return rec, ok
}

// Parent returns the parent position of rec.
func (t *Tree) Parent(rec Record) (Record, bool) {
	parent, ok := t.ix.Parent(rec.PID)
	t.step("parent", rec, parent, ok)
	return parent, ok
}

// FirstChild returns rec's first child position.
func (t *Tree) FirstChild(rec Record) (Record, bool) {
	child, ok := t.ix.FirstChild(rec.PID)
	t.step("first-child", rec, child, ok)
	return child, ok
}

// LastChild returns rec's last child position.
func (t *Tree) LastChild(rec Record) (Record, bool) {
	child, ok := t.ix.LastChild(rec.PID)
	t.step("last-child", rec, child, ok)
	return child, ok
}

// NextSibling returns the position after rec among its siblings.
func (t *Tree) NextSibling(rec Record) (Record, bool) {
	next, ok := t.ix.NextSibling(rec)
	t.step("next-sibling", rec, next, ok)
	return next, ok
}

// PrevSibling returns the position before rec among its siblings.
func (t *Tree) PrevSibling(rec Record) (Record, bool) {
	prev, ok := t.ix.PrevSibling(rec)
	t.step("prev-sibling", rec, prev, ok)
	return prev, ok
}

// Label renders the row text for a position.
func (t *Tree) Label(rec Record) string {
	return fmt.Sprintf("[%d] %s", rec.PID, rec.Command)
}

func (t *Tree) step(op string, from, to Record, ok bool) {
	if t.tracer == nil {
		return
	}
	t.tracer.Step(op, from.PID, to.PID, ok)
}
