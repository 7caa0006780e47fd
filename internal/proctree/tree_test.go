package proctree

import (
	"fmt"
	"testing"
)

type recordingTracer struct {
	roots []string
	steps []string
}

func (r *recordingTracer) Root(pid int, ok bool, candidates int) {
	r.roots = append(r.roots, fmt.Sprintf("%d/%v/%d", pid, ok, candidates))
}

func (r *recordingTracer) Step(op string, fromPID, toPID int, ok bool) {
	r.steps = append(r.steps, fmt.Sprintf("%s:%d->%d/%v", op, fromPID, toPID, ok))
}

func TestTreeDelegatesToIndex(t *testing.T) {
	ix := buildIndex(t, fixtureRows())
	tree := NewTree(ix, nil)

	root, ok := tree.Root()
	if !ok || root.PID != 1 {
		t.Fatalf("expected root pid 1, got %v ok=%v", root, ok)
	}
	first, ok := tree.FirstChild(root)
	if !ok || first.PID != 10 {
		t.Fatalf("expected first child 10, got %v ok=%v", first, ok)
	}
	last, ok := tree.LastChild(first)
	if !ok || last.PID != 22 {
		t.Fatalf("expected last child 22, got %v ok=%v", last, ok)
	}
	prev, ok := tree.PrevSibling(last)
	if !ok || prev.PID != 21 {
		t.Fatalf("expected prev sibling 21, got %v ok=%v", prev, ok)
	}
	next, ok := tree.NextSibling(prev)
	if !ok || next.PID != 22 {
		t.Fatalf("expected next sibling 22, got %v ok=%v", next, ok)
	}
	parent, ok := tree.Parent(next)
	if !ok || parent.PID != 10 {
		t.Fatalf("expected parent 10, got %v ok=%v", parent, ok)
	}
}

func TestTreeLabelFormat(t *testing.T) {
	tree := NewTree(buildIndex(t, fixtureRows()), nil)
	got := tree.Label(Record{PID: 21, Command: "nginx: worker process"})
	if got != "[21] nginx: worker process" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestTreeRootMissOnCyclicSnapshot(t *testing.T) {
	ix := buildIndex(t, []Row{
		{PID: "1", PPID: "2", Command: "a"},
		{PID: "2", PPID: "1", Command: "b"},
	})
	tracer := &recordingTracer{}
	tree := NewTree(ix, tracer)
	if rec, ok := tree.Root(); ok || rec.PID != 0 {
		t.Fatalf("expected root miss, got %v ok=%v", rec, ok)
	}
	if len(tracer.roots) != 1 || tracer.roots[0] != "0/false/0" {
		t.Fatalf("expected traced root miss, got %v", tracer.roots)
	}
}

func TestTreeTracesNavigationSteps(t *testing.T) {
	tracer := &recordingTracer{}
	tree := NewTree(buildIndex(t, fixtureRows()), tracer)

	root, _ := tree.Root()
	child, _ := tree.FirstChild(root)
	tree.NextSibling(child)

	if len(tracer.roots) != 1 || tracer.roots[0] != "1/true/1" {
		t.Fatalf("expected traced root hit with one candidate, got %v", tracer.roots)
	}
	want := []string{"first-child:1->10/true", "next-sibling:10->30/true"}
	if len(tracer.steps) != len(want) {
		t.Fatalf("expected %d steps, got %v", len(want), tracer.steps)
	}
	for i, step := range want {
		if tracer.steps[i] != step {
			t.Fatalf("expected step %q at position %d, got %q", step, i, tracer.steps[i])
		}
	}
}

func TestTreeNilTracer(t *testing.T) {
	tree := NewTree(buildIndex(t, fixtureRows()), nil)
	if _, ok := tree.Parent(Record{PID: 999}); ok {
		t.Fatalf("expected miss for unknown pid")
	}
}
