// Package proctree indexes one container process snapshot for tree
// navigation. An Index is built once per snapshot and never mutated
// afterwards; refreshing means building a new Index and dropping the old
// one, so reads are safe from any goroutine.
package proctree

import "errors"

// ErrNoRoot is returned when no record's parent is missing from the
// snapshot, so no top-level process exists. Empty and fully cyclic
// snapshots both land here.
var ErrNoRoot = errors.New("process snapshot has no root")

// Index is a navigable view over one process snapshot.
type Index struct {
	order    []Record
	byPID    map[int]Record
	children map[int][]Record
}

// Build parses and indexes snapshot rows in input order. The first row whose
// PID or PPID is not an integer aborts the build with a MalformedRecordError
// naming the row. The input slice is not retained.
//
// Duplicate PIDs keep the last row in byPID while every row still lands in
// its parent's bucket, matching what the runtime actually reported. Rows
// whose PPID is not a known PID stay reachable through Records but hang off
// no bucket.
func Build(rows []Row) (*Index, error) {
	ix := &Index{
		order:    make([]Record, 0, len(rows)),
		byPID:    make(map[int]Record, len(rows)),
		children: make(map[int][]Record, len(rows)),
	}
	for i, raw := range rows {
		rec, err := parseRecord(i, raw)
		if err != nil {
			return nil, err
		}
		ix.order = append(ix.order, rec)
		ix.byPID[rec.PID] = rec
	}
	for _, rec := range ix.order {
		if _, ok := ix.byPID[rec.PPID]; !ok {
			continue
		}
		ix.children[rec.PPID] = append(ix.children[rec.PPID], rec)
	}
	return ix, nil
}

// Len reports the number of records, duplicates included.
func (ix *Index) Len() int { return len(ix.order) }

// Records returns a copy of the snapshot in input order.
func (ix *Index) Records() []Record {
	out := make([]Record, len(ix.order))
	copy(out, ix.order)
	return out
}

// Root returns the first record in input order whose parent is not part of
// the snapshot. Container snapshots can report several such records (PID
// namespaces reparent orphans to the init process of the namespace); the
// first one wins.
func (ix *Index) Root() (Record, error) {
	for _, rec := range ix.order {
		if _, ok := ix.byPID[rec.PPID]; !ok {
			return rec, nil
		}
	}
	return Record{}, ErrNoRoot
}

// Roots returns every root candidate in input order.
func (ix *Index) Roots() []Record {
	var roots []Record
	for _, rec := range ix.order {
		if _, ok := ix.byPID[rec.PPID]; !ok {
			roots = append(roots, rec)
		}
	}
	return roots
}

func (ix *Index) rootCount() int {
	n := 0
	for _, rec := range ix.order {
		if _, ok := ix.byPID[rec.PPID]; !ok {
			n++
		}
	}
	return n
}

// Parent resolves pid's record and then that record's parent; false when
// either lookup misses.
func (ix *Index) Parent(pid int) (Record, bool) {
	rec, ok := ix.byPID[pid]
	if !ok {
		return Record{}, false
	}
	parent, ok := ix.byPID[rec.PPID]
	return parent, ok
}

// FirstChild returns pid's first child in input order.
func (ix *Index) FirstChild(pid int) (Record, bool) {
	bucket := ix.children[pid]
	if len(bucket) == 0 {
		return Record{}, false
	}
	return bucket[0], true
}

// LastChild returns pid's last child in input order.
func (ix *Index) LastChild(pid int) (Record, bool) {
	bucket := ix.children[pid]
	if len(bucket) == 0 {
		return Record{}, false
	}
	return bucket[len(bucket)-1], true
}

// NextSibling returns the record after rec in its parent's bucket. The
// position within the bucket is found by PID equality; the last child has no
// next sibling.
func (ix *Index) NextSibling(rec Record) (Record, bool) {
	bucket := ix.children[rec.PPID]
	for i, sibling := range bucket {
		if sibling.PID == rec.PID {
			if i+1 < len(bucket) {
				return bucket[i+1], true
			}
			return Record{}, false
		}
	}
	return Record{}, false
}

// PrevSibling returns the record before rec in its parent's bucket. The
// first child has no previous sibling; the lookup never wraps around.
func (ix *Index) PrevSibling(rec Record) (Record, bool) {
	bucket := ix.children[rec.PPID]
	for i, sibling := range bucket {
		if sibling.PID == rec.PID {
			if i > 0 {
				return bucket[i-1], true
			}
			return Record{}, false
		}
	}
	return Record{}, false
}
