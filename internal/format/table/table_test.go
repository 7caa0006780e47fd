package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"PID", "PPID", "COMMAND"},
		{"1", "0", "sh"},
		{"120", "1", "nginx: worker process"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignRight, AlignLeft})
	want := []string{
		"PID  PPID  COMMAND",
		"  1     0  sh",
		"120     1  nginx: worker process",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected line %q, got %q", want[i], got[i])
		}
	}
}

func TestFormatToleratesRaggedRows(t *testing.T) {
	rows := [][]string{
		{"Id", "abc123"},
		{"Status"},
	}
	got := Format(rows, nil)
	if got[1] != "Status" {
		t.Fatalf("expected short row to pass through, got %q", got[1])
	}
}

func TestKeyValuesSortsKeys(t *testing.T) {
	rows := KeyValues(map[string]string{"b": "2", "a": "1"})
	if len(rows) != 2 || rows[0][0] != "a" || rows[1][0] != "b" {
		t.Fatalf("expected sorted key rows, got %v", rows)
	}
}
