package main

import (
	"context"
	"strings"
	"testing"

	"dockpeek/internal/docker"
)

func TestTopCommandFormatsAlignedTable(t *testing.T) {
	stub := &fakeRuntime{snapshot: docker.TopSnapshot{
		Titles: []string{"PID", "PPID", "CMD"},
		Rows: []docker.ProcessRow{
			{PID: "1", PPID: "0", Command: "nginx: master process"},
			{PID: "742", PPID: "1", Command: "nginx: worker process"},
		},
	}}
	withRuntime(t, stub)
	buf := captureOutput(t, cmdTop)
	cmdTop.SetContext(context.Background())

	if err := cmdTop.RunE(cmdTop, []string{"db"}); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if stub.target != "db" {
		t.Fatalf("expected fetch for %q, got %q", "db", stub.target)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %q", lines)
	}
	if lines[0] != "PID  PPID  CMD" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "  1     0  nginx: master process" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if lines[2] != "742     1  nginx: worker process" {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestTopCommandEmptySnapshot(t *testing.T) {
	withRuntime(t, &fakeRuntime{})
	buf := captureOutput(t, cmdTop)
	cmdTop.SetContext(context.Background())

	if err := cmdTop.RunE(cmdTop, []string{"db"}); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if !strings.Contains(buf.String(), "no processes") {
		t.Fatalf("expected empty note, got %q", buf.String())
	}
}

func TestFormatTopTableDefaultsTitles(t *testing.T) {
	lines := formatTopTable(docker.TopSnapshot{
		Rows: []docker.ProcessRow{{PID: "1", PPID: "0", Command: "sh"}},
	})
	if len(lines) != 2 || lines[0] != "PID  PPID  CMD" {
		t.Fatalf("expected default header, got %q", lines)
	}
}
