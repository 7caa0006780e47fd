package main

import "testing"

func TestVersionPrintsBuildInfo(t *testing.T) {
	buf := captureOutput(t, cmdVersion)
	cmdVersion.Run(cmdVersion, nil)

	want := "dockpeek dev (commit unknown, built unknown)\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected version output %q", got)
	}
}
