package proctree

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a single process entry as reported by the container runtime, fields
// still in their raw transport form. Parsing happens once, in Build.
type Row struct {
	PID     string
	PPID    string
	Command string
}

// Record is a parsed process entry. Records are plain immutable values;
// identity is the PID.
type Record struct {
	PID     int
	PPID    int
	Command string
}

// MalformedRecordError reports the first snapshot row that failed validation.
type MalformedRecordError struct {
	Row   int
	Field string
	Value string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("process snapshot row %d: %s %q is not an integer", e.Row, e.Field, e.Value)
}

func parseRecord(row int, raw Row) (Record, error) {
	pid, err := strconv.Atoi(strings.TrimSpace(raw.PID))
	if err != nil {
		return Record{}, &MalformedRecordError{Row: row, Field: "pid", Value: raw.PID}
	}
	ppid, err := strconv.Atoi(strings.TrimSpace(raw.PPID))
	if err != nil {
		return Record{}, &MalformedRecordError{Row: row, Field: "ppid", Value: raw.PPID}
	}
	return Record{PID: pid, PPID: ppid, Command: raw.Command}, nil
}
