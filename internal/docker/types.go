package docker

import (
	"context"
	"os/exec"
	"time"
)

// Container is one row of the runtime's container list.
type Container struct {
	ID         string `json:"ID"`
	Name       string `json:"Names"`
	Image      string `json:"Image"`
	State      string `json:"State"`
	Status     string `json:"Status"`
	RunningFor string `json:"RunningFor"`
}

// ProcessRow is a single process from a top snapshot. The fields stay
// raw strings; integer validation happens when the tree index is built.
type ProcessRow struct {
	PID     string
	PPID    string
	Command string
}

// TopSnapshot is one whole `top` capture for a container.
type TopSnapshot struct {
	ContainerID string
	Titles      []string
	Rows        []ProcessRow
	FetchedAt   time.Time
}

// Details carries the subset of inspect output shown in the info view.
type Details struct {
	ID        string
	Name      string
	Image     string
	Created   time.Time
	Status    string
	ExitCode  int
	Command   string
	IPAddress string
	Ports     []string
	Labels    map[string]string
}

// StatsSample is a single resource-usage reading.
type StatsSample struct {
	At         time.Time
	CPUPercent float64
	MemPercent float64
	MemUsed    uint64
	MemLimit   uint64
	NetIO      string
	BlockIO    string
	PIDs       int
}

type commander interface {
	Output() ([]byte, error)
	CombinedOutput() ([]byte, error)
}

var runExecCommand = func(ctx context.Context, name string, args ...string) commander {
	return realCommander{cmd: exec.CommandContext(ctx, name, args...)}
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

func (r realCommander) CombinedOutput() ([]byte, error) {
	return r.cmd.CombinedOutput()
}
