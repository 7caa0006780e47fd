package testutil

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// RequireDocker skips the calling test when no docker binary is on PATH
// or no daemon answers within a short timeout.
func RequireDocker(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("docker")
	if err != nil {
		t.Skip("skipping: docker binary not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := exec.CommandContext(ctx, path, "version", "--format", "{{.Server.Version}}").Run(); err != nil {
		t.Skipf("skipping: docker daemon not reachable (%v)", err)
	}
	return path
}

// StartContainer boots a throwaway busybox container running a long
// sleep and registers its removal as test cleanup. Returns the ID.
func StartContainer(t *testing.T) string {
	t.Helper()
	RequireDocker(t)
	output, err := exec.Command("docker", "run", "-d", "--rm", "busybox", "sleep", "600").Output()
	if err != nil {
		t.Skipf("skipping: unable to start busybox container (%v)", err)
	}
	id := strings.TrimSpace(string(output))
	if id == "" {
		t.Skip("skipping: docker run returned no container id")
	}
	t.Cleanup(func() {
		_ = exec.Command("docker", "rm", "-f", id).Run()
	})
	return id
}

// WaitForProcess polls the container's top output until a row matching
// the wanted command fragment appears, or the timeout expires.
func WaitForProcess(t *testing.T, id, fragment string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		output, err := exec.Command("docker", "top", id, "-eo", "pid,ppid,args").Output()
		if err == nil && strings.Contains(string(output), fragment) {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for process %q in container %s", fragment, id)
}
