package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runNanofolks(t, binaryPath, home,
		"room", "create", "launch",
		"--type", "project",
		"--participant", "alice",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runNanofolks(t, binaryPath, home, "room", "invite", "launch", "bob")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runNanofolks(t, binaryPath, home, "room", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "* lobby")
	assert.Contains(t, stdout, "launch")
	assert.Contains(t, stdout, "2 participant(s)")

	_, stderr, err = runNanofolks(t, binaryPath, home,
		"log", "record",
		"--session", "session-1",
		"--decision", "hand the request to launch planning",
		"--tool", "search: find prior launches",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runNanofolks(t, binaryPath, home, "log", "show", "--session", "session-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "hand the request to launch planning")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "nanofolks-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/nanofolks")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build nanofolks binary: %s", string(output))
	return binaryPath
}

func runNanofolks(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
