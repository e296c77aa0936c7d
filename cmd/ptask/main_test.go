//go:build linux || darwin || freebsd

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ptask/internal/app"
)

// fresh clears cached graft nodes so each run builds its own registry and store.
func fresh(t *testing.T) {
	t.Helper()
	graft.ResetDefaultCache()
	t.Cleanup(graft.ResetDefaultCache)
}

func quiet(a *app.App) {
	a.WithOutput(io.Discard).WithTeaOptions(
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		manifest     string
		args         []string
		expectedExit int
	}{
		{
			name: "Success with valid manifest",
			manifest: `version: "1"
tasks:
  - name: hello
    executable: /bin/echo
    args: hello
`,
			args:         []string{"ptask", "run", "hello"},
			expectedExit: 0,
		},
		{
			name: "Failing task",
			manifest: `version: "1"
tasks:
  - name: fail
    executable: /bin/sh
    args: -c "exit 2"
`,
			args:         []string{"ptask", "run"},
			expectedExit: 1,
		},
		{
			name: "Invalid manifest",
			manifest: `version: "1"
tasks:
  - name: all
    executable: /bin/echo
`,
			args:         []string{"ptask", "run"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ptask.yaml"), []byte(tt.manifest), 0o600))

			t.Chdir(tmpDir)
			t.Setenv("PTASK_LOG_LEVEL", "error")

			originalArgs := os.Args
			defer func() { os.Args = originalArgs }()
			os.Args = tt.args

			fresh(t)
			exitCode := run(quiet)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestRun_PersistsResults(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := `version: "1"
tasks:
  - name: hello
    executable: /bin/echo
    args: hello
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ptask.yaml"), []byte(manifest), 0o600))
	t.Chdir(tmpDir)
	t.Setenv("PTASK_LOG_LEVEL", "error")

	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	fresh(t)
	os.Args = []string{"ptask", "run"}
	require.Equal(t, 0, run(quiet))

	_, err := os.Stat(filepath.Join(tmpDir, ".ptask", "results.json"))
	require.NoError(t, err)

	graft.ResetDefaultCache()
	os.Args = []string{"ptask", "results", "hello"}
	assert.Equal(t, 0, run(quiet))
}
