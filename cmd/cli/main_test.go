package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// An HCL syntax error is guaranteed to cause a panic during the
	// loading phase inside app.NewApp().
	invalidHCL := `
		simulation "melt" {
			template = "in.template"
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0o600)
	require.NoError(t, err, "failed to set up test file")

	out := &bytes.Buffer{}
	runErr := run(out, []string{filePath})

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"),
		"The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"),
		"The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(out, nil), "no arguments should print usage and exit cleanly")
	require.True(t, strings.Contains(out.String(), "Usage:"))
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	spec := `
packed "water" {
  input_file  = "in.water"
  force_field = "ff.water.json"

  molecule "h2o" {
    file   = "h2o.xyz"
    number = 20
  }
}
`
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(spec), 0o600))

	outDir := filepath.Join(tempDir, "out")
	out := &bytes.Buffer{}
	require.NoError(t, run(out, []string{"-out", outDir, "-log-level", "error", filePath}))

	_, err := os.Stat(filepath.Join(outDir, "water.json"))
	require.NoError(t, err, "workflow document should have been written")
}
