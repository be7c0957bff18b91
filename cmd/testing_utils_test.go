package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
)

// resetCommandState restores every flag to its default and clears Changed so
// consecutive Execute calls don't leak state.
func resetCommandState(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("Failed to reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
}

// setupTestEnvironment changes into a fresh working directory and points
// TMPDIR at an empty directory. Returns both.
func setupTestEnvironment(t *testing.T) (workDir, tmpDir string) {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get original working directory: %v", err)
	}

	workDir = t.TempDir()
	tmpDir = t.TempDir()
	t.Setenv("TMPDIR", tmpDir)
	t.Setenv("NO_COLOR", "1")

	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		resetCommandState(t)
	})

	resetCommandState(t)
	return workDir, tmpDir
}

// writeFakeKubeseal writes a shell script standing in for kubeseal into a
// directory outside the working directory.
func writeFakeKubeseal(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake kubeseal relies on /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "kubeseal")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil { // #nosec G306
		t.Fatalf("Failed to write fake kubeseal: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// runCLI executes the root command with args and returns captured stdout,
// stderr and the error from Execute.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected %s not to exist", path)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected %s to be empty, found %d entries", dir, len(entries))
	}
}
