// Package integration provides CLI integration tests for threeshim.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// threeshimBin is the path to the built threeshim binary.
	threeshimBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the repository root by walking up to go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetThreeshimBin sets the path to the threeshim binary (called from TestMain).
func SetThreeshimBin(path string) {
	threeshimBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment: its own config directory,
// report data directory, and a web-project tree with an installed
// node_modules fixture.
type TestEnv struct {
	t          *testing.T
	TempDir    string
	ConfigDir  string
	DataDir    string
	ProjectDir string
}

// NewTestEnv creates a new isolated test environment with a canonical
// library copy and the two globe packages carrying nested copies.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build threeshim: %v", buildErr)
	}
	if threeshimBin == "" {
		t.Fatal("threeshim binary not built (threeshimBin is empty)")
	}

	tempDir := t.TempDir()
	env := &TestEnv{
		t:          t,
		TempDir:    tempDir,
		ConfigDir:  filepath.Join(tempDir, "config"),
		DataDir:    filepath.Join(tempDir, "reports"),
		ProjectDir: filepath.Join(tempDir, "webapp"),
	}

	if err := os.MkdirAll(env.ConfigDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	env.WritePackage("node_modules/three", "three", "0.170.0")
	env.WritePackage("node_modules/globe.gl", "globe.gl", "2.33.0")
	env.WritePackage("node_modules/globe.gl/node_modules/three", "three", "0.160.0")
	env.WritePackage("node_modules/three-globe", "three-globe", "2.31.0")
	env.WritePackage("node_modules/three-globe/node_modules/three", "three", "0.161.0")
	return env
}

// WritePackage creates <project>/<dir>/package.json declaring name/version.
func (e *TestEnv) WritePackage(dir, name, version string) string {
	e.t.Helper()
	pkgDir := filepath.Join(e.ProjectDir, filepath.FromSlash(dir))
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		e.t.Fatalf("failed to create package dir: %v", err)
	}
	content := `{"name":"` + name + `","version":"` + version + `"}`
	if err := os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write package.json: %v", err)
	}
	return pkgDir
}

// WriteFile creates a file under the project tree.
func (e *TestEnv) WriteFile(rel, content string) string {
	e.t.Helper()
	path := filepath.Join(e.ProjectDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// CmdResult holds the result of a threeshim command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the threeshim CLI with the environment's directories.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{
		"--config-dir", e.ConfigDir,
		"--project-root", e.ProjectDir,
		"--data-dir", e.DataDir,
	}, args...)
	cmd := exec.Command(threeshimBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		e.t.Fatalf("failed to run threeshim: %v", err)
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the CLI and fails the test on a nonzero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("threeshim %v exited %d\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}
