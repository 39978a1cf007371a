// Package uv wraps the external uv tool, which provisions virtual
// environments and installs packages into them. venvman delegates all
// dependency resolution and interpreter management to uv; this package only
// shells out and parses output.
package uv

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tool runs uv against environments rooted at a single directory.
// The environment named "demo" lives at <root>/demo.
type Tool struct {
	root string
}

// New creates a Tool managing environments under root.
func New(root string) *Tool {
	return &Tool{root: root}
}

// EnvPath returns the on-disk directory of the named environment.
func (t *Tool) EnvPath(name string) string {
	return filepath.Join(t.root, name)
}

// Create provisions a new virtual environment via `uv venv`.
// If pythonVersion is empty, uv picks its default interpreter.
func (t *Tool) Create(name, pythonVersion string) error {
	if err := os.MkdirAll(t.root, 0755); err != nil {
		return fmt.Errorf("failed to create environments directory: %w", err)
	}

	args := []string{"venv", t.EnvPath(name)}
	if pythonVersion != "" {
		args = append(args, "--python", pythonVersion)
	}

	cmd := exec.Command("uv", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("uv venv %s failed: %w (output: %s)", name, err, string(output))
	}
	return nil
}

// Remove deletes the environment's on-disk directory.
func (t *Tool) Remove(name string) error {
	if err := os.RemoveAll(t.EnvPath(name)); err != nil {
		return fmt.Errorf("failed to remove environment %s: %w", name, err)
	}
	return nil
}

// Current resolves the currently active environment from $VIRTUAL_ENV, the
// variable the shell hook exports on activation. Returns "" when no venvman
// environment is active. This is a pure query: no process-global state is
// kept in venvman itself.
func (t *Tool) Current() (string, error) {
	venv := os.Getenv("VIRTUAL_ENV")
	if venv == "" {
		return "", nil
	}

	rootAbs, err := filepath.Abs(t.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve environments root: %w", err)
	}
	venvAbs, err := filepath.Abs(venv)
	if err != nil {
		return "", fmt.Errorf("failed to resolve VIRTUAL_ENV: %w", err)
	}

	// Only environments directly under our root count as venvman-managed.
	if filepath.Dir(venvAbs) != rootAbs {
		return "", nil
	}
	return filepath.Base(venvAbs), nil
}

// pipListEntry matches one element of `uv pip list --format json` output.
type pipListEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ListInstalled returns the full installed closure of the environment as
// exact (name, version) pairs, via `uv pip list --format json`.
func (t *Tool) ListInstalled(name string) ([]Package, error) {
	cmd := exec.Command("uv", "pip", "list", "--format", "json", "--python", t.EnvPath(name))
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("uv pip list failed for %s: %w (stderr: %s)", name, err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("uv pip list failed for %s: %w", name, err)
	}

	entries, err := parsePipList(output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse uv pip list output for %s: %w", name, err)
	}
	return entries, nil
}

// parsePipList decodes the JSON array produced by `uv pip list --format json`.
func parsePipList(output []byte) ([]Package, error) {
	var entries []pipListEntry
	if err := json.Unmarshal(output, &entries); err != nil {
		return nil, err
	}

	pkgs := make([]Package, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		pkgs = append(pkgs, Package{Name: e.Name, Version: e.Version})
	}
	return pkgs, nil
}

// InstallExact installs the given exact (name, version) pairs with no
// resolution and no version ranges.
func (t *Tool) InstallExact(name string, pkgs []Package) error {
	if len(pkgs) == 0 {
		return nil
	}

	args := []string{"pip", "install", "--python", t.EnvPath(name)}
	for _, p := range pkgs {
		args = append(args, p.Specifier())
	}

	cmd := exec.Command("uv", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("uv pip install failed for %s: %w (output: %s)", name, err, string(output))
	}
	return nil
}

// InstallSpecifiers installs user-supplied requirement specifiers (which may
// carry version ranges); uv resolves them.
func (t *Tool) InstallSpecifiers(name string, specs []string) error {
	if len(specs) == 0 {
		return nil
	}

	args := append([]string{"pip", "install", "--python", t.EnvPath(name)}, specs...)
	cmd := exec.Command("uv", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("uv pip install %s failed for %s: %w (output: %s)",
			strings.Join(specs, " "), name, err, string(output))
	}
	return nil
}

// DiskUsage walks the environment directory and sums file sizes.
func (t *Tool) DiskUsage(name string) (int64, error) {
	var total int64
	err := filepath.WalkDir(t.EnvPath(name), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to measure environment %s: %w", name, err)
	}
	return total, nil
}

// Version returns the installed uv version, for diagnostics.
func Version() (string, error) {
	cmd := exec.Command("uv", "--version")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to execute uv --version: %w", err)
	}

	// Parse "uv X.Y.Z" from the first line.
	line := strings.SplitN(strings.TrimSpace(string(output)), "\n", 2)[0]
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", fmt.Errorf("unexpected uv --version format: %s", line)
	}
	return parts[1], nil
}
