package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/venvman/internal/registry"
	"github.com/blackwell-systems/venvman/internal/store"
	"github.com/blackwell-systems/venvman/internal/uv"
)

// openRegistry builds the registry facade every command operates through.
// The returned closer releases the underlying database handle.
func openRegistry() (*registry.Registry, func(), error) {
	dataDir, err := getDataDir()
	if err != nil {
		return nil, nil, err
	}

	path, err := getDBPath()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	tool := uv.New(filepath.Join(dataDir, "envs"))
	cfg := loadConfig()
	reg := registry.New(st, tool, tool, filepath.Join(dataDir, "locks"), cfg.UnusedThresholdDays)

	return reg, func() { st.Close() }, nil
}

// confirm prompts the user with a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
