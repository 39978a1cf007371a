// Package shell installs the venvman activation hook into shell config files.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const marker = "# venvman shell hook"

// Hook returns the shell snippet defining the venvman-activate function for
// the given shell ("bash", "zsh", "fish" or anything POSIX-ish). The function
// sources the environment's activate script and appends an activation event
// to the spool log so the watcher can update usage counters.
func Hook(shellName, dataDir string) string {
	if shellName == "fish" {
		return fmt.Sprintf(`%s
function venvman-activate
    set -l env_dir %q/envs/$argv[1]
    if not test -d $env_dir
        echo "venvman: no such environment: $argv[1]" >&2
        return 1
    end
    source $env_dir/bin/activate.fish
    mkdir -p %q/events
    printf '%%s,%%s\n' (date +%%s) $argv[1] >> %q/events/spool.log
end
`, marker, dataDir, dataDir, dataDir)
	}

	return fmt.Sprintf(`%s
venvman-activate() {
    env_dir=%q/envs/$1
    if [ ! -d "$env_dir" ]; then
        echo "venvman: no such environment: $1" >&2
        return 1
    fi
    . "$env_dir/bin/activate"
    mkdir -p %q/events
    printf '%%s,%%s\n' "$(date +%%s)" "$1" >> %q/events/spool.log
}
`, marker, dataDir, dataDir, dataDir)
}

// InstallHook appends the activation hook to the appropriate shell config
// file for the user's $SHELL.
// Returns (added bool, configFile string, err error).
// added=false means the hook was already installed (no change made).
func InstallHook(dataDir string) (added bool, configFile string, err error) {
	shellName := filepath.Base(os.Getenv("SHELL"))

	home, err := os.UserHomeDir()
	if err != nil {
		return false, "", fmt.Errorf("cannot determine home directory: %w", err)
	}

	var configPath string
	switch shellName {
	case "zsh":
		configPath = filepath.Join(home, ".zshrc")
	case "bash":
		configPath = filepath.Join(home, ".bashrc")
	case "fish":
		configPath = filepath.Join(home, ".config", "fish", "conf.d", "venvman.fish")
	default:
		configPath = filepath.Join(home, ".profile")
	}

	// Ensure the parent directory exists (needed for fish conf.d path).
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return false, "", fmt.Errorf("cannot create config directory %s: %w", filepath.Dir(configPath), err)
	}

	existing, readErr := os.ReadFile(configPath)
	if readErr == nil && strings.Contains(string(existing), marker) {
		return false, configPath, nil
	}

	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return false, "", fmt.Errorf("cannot open config file %s: %w", configPath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprint(f, "\n"+Hook(shellName, dataDir)); err != nil {
		return false, "", fmt.Errorf("cannot write to config file %s: %w", configPath, err)
	}

	return true, configPath, nil
}
