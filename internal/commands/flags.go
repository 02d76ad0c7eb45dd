package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/marginhq/margin/internal/api"
	"github.com/marginhq/margin/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	ServerURL  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Client talks to the notebook server
	Client *api.Client
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "margin", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/margin/margin.log
// On Linux: $XDG_STATE_HOME/margin/margin.log (defaults to ~/.local/state/margin/margin.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "margin", "margin.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "margin", "margin.log")
	}

	return filepath.Join(home, ".local", "state", "margin", "margin.log")
}
