package commands

import (
	"os"
	"path/filepath"

	"github.com/framecut/framecut/internal/core/config"
)

// Flags holds the global flag values shared by every command.
type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	ProjectPath  string
	ProfilerPort int64

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "framecut", "config.yaml")
}

// DefaultProjectPath returns the project file in the working directory.
func DefaultProjectPath() string {
	return "framecut.json"
}

// DefaultLogPath returns the log file under the user cache directory.
func DefaultLogPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "framecut", "framecut.log")
}
