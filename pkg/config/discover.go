package config

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the per-project settings directory.
	DirName = ".sv"

	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// DefaultPath returns the config path relative to the current directory.
func DefaultPath() string {
	return filepath.Join(DirName, FileName)
}

// Discover attempts to find a config file by walking up from the current
// directory. Falls back to DefaultPath() when none exists.
func Discover() string {
	dir, err := os.Getwd()
	if err != nil {
		return DefaultPath()
	}
	if path, ok := findConfig(dir); ok {
		return path
	}
	return DefaultPath()
}

// findConfig walks up from dir looking for .sv/config.yaml.
func findConfig(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		path := filepath.Join(dir, DirName, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}
