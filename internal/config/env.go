// Package config provides centralized configuration management.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// TabctlEnv holds all tabctl environment variables.
type TabctlEnv struct {
	// DataDir is where the database and audit log live (TABCTL_DATA_DIR)
	DataDir string

	// BrowserURL is the DevTools websocket of a running browser
	// (TABCTL_BROWSER_URL); empty means launch one.
	BrowserURL string

	// NoColor disables colored output (TABCTL_NO_COLOR)
	NoColor bool

	// Debug enables debug logging (TABCTL_DEBUG)
	Debug bool
}

var (
	env     *TabctlEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *TabctlEnv {
	envOnce.Do(func() {
		env = &TabctlEnv{
			DataDir:    getEnvDefault("TABCTL_DATA_DIR", defaultDataDir()),
			BrowserURL: os.Getenv("TABCTL_BROWSER_URL"),
			NoColor:    os.Getenv("TABCTL_NO_COLOR") == "1",
			Debug:      os.Getenv("TABCTL_DEBUG") == "1",
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tabctl")
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
