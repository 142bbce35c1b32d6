package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv(t *testing.T) {
	// Reset env for clean test
	ResetEnv()

	os.Setenv("TABCTL_DATA_DIR", "/tmp/tabctl-test")
	os.Setenv("TABCTL_BROWSER_URL", "ws://127.0.0.1:9222/devtools/browser/abc")
	os.Setenv("TABCTL_NO_COLOR", "1")
	defer func() {
		os.Unsetenv("TABCTL_DATA_DIR")
		os.Unsetenv("TABCTL_BROWSER_URL")
		os.Unsetenv("TABCTL_NO_COLOR")
		ResetEnv()
	}()

	env := Env()

	assert.Equal(t, "/tmp/tabctl-test", env.DataDir)
	assert.Equal(t, "ws://127.0.0.1:9222/devtools/browser/abc", env.BrowserURL)
	assert.True(t, env.NoColor)
	assert.False(t, env.Debug)
}

func TestEnvDefaults(t *testing.T) {
	ResetEnv()

	os.Unsetenv("TABCTL_DATA_DIR")
	os.Unsetenv("TABCTL_BROWSER_URL")
	os.Unsetenv("TABCTL_NO_COLOR")
	os.Unsetenv("TABCTL_DEBUG")
	defer ResetEnv()

	env := Env()

	assert.True(t, strings.HasSuffix(env.DataDir, string(filepath.Separator)+".tabctl"))
	assert.Empty(t, env.BrowserURL)
	assert.False(t, env.NoColor)
	assert.False(t, env.Debug)
}

func TestEnvIsCached(t *testing.T) {
	ResetEnv()
	defer ResetEnv()

	first := Env()
	os.Setenv("TABCTL_DATA_DIR", "/elsewhere")
	defer os.Unsetenv("TABCTL_DATA_DIR")

	assert.Same(t, first, Env())
}
