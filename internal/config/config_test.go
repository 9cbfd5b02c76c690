package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiboWorks/llama-build/internal/config"
)

func mapLookup(env map[string]string) config.Lookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, "g++", cfg.Compiler)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, runtime.GOOS, cfg.GOOS)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestFromLookup(t *testing.T) {
	cfg := config.FromLookup(mapLookup(map[string]string{
		"CXX":                 "clang++",
		"LLAMA_BUILD_TIMEOUT": "90s",
		"LLAMA_BUILD_VERBOSE": "true",
		"LLAMA_BUILD_FORMAT":  "json",
	}))

	assert.Equal(t, "clang++", cfg.Compiler)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, config.FormatJSON, cfg.Format)
}

func TestFromLookupEmptyCompilerKeepsDefault(t *testing.T) {
	cfg := config.FromLookup(mapLookup(map[string]string{"CXX": ""}))

	assert.Equal(t, "g++", cfg.Compiler)
	assert.NoError(t, cfg.Validate())
}

func TestFromLookupMalformedValuesFailValidation(t *testing.T) {
	cfg := config.FromLookup(mapLookup(map[string]string{
		"LLAMA_BUILD_TIMEOUT": "10m30",
		"LLAMA_BUILD_VERBOSE": "maybe",
	}))

	assert.Zero(t, cfg.Timeout)
	assert.False(t, cfg.Verbose)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLAMA_BUILD_TIMEOUT")
	assert.Contains(t, err.Error(), `"10m30"`)
	assert.Contains(t, err.Error(), "LLAMA_BUILD_VERBOSE")
}

func TestExplicitValuesClearMalformedEnv(t *testing.T) {
	cfg := config.FromLookup(mapLookup(map[string]string{
		"LLAMA_BUILD_TIMEOUT": "soon",
		"LLAMA_BUILD_VERBOSE": "maybe",
	}))

	cfg.WithTimeout(time.Minute).WithVerbose(true)
	assert.NoError(t, cfg.Validate())
}

func TestTimeoutSeconds(t *testing.T) {
	cfg := config.FromLookup(mapLookup(map[string]string{"LLAMA_BUILD_TIMEOUT": "30"}))
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("LLAMA_BUILD_FORMAT=yaml\nLLAMA_BUILD_VERBOSE=1\n"), 0644))
	t.Setenv("LLAMA_BUILD_VERBOSE", "false")

	cfg, err := config.Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, config.FormatYAML, cfg.Format)
	// process environment wins over .env
	assert.False(t, cfg.Verbose)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Setenv("CXX", "my-cxx")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "my-cxx", cfg.Compiler)
}

func TestBuilder(t *testing.T) {
	cfg := config.NewConfig().
		WithRoot("/work/project").
		WithCompiler("clang++").
		WithTimeout(time.Minute).
		WithGOOS("windows").
		WithFormat("yaml").
		WithVerbose(true)

	assert.Equal(t, "/work/project", cfg.Root)
	assert.Equal(t, "clang++", cfg.Compiler)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, "windows", cfg.GOOS)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Verbose)

	// empty values keep what is already there
	cfg.WithCompiler("").WithRoot("")
	assert.Equal(t, "clang++", cfg.Compiler)
	assert.Equal(t, "/work/project", cfg.Root)
}

func TestValidate(t *testing.T) {
	assert.Error(t, config.NewConfig().WithFormat("xml").Validate())
	assert.Error(t, config.NewConfig().WithTimeout(-time.Second).Validate())

	cfg := config.NewConfig()
	cfg.Compiler = ""
	assert.Error(t, cfg.Validate())
}
