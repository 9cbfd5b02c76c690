// Package config provides configuration management for llama-build.
// It handles environment variables, the project-local .env file, default
// values, and configuration validation. A Config is an explicit value handed
// to the driver; nothing here is global.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by llama-build.
const (
	EnvCompiler = "CXX"
	EnvTimeout  = "LLAMA_BUILD_TIMEOUT"
	EnvVerbose  = "LLAMA_BUILD_VERBOSE"
	EnvFormat   = "LLAMA_BUILD_FORMAT"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default values
const (
	DefaultCompiler = "g++"
	DefaultFormat   = FormatText
	DefaultRoot     = "."
	DotEnvFile      = ".env"
)

// Config holds all configuration settings for llama-build
type Config struct {
	// Root is the project directory holding src/, include/ and bin/.
	Root string

	// Compiler is the executable invoked to build the generator.
	Compiler string

	// Timeout bounds the compiler run. Zero waits indefinitely.
	Timeout time.Duration

	// GOOS selects the platform rules (artifact suffix, thread flag).
	GOOS string

	Format  string
	Verbose bool

	// envErrs holds environment values that could not be parsed, by variable.
	envErrs map[string]error
}

// Lookup reports the value of an environment variable and whether it is set.
type Lookup func(key string) (string, bool)

// NewConfig creates a configuration holding only default values
func NewConfig() *Config {
	return &Config{
		Root:     DefaultRoot,
		Compiler: DefaultCompiler,
		GOOS:     runtime.GOOS,
		Format:   DefaultFormat,
	}
}

// FromLookup builds a configuration from lookup without touching the
// process environment. Unparseable values keep their defaults and are
// reported by Validate.
func FromLookup(lookup Lookup) *Config {
	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return ""
	}

	cfg := NewConfig()
	if v := get(EnvCompiler); v != "" {
		cfg.Compiler = v
	}
	if v := get(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := get(EnvTimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			cfg.setEnvErr(EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := get(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			cfg.setEnvErr(EnvVerbose, fmt.Errorf("invalid boolean %q", v))
		}
		cfg.Verbose = b
	}
	return cfg
}

func (c *Config) setEnvErr(key string, err error) {
	if c.envErrs == nil {
		c.envErrs = make(map[string]error)
	}
	c.envErrs[key] = fmt.Errorf("%s: %w", key, err)
}

// Load reads the process environment and the .env file in root. Variables
// already set in the process environment win over the file. A missing .env
// is fine; an unreadable or malformed one is an error.
func Load(root string) (*Config, error) {
	if root == "" {
		root = DefaultRoot
	}
	fileEnv, err := readDotEnv(filepath.Join(root, DotEnvFile))
	if err != nil {
		return nil, err
	}

	cfg := FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
	cfg.Root = root
	return cfg, nil
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}

// WithRoot sets the project root
func (c *Config) WithRoot(root string) *Config {
	if root != "" {
		c.Root = root
	}
	return c
}

// WithCompiler overrides the compiler executable
func (c *Config) WithCompiler(compiler string) *Config {
	if compiler != "" {
		c.Compiler = compiler
	}
	return c
}

// WithTimeout sets the compiler timeout
func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	delete(c.envErrs, EnvTimeout)
	return c
}

// WithGOOS sets the target platform rules
func (c *Config) WithGOOS(goos string) *Config {
	if goos != "" {
		c.GOOS = goos
	}
	return c
}

// WithFormat sets the report format
func (c *Config) WithFormat(format string) *Config {
	if format != "" {
		c.Format = format
	}
	return c
}

// WithVerbose enables debug logging
func (c *Config) WithVerbose(verbose bool) *Config {
	c.Verbose = verbose
	delete(c.envErrs, EnvVerbose)
	return c
}

// Validate checks the configuration before a run
func (c *Config) Validate() error {
	if len(c.envErrs) > 0 {
		keys := make([]string, 0, len(c.envErrs))
		for k := range c.envErrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		errs := make([]error, 0, len(keys))
		for _, k := range keys {
			errs = append(errs, c.envErrs[k])
		}
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown report format %q (want %s, %s or %s)", c.Format, FormatText, FormatJSON, FormatYAML)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.Compiler == "" {
		return fmt.Errorf("compiler must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing

// parseDuration accepts Go durations ("90s", "10m30s") and plain integers
// as seconds.
func parseDuration(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid duration %q", value)
}
