package llamabuild

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/LiboWorks/llama-build/internal/config"
)

// Version is the current version of llama-build.
const Version = "0.1.0"

// Options configures a build.
type Options struct {
	// Root is the project directory. Defaults to the current directory.
	Root string

	// Compiler overrides the compiler executable. Defaults to g++.
	Compiler string

	// Timeout bounds the compiler run. Zero waits until the compiler exits.
	Timeout time.Duration

	// GOOS selects the platform rules. Defaults to runtime.GOOS.
	GOOS string

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *slog.Logger

	// Progress, when set, is called right before the compiler starts.
	Progress func(*Spec)
}

// DefaultOptions returns a new Options with default values.
func DefaultOptions() *Options {
	return &Options{
		Root:     config.DefaultRoot,
		Compiler: config.DefaultCompiler,
		GOOS:     runtime.GOOS,
	}
}

// FromConfig maps a loaded configuration onto Options.
func FromConfig(cfg *config.Config) *Options {
	return &Options{
		Root:     cfg.Root,
		Compiler: cfg.Compiler,
		Timeout:  cfg.Timeout,
		GOOS:     cfg.GOOS,
	}
}

func withDefaults(opts *Options) *Options {
	o := DefaultOptions()
	if opts == nil {
		o.Logger = discardLogger()
		return o
	}
	merged := *opts
	if merged.Root == "" {
		merged.Root = o.Root
	}
	if merged.Compiler == "" {
		merged.Compiler = o.Compiler
	}
	if merged.GOOS == "" {
		merged.GOOS = o.GOOS
	}
	if merged.Logger == nil {
		merged.Logger = discardLogger()
	}
	return &merged
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Option is a functional option for configuring a build.
type Option func(*Options)

// WithRoot sets the project root.
func WithRoot(root string) Option {
	return func(o *Options) {
		o.Root = root
	}
}

// WithCompiler overrides the compiler executable.
func WithCompiler(compiler string) Option {
	return func(o *Options) {
		o.Compiler = compiler
	}
}

// WithTimeout bounds the compiler run.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithGOOS applies the platform rules of goos instead of the host's.
func WithGOOS(goos string) Option {
	return func(o *Options) {
		o.GOOS = goos
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithProgress registers a callback invoked before the compiler starts.
func WithProgress(fn func(*Spec)) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// ApplyOptions applies functional options to DefaultOptions.
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BuildWith builds with functional options.
func BuildWith(ctx context.Context, opts ...Option) (*Report, error) {
	return Build(ctx, ApplyOptions(opts...))
}
