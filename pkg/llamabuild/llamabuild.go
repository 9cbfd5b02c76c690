// Package llamabuild provides a public API for building llama-app-generator.
//
// A project follows a fixed layout:
//
//	<root>/src/generator.cpp   the only translation unit
//	<root>/include/            header search path
//	<root>/bin/                output directory, created on demand
//
// Basic usage:
//
//	report, err := llamabuild.Build(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Exit(report.ExitStatus())
//
// With options:
//
//	report, err := llamabuild.BuildWith(ctx,
//	    llamabuild.WithRoot("./llama-app-generator"),
//	    llamabuild.WithCompiler("clang++"),
//	)
package llamabuild

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LiboWorks/llama-build/internal/compiler"
	"github.com/LiboWorks/llama-build/internal/layout"
)

// Types shared with the internal packages.
type (
	Layout = layout.Layout
	Spec   = compiler.Spec
	Result = compiler.Result
	Kind   = compiler.Kind
)

// Build outcomes.
const (
	Success          = compiler.Success
	CompilerFailure  = compiler.CompilerFailure
	CompilerNotFound = compiler.CompilerNotFound
)

// Report describes one finished build.
type Report struct {
	// RunID identifies the build in logs and encoded reports.
	RunID string `json:"run_id" yaml:"run_id"`

	Root    string   `json:"root" yaml:"root"`
	Command []string `json:"command" yaml:"command"`
	Result  *Result  `json:"result" yaml:"result"`

	Duration  time.Duration `json:"-" yaml:"-"`
	ElapsedMS int64         `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// ExitStatus is 0 when the executable was produced and 1 otherwise.
func (r *Report) ExitStatus() int {
	return r.Result.Kind.ExitStatus()
}

// Plan resolves the layout and assembles the compiler invocation without
// touching the filesystem or starting anything.
func Plan(opts *Options) (*Layout, *Spec, error) {
	opts = withDefaults(opts)

	l, err := layout.Resolve(opts.Root)
	if err != nil {
		return nil, nil, err
	}
	return l, compiler.NewSpec(l, opts.Compiler, opts.GOOS), nil
}

// Build runs the driver once: resolve the layout, create the output
// directory, select the compiler, assemble the invocation, run it and
// return the outcome. Compiler failures and a missing compiler are reported
// through Report.Result; the returned error is reserved for problems that
// prevent the attempt itself, such as an output directory that cannot be
// created.
func Build(ctx context.Context, opts *Options) (*Report, error) {
	opts = withDefaults(opts)
	runID := uuid.NewString()
	logger := opts.Logger.With("run_id", runID)

	l, spec, err := Plan(opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("layout resolved",
		"root", l.Root,
		"source", l.SourceFile(),
		"include", l.IncludeDir,
		"output_dir", l.OutputDir)

	if err := l.EnsureOutputDir(); err != nil {
		return nil, err
	}

	logger.Debug("invocation assembled",
		"compiler", spec.CompilerPath,
		"args", spec.Args(),
		"goos", opts.GOOS)

	if opts.Progress != nil {
		opts.Progress(spec)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := compiler.Run(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", runID, err)
	}
	elapsed := time.Since(start)

	logger.Debug("compiler finished",
		"kind", string(res.Kind),
		"exit_code", res.ExitCode,
		"timed_out", res.TimedOut,
		"elapsed", elapsed)

	return &Report{
		RunID:     runID,
		Root:      l.Root,
		Command:   spec.CommandLine(),
		Result:    res,
		Duration:  elapsed,
		ElapsedMS: elapsed.Milliseconds(),
	}, nil
}
