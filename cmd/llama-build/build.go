package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/LiboWorks/llama-build/internal/config"
	"github.com/LiboWorks/llama-build/internal/output"
	"github.com/LiboWorks/llama-build/pkg/llamabuild"
)

// Process exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

// errBuildFailed marks a build whose outcome was already reported.
var errBuildFailed = errors.New("build failed")

type buildFlags struct {
	root     string
	compiler string
	format   string
	verbose  bool
	dryRun   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags buildFlags

	rootCmd := &cobra.Command{
		Use:   "llama-build",
		Short: "Build llama-app-generator into a native executable",
		Long: `llama-build compiles <root>/src/generator.cpp with the include path
<root>/include into <root>/bin/llama-app-generator using a single
C++17 compiler invocation.

The compiler defaults to g++ and can be overridden with the CXX
environment variable, a CXX entry in <root>/.env, or --compiler.

Examples:
  llama-build
  llama-build --root ./llama-app-generator
  CXX=clang++ llama-build --format json
  llama-build --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return runBuild(cmd, cfg, flags.dryRun, stdout, stderr)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.Flags().StringVarP(&flags.root, "root", "r", config.DefaultRoot, "Project root containing src/, include/ and bin/")
	rootCmd.Flags().StringVar(&flags.compiler, "compiler", "", "Compiler executable (overrides CXX)")
	rootCmd.Flags().Duration("timeout", 0, "Stop the compiler after this long (0 waits indefinitely)")
	rootCmd.Flags().StringVarP(&flags.format, "format", "f", "", "Report format: text, json or yaml")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the compiler invocation without running it")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the llama-build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "llama-build %s\n", llamabuild.Version)
		},
	})

	return rootCmd
}

// loadConfig layers flags over the environment and the project .env file.
func loadConfig(cmd *cobra.Command, flags *buildFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.root)
	if err != nil {
		return nil, err
	}
	cfg.WithCompiler(flags.compiler).WithFormat(flags.format)
	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
		cfg.WithTimeout(timeout)
	}
	if cmd.Flags().Changed("verbose") {
		cfg.WithVerbose(flags.verbose)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, cfg *config.Config, dryRun bool, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := llamabuild.FromConfig(cfg)
	opts.Logger = logger
	reporter := output.NewReporter(stdout)

	if dryRun {
		_, spec, err := llamabuild.Plan(opts)
		if err != nil {
			return err
		}
		if cfg.Format != config.FormatText {
			return output.Encode(stdout, cfg.Format, spec.CommandLine())
		}
		reporter.DryRun(spec)
		return nil
	}

	if cfg.Format == config.FormatText {
		opts.Progress = reporter.Progress
	}

	report, err := llamabuild.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if cfg.Format == config.FormatText {
		reporter.Report(report.Result)
	} else if err := output.Encode(stdout, cfg.Format, report); err != nil {
		return err
	}

	if report.ExitStatus() != exitSuccess {
		return errBuildFailed
	}
	return nil
}

// run executes the command line and maps the outcome to a process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errBuildFailed) {
			fmt.Fprintf(stderr, "✗ %v\n", err)
		}
		return exitFailure
	}
	return exitSuccess
}
