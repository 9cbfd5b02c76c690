// Package output renders build progress and outcomes for the console and
// for machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LiboWorks/llama-build/internal/compiler"
	"github.com/LiboWorks/llama-build/internal/config"
)

// Reporter writes human readable build output to w.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Progress announces the build before the compiler starts.
func (r *Reporter) Progress(spec *compiler.Spec) {
	fmt.Fprintf(r.w, "Building %s...\n", compiler.ArtifactBase)
	fmt.Fprintf(r.w, "Compiler: %s\n", spec.CompilerPath)
	fmt.Fprintln(r.w, "Compiling...")
}

// DryRun prints the invocation that a build would run.
func (r *Reporter) DryRun(spec *compiler.Spec) {
	fmt.Fprintf(r.w, "Compiler: %s\n", spec.CompilerPath)
	fmt.Fprintf(r.w, "Output:   %s\n", spec.OutputPath)
	fmt.Fprintf(r.w, "Command:  %s\n", strings.Join(spec.CommandLine(), " "))
}

// Report prints exactly one outcome block for res.
func (r *Reporter) Report(res *compiler.Result) {
	switch res.Kind {
	case compiler.Success:
		r.success(res)
	case compiler.CompilerFailure:
		r.failure(res)
	case compiler.CompilerNotFound:
		r.notFound(res)
	default:
		fmt.Fprintf(r.w, "✗ Unknown build outcome %q\n", res.Kind)
	}
}

func (r *Reporter) success(res *compiler.Result) {
	fmt.Fprintln(r.w, "✓ Compilation complete!")
	fmt.Fprintln(r.w)
	if res.Stdout != "" {
		fmt.Fprintln(r.w, strings.TrimRight(res.Stdout, "\n"))
	}
	fmt.Fprintln(r.w, "✓ Build successful!")
	fmt.Fprintf(r.w, "✓ Executable: %s\n", res.OutputPath)
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "Run with: %s\n", res.OutputPath)
}

func (r *Reporter) failure(res *compiler.Result) {
	fmt.Fprintln(r.w, "✗ Build failed!")
	fmt.Fprintf(r.w, "Error code: %d\n", res.ExitCode)
	if res.TimedOut {
		fmt.Fprintln(r.w, "The compiler was stopped after the configured timeout.")
	}
	if res.Stdout != "" {
		fmt.Fprintln(r.w, "\nStandard output:")
		fmt.Fprint(r.w, res.Stdout)
		if !strings.HasSuffix(res.Stdout, "\n") {
			fmt.Fprintln(r.w)
		}
	}
	if res.Stderr != "" {
		fmt.Fprintln(r.w, "\nError output:")
		fmt.Fprint(r.w, res.Stderr)
		if !strings.HasSuffix(res.Stderr, "\n") {
			fmt.Fprintln(r.w)
		}
	}
}

func (r *Reporter) notFound(res *compiler.Result) {
	fmt.Fprintf(r.w, "✗ Compiler '%s' not found!\n", res.CompilerPath)
	fmt.Fprintf(r.w, "Please install a C++ compiler or set the %s environment variable.\n", config.EnvCompiler)
}

// Encode writes v to w in a machine readable format (json or yaml).
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported encoding format %q", format)
	}
}
