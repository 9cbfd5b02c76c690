// Package compiler assembles and runs the single compiler invocation that
// turns the generator source into an executable.
package compiler

import (
	"github.com/LiboWorks/llama-build/internal/layout"
)

// Fixed parts of the invocation.
const (
	// DefaultCompiler is used when no override is configured.
	DefaultCompiler = "g++"

	Standard     = "-std=c++17"
	Optimization = "-O2"
	ThreadFlag   = "-pthread"

	// ArtifactBase is the executable name without platform suffix.
	ArtifactBase = "llama-app-generator"
)

// WarningFlags are passed to every invocation, in this order.
var WarningFlags = []string{"-Wall", "-Wextra"}

// ArtifactName returns the executable file name for goos.
func ArtifactName(goos string) string {
	if goos == "windows" {
		return ArtifactBase + ".exe"
	}
	return ArtifactBase
}

// PlatformFlags returns the extra flags appended for goos.
func PlatformFlags(goos string) []string {
	if goos == "windows" {
		return nil
	}
	return []string{ThreadFlag}
}

// Spec is one fully assembled compiler invocation.
type Spec struct {
	CompilerPath       string
	Standard           string
	WarningFlags       []string
	OptimizationLevel  string
	IncludePaths       []string
	Sources            []string
	OutputPath         string
	PlatformExtraFlags []string
}

// NewSpec builds the invocation for l on goos. An empty compilerPath selects
// DefaultCompiler. The compiler is not looked up here; whether it exists is
// only known once Run tries to start it.
func NewSpec(l *layout.Layout, compilerPath, goos string) *Spec {
	if compilerPath == "" {
		compilerPath = DefaultCompiler
	}
	return &Spec{
		CompilerPath:       compilerPath,
		Standard:           Standard,
		WarningFlags:       append([]string(nil), WarningFlags...),
		OptimizationLevel:  Optimization,
		IncludePaths:       []string{l.IncludeDir},
		Sources:            []string{l.SourceFile()},
		OutputPath:         l.OutputPath(ArtifactName(goos)),
		PlatformExtraFlags: PlatformFlags(goos),
	}
}

// Args returns the compiler arguments. Sources always precede the -o pair.
func (s *Spec) Args() []string {
	args := []string{s.Standard}
	args = append(args, s.WarningFlags...)
	args = append(args, s.OptimizationLevel)
	for _, dir := range s.IncludePaths {
		args = append(args, "-I"+dir)
	}
	args = append(args, s.Sources...)
	args = append(args, "-o", s.OutputPath)
	args = append(args, s.PlatformExtraFlags...)
	return args
}

// CommandLine returns the compiler followed by Args.
func (s *Spec) CommandLine() []string {
	return append([]string{s.CompilerPath}, s.Args()...)
}
