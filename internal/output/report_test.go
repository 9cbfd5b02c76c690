package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/LiboWorks/llama-build/internal/compiler"
	"github.com/LiboWorks/llama-build/internal/layout"
	"github.com/LiboWorks/llama-build/internal/output"
)

func TestReportSuccess(t *testing.T) {
	var buf bytes.Buffer
	output.NewReporter(&buf).Report(&compiler.Result{
		Kind:         compiler.Success,
		CompilerPath: "g++",
		OutputPath:   "/p/bin/llama-app-generator",
		Stdout:       "note: done\n",
	})

	out := buf.String()
	assert.Contains(t, out, "✓ Build successful!")
	assert.Contains(t, out, "note: done")
	assert.Contains(t, out, "✓ Executable: /p/bin/llama-app-generator")
	assert.Contains(t, out, "Run with: /p/bin/llama-app-generator")
	assert.NotContains(t, out, "✗")
}

func TestReportFailure(t *testing.T) {
	var buf bytes.Buffer
	output.NewReporter(&buf).Report(&compiler.Result{
		Kind:     compiler.CompilerFailure,
		ExitCode: 1,
		Stdout:   "compiling",
		Stderr:   "generator.cpp: No such file or directory\n",
	})

	out := buf.String()
	assert.Contains(t, out, "✗ Build failed!")
	assert.Contains(t, out, "Error code: 1")
	assert.Contains(t, out, "Standard output:\ncompiling\n")
	assert.Contains(t, out, "Error output:\ngenerator.cpp: No such file or directory\n")
	assert.NotContains(t, out, "timeout")
	assert.NotContains(t, out, "Build successful")
}

func TestReportFailureOmitsEmptyStreams(t *testing.T) {
	var buf bytes.Buffer
	output.NewReporter(&buf).Report(&compiler.Result{
		Kind:     compiler.CompilerFailure,
		ExitCode: -1,
		TimedOut: true,
	})

	out := buf.String()
	assert.Contains(t, out, "Error code: -1")
	assert.Contains(t, out, "timeout")
	assert.NotContains(t, out, "Standard output:")
	assert.NotContains(t, out, "Error output:")
}

func TestReportNotFound(t *testing.T) {
	var buf bytes.Buffer
	output.NewReporter(&buf).Report(&compiler.Result{
		Kind:         compiler.CompilerNotFound,
		CompilerPath: "nope++",
	})

	out := buf.String()
	assert.Contains(t, out, "✗ Compiler 'nope++' not found!")
	assert.Contains(t, out, "set the CXX environment variable")
}

func TestProgressAndDryRun(t *testing.T) {
	l, err := layout.Resolve(t.TempDir())
	require.NoError(t, err)
	spec := compiler.NewSpec(l, "clang++", "linux")

	var buf bytes.Buffer
	r := output.NewReporter(&buf)
	r.Progress(spec)
	assert.Contains(t, buf.String(), "Building llama-app-generator...")
	assert.Contains(t, buf.String(), "Compiler: clang++")

	buf.Reset()
	r.DryRun(spec)
	assert.Contains(t, buf.String(), "clang++ -std=c++17 -Wall -Wextra -O2")
	assert.Contains(t, buf.String(), spec.OutputPath)
}

func TestEncode(t *testing.T) {
	res := &compiler.Result{Kind: compiler.CompilerFailure, CompilerPath: "g++", ExitCode: 1, Stderr: "boom"}

	var js bytes.Buffer
	require.NoError(t, output.Encode(&js, "json", res))
	var fromJSON compiler.Result
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	assert.Equal(t, *res, fromJSON)

	var ym bytes.Buffer
	require.NoError(t, output.Encode(&ym, "yaml", res))
	assert.Contains(t, ym.String(), "kind: compiler_failure")
	var fromYAML compiler.Result
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, *res, fromYAML)

	assert.Error(t, output.Encode(&js, "text", res))
}
