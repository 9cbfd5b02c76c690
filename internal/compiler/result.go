package compiler

// Kind tags the outcome of one compiler invocation.
type Kind string

const (
	Success          Kind = "success"
	CompilerFailure  Kind = "compiler_failure"
	CompilerNotFound Kind = "compiler_not_found"
)

// ExitStatus maps k to the process exit code of the driver.
func (k Kind) ExitStatus() int {
	if k == Success {
		return 0
	}
	return 1
}

// Result is the outcome of Run. Exactly one Kind is set; the remaining
// fields are filled according to it:
//
//	Success:          Stdout
//	CompilerFailure:  ExitCode, Stdout, Stderr, TimedOut
//	CompilerNotFound: CompilerPath
type Result struct {
	Kind         Kind   `json:"kind" yaml:"kind"`
	CompilerPath string `json:"compiler" yaml:"compiler"`
	OutputPath   string `json:"output,omitempty" yaml:"output,omitempty"`
	ExitCode     int    `json:"exit_code" yaml:"exit_code"`
	Stdout       string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr       string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	TimedOut     bool   `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
}

// OK reports whether the executable was produced.
func (r *Result) OK() bool {
	return r.Kind == Success
}
