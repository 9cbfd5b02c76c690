package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for the compiler's output pipes to
// close once ctx is done.
const waitDelay = 2 * time.Second

// Run executes spec and waits for the compiler to exit. A nonzero exit is an
// ordinary CompilerFailure result, not an error. A compiler that cannot be
// located or started yields CompilerNotFound. Only other start failures are
// returned as errors.
//
// No deadline is applied here; callers that want one put it on ctx. A
// compiler killed by ctx is reported as a CompilerFailure; TimedOut is set
// only when the ctx deadline expired. Stopping the compiler also stops the
// stages it forked (cc1plus, as, ld).
func Run(ctx context.Context, spec *Spec) (*Result, error) {
	cmd := exec.CommandContext(ctx, spec.CompilerPath, spec.Args()...)
	cmd.WaitDelay = waitDelay
	configureCommand(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := &Result{
		CompilerPath: spec.CompilerPath,
		OutputPath:   spec.OutputPath,
	}
	if err == nil {
		res.Kind = Success
		res.Stdout = stdout.String()
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.Kind = CompilerFailure
		res.ExitCode = exitErr.ExitCode()
		res.Stdout = stdout.String()
		res.Stderr = stderr.String()
		res.TimedOut = errors.Is(ctx.Err(), context.DeadlineExceeded)
		return res, nil
	}

	if notStartable(err) {
		return &Result{
			Kind:         CompilerNotFound,
			CompilerPath: spec.CompilerPath,
		}, nil
	}

	return nil, fmt.Errorf("failed to start compiler %s: %w", spec.CompilerPath, err)
}

func notStartable(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, exec.ErrDot) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}
