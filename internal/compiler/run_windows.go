//go:build !unix

package compiler

import "os/exec"

// configureCommand keeps the default cancellation off unix, which kills
// only the compiler process. WaitDelay still bounds the wait for pipes held
// by its children.
func configureCommand(cmd *exec.Cmd) {}
