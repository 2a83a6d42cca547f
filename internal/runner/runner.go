// Package runner executes external diagnostic tools with a bounded wait
// and classifies how an invocation failed: tool missing, tool reported an
// error, or tool exceeded its time budget. Probes depend on the
// classification to decide whether a source is worth retrying.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single tool invocation. Some tools block for a
// fixed sampling window (radeontop samples for a second), so this must
// comfortably exceed that.
const DefaultTimeout = 5 * time.Second

// Kind classifies an invocation failure.
type Kind int

const (
	NotFound    Kind = iota // executable could not be located
	NonZeroExit             // process ran and exited non-zero
	TimedOut                // process exceeded the time budget
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case NonZeroExit:
		return "non-zero exit"
	case TimedOut:
		return "timed out"
	}
	return "unknown"
}

// Error is a classified invocation failure.
type Error struct {
	Kind Kind
	Tool string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Tool, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure classification from an error chain.
// The second result is false if the error did not come from a Runner.
func KindOf(err error) (Kind, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}

// Runner runs an external tool and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Exec is the real Runner backed by os/exec. The zero value uses
// DefaultTimeout.
type Exec struct {
	Timeout time.Duration
}

// Run locates and executes the tool, capturing stdout. Stdout of a
// non-zero exit is discarded. The wait is bounded by e.Timeout on top of
// whatever deadline ctx already carries.
func (e Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", &Error{Kind: NotFound, Tool: name, Err: err}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(cctx, name, args...).Output()
	if err != nil {
		if cctx.Err() != nil {
			return "", &Error{Kind: TimedOut, Tool: name, Err: cctx.Err()}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &Error{Kind: NonZeroExit, Tool: name, Err: err}
		}
		return "", &Error{Kind: NotFound, Tool: name, Err: err}
	}
	return string(out), nil
}
