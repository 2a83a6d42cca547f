package repair

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/luki/vitals/internal/runner"
)

// scriptRunner pretends apt-get is the only manager on the host and
// records every invocation.
type scriptRunner struct {
	installErr  map[string]error
	invocations []string
}

func (s *scriptRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	s.invocations = append(s.invocations, name+" "+strings.Join(args, " "))
	switch name {
	case "which":
		if len(args) == 1 && args[0] == "apt-get" {
			return "/usr/bin/apt-get\n", nil
		}
		return "", &runner.Error{Kind: runner.NonZeroExit, Tool: name, Err: errors.New("not found")}
	case "apt-get":
		pkg := args[len(args)-1]
		if err, ok := s.installErr[pkg]; ok {
			return "", err
		}
		return "", nil
	}
	return "", &runner.Error{Kind: runner.NotFound, Tool: name, Err: errors.New("unexpected tool")}
}

func (s *scriptRunner) installs() []string {
	var out []string
	for _, inv := range s.invocations {
		if strings.HasPrefix(inv, "apt-get install") {
			out = append(out, inv)
		}
	}
	return out
}

func TestAttemptUsesFirstManagerFound(t *testing.T) {
	run := &scriptRunner{}
	PackageInstall{Run: run}.Attempt(context.Background())

	installs := run.installs()
	want := []string{
		"apt-get install -y nvidia-utils",
		"apt-get install -y radeontop",
		"apt-get install -y lm-sensors",
	}
	if len(installs) != len(want) {
		t.Fatalf("installs: got %v, want %v", installs, want)
	}
	for i := range want {
		if installs[i] != want[i] {
			t.Errorf("install %d: got %q, want %q", i, installs[i], want[i])
		}
	}

	// Only the winning manager's binary may be driven.
	for _, inv := range run.invocations {
		if strings.HasPrefix(inv, "dnf") || strings.HasPrefix(inv, "pacman") || strings.HasPrefix(inv, "zypper") {
			t.Errorf("unexpected invocation of another manager: %q", inv)
		}
	}
}

func TestAttemptToleratesIndividualInstallFailures(t *testing.T) {
	run := &scriptRunner{installErr: map[string]error{
		"nvidia-utils": &runner.Error{Kind: runner.NonZeroExit, Tool: "apt-get", Err: errors.New("already installed")},
	}}
	PackageInstall{Run: run}.Attempt(context.Background())

	if got := len(run.installs()); got != 3 {
		t.Errorf("a failed package must not abort the rest: got %d installs, want 3", got)
	}
}

func TestAttemptIdempotent(t *testing.T) {
	run := &scriptRunner{}
	p := PackageInstall{Run: run}
	p.Attempt(context.Background())
	first := make([]string, len(run.invocations))
	copy(first, run.invocations)

	p.Attempt(context.Background())
	second := run.invocations[len(first):]

	if len(second) != len(first) {
		t.Fatalf("second attempt diverged: first=%v second=%v", first, second)
	}
	for i := range first {
		if second[i] != first[i] {
			t.Errorf("invocation %d differs between attempts: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestAttemptNoManagerFound(t *testing.T) {
	run := &scriptRunner{}
	// Replace which so nothing is found.
	noMgr := runnerFunc(func(ctx context.Context, name string, args ...string) (string, error) {
		run.invocations = append(run.invocations, name)
		return "", &runner.Error{Kind: runner.NonZeroExit, Tool: name, Err: errors.New("not found")}
	})
	PackageInstall{Run: noMgr}.Attempt(context.Background())

	for _, inv := range run.invocations {
		if inv != "which" {
			t.Errorf("only manager detection may run, got %q", inv)
		}
	}
}

func TestDisabledIsInert(t *testing.T) {
	// Must be callable with no runner wired at all.
	Disabled{}.Attempt(context.Background())
}

type runnerFunc func(ctx context.Context, name string, args ...string) (string, error)

func (f runnerFunc) Run(ctx context.Context, name string, args ...string) (string, error) {
	return f(ctx, name, args...)
}
