package runner

import (
	"context"
	"testing"
	"time"
)

func TestRunCapturesStdout(t *testing.T) {
	out, err := Exec{}.Run(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hello\n" {
		t.Errorf("stdout: got %q, want %q", out, "hello\n")
	}
}

func TestRunNotFound(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), "definitely-not-a-real-tool-xyz")
	if err == nil {
		t.Fatal("expected error for missing tool")
	}
	kind, ok := KindOf(err)
	if !ok || kind != NotFound {
		t.Errorf("kind: got %v (classified=%v), want NotFound", kind, ok)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), "sh", "-c", "echo ignored; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	kind, ok := KindOf(err)
	if !ok || kind != NonZeroExit {
		t.Errorf("kind: got %v (classified=%v), want NonZeroExit", kind, ok)
	}
}

func TestRunTimedOutDistinctFromExit(t *testing.T) {
	start := time.Now()
	_, err := Exec{Timeout: 100 * time.Millisecond}.Run(context.Background(), "sleep", "10")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
	kind, ok := KindOf(err)
	if !ok || kind != TimedOut {
		t.Errorf("kind: got %v (classified=%v), want TimedOut", kind, ok)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if _, ok := KindOf(context.Canceled); ok {
		t.Error("KindOf should not classify foreign errors")
	}
}
