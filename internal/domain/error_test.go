package domain

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	rejected := CommandRejected("amixer", "amixer: Unable to find simple control 'Nope',0\n")
	if !errors.Is(rejected, ErrCommandRejected) {
		t.Fatal("CommandRejected is not ErrCommandRejected")
	}
	if errors.Is(rejected, ErrNotFound) {
		t.Fatal("CommandRejected matched ErrNotFound")
	}
	if rejected.Error() != "amixer: Unable to find simple control 'Nope',0\n" {
		t.Fatalf("stderr not surfaced verbatim: %q", rejected.Error())
	}

	wrapped := fmt.Errorf("set volume: %w", NotFound("resolve", "Could not find card with name: %s", "Fireface"))
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("wrapped NotFound lost its kind")
	}
	if KindOf(wrapped) != ErrNotFound {
		t.Fatalf("KindOf = %v", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != nil {
		t.Fatal("KindOf should be nil for foreign errors")
	}
}

func TestExecutionFailureUnwraps(t *testing.T) {
	err := ExecutionFailure("pw-cli", exec.ErrNotFound)
	if !errors.Is(err, ErrExecutionFailure) {
		t.Fatal("missing kind")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Fatal("OS error not reachable through Unwrap")
	}
}
