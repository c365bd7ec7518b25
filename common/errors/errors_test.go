package errors

import (
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestNewError(t *testing.T) {
	if NewError(nil, ConfigFailureExitCode) != nil {
		t.Fatal("nil error should stay nil")
	}
	var nilErr *ExitCodeError
	if nilErr.GetExitCode() != 0 {
		t.Fatal("nil ExitCodeError should exit 0")
	}

	root := fmt.Errorf("boom")
	err := NewError(pkgerrors.Wrap(root, "loading"), ContainerFailureExitCode)
	if err.GetExitCode() != ContainerFailureExitCode {
		t.Fatalf("unexpected exit code %d", err.GetExitCode())
	}
	if pkgerrors.Cause(err) != root {
		t.Fatalf("Cause should unwrap to the root error; was %v", pkgerrors.Cause(err))
	}
}
