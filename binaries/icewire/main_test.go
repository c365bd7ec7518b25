package main

import (
	"fmt"
	"testing"

	"go.uber.org/multierr"

	"github.com/twitter/icewire/common/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("plain"), 1},
		{errors.NewError(fmt.Errorf("bad flag"), errors.ConfigFailureExitCode), 70},
		{multierr.Append(
			errors.NewError(fmt.Errorf("boom"), errors.ProcessFailureExitCode),
			errors.NewError(fmt.Errorf("leak"), errors.DestroyFailureExitCode)), 100},
	}
	for _, test := range tests {
		if got := exitCode(test.err); got != test.code {
			t.Errorf("exitCode(%v): expected %d, got %d", test.err, test.code, got)
		}
	}
}
