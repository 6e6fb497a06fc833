package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JarvisCraft/persistring/internal/diag"
)

func catchPanic(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	f()
	return nil
}

func TestAssertfPassesThrough(t *testing.T) {
	require.NotPanics(t, func() { diag.Assertf(true, "unreachable") })
}

func TestAssertfPanicsWithMessage(t *testing.T) {
	err := catchPanic(func() { diag.Assertf(false, "boom %d", 42) })
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom 42")
}

func TestAssertfLazyArgNotEvaluatedOnSuccess(t *testing.T) {
	evaluated := false
	diag.Assertf(true, "value %s", func() string { evaluated = true; return "x" })
	require.False(t, evaluated)
}

func TestAssertNoErrorPanicsOnNonNil(t *testing.T) {
	cause := errors.New("underlying failure")
	err := catchPanic(func() { diag.AssertNoError(cause, "ctx") })
	require.Error(t, err)
	require.Contains(t, err.Error(), "ctx")
	require.Contains(t, err.Error(), "underlying failure")
}

func TestAssertNoErrorPassesThroughOnNil(t *testing.T) {
	require.NotPanics(t, func() { diag.AssertNoError(nil, "ctx") })
}

func TestIndexOutOfRangePanics(t *testing.T) {
	err := catchPanic(func() { diag.IndexOutOfRange("op", 5, 3) })
	require.Error(t, err)
	require.Contains(t, err.Error(), "index 5 out of range for length 3")
}
