// Package diag holds the assertion helpers used at every internal
// consistency boundary of the persistent-string strategies: UTF-8
// alignment, arena bounds, registry bounds, and caller-index validation.
//
// Violations here are programmer errors, not recoverable conditions, so
// every helper panics rather than returning an error.
package diag

import "fmt"

// Assertf panics with a formatted message if cond is false. Arguments may be
// zero-argument closures (func() T for common T); these are only evaluated
// when the assertion actually fails, so expensive diagnostics (e.g. walking
// a tree to describe it) cost nothing on the success path.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("persistring: assertion failed: "+format, evalLazyArgs(args...)...))
	}
}

// AssertNoError panics if err is non-nil.
func AssertNoError(err error, context string) {
	Assertf(err == nil, "%s: %v", context, err)
}

// IndexOutOfRange panics with a diagnostic naming the offending index and
// the current length, per the fatal-error contract for Remove/Insert/InsertStr.
func IndexOutOfRange(operation string, index, length int) {
	panic(fmt.Errorf("persistring: %s: index %d out of range for length %d", operation, index, length))
}

func evalLazyArgs(args ...any) []any {
	ret := make([]any, len(args))
	for i, arg := range args {
		switch fn := arg.(type) {
		case func() string:
			ret[i] = fn()
		case func() bool:
			ret[i] = fn()
		case func() int:
			ret[i] = fn()
		case func() rune:
			ret[i] = fn()
		default:
			ret[i] = arg
		}
	}
	return ret
}
