// Package version implements the flat, append-only version registry shared
// by every persistent-string strategy: an ordered sequence of version
// records (index == handle) plus a "current" cursor, generic over the
// strategy-specific state each record carries (a snapshot string, a delta
// (op index, parent) record, a rope root node id, ...).
package version

import (
	"github.com/cockroachdb/errors"

	"github.com/JarvisCraft/persistring/internal/diag"
)

// Handle is an opaque, monotonically issued version identifier. Handle 0
// always denotes the engine's initial (empty) state.
type Handle int

// ErrInvalidVersion is the sentinel VersionSwitchError wraps; match it with
// errors.Is.
var ErrInvalidVersion = errors.New("persistring: invalid version")

// SwitchError is the recoverable error returned by Registry.Switch (and,
// through it, by every strategy's TrySwitchVersion) when asked to switch to
// a handle that has never been allocated.
type SwitchError struct {
	Handle Handle
	cause  error
}

func (e *SwitchError) Error() string {
	return errors.Wrapf(e.cause, "version %d", e.Handle).Error()
}

func (e *SwitchError) Unwrap() error {
	return e.cause
}

func newSwitchError(h Handle) *SwitchError {
	return &SwitchError{Handle: h, cause: ErrInvalidVersion}
}

// Registry is an append-only sequence of version records of type T. Handle
// 0 is populated at construction time with the caller-supplied empty state.
type Registry[T any] struct {
	records []T
	current Handle
}

// New constructs a registry whose version 0 holds emptyState.
func New[T any](emptyState T) *Registry[T] {
	return &Registry[T]{records: []T{emptyState}, current: 0}
}

// Current returns the handle the registry is currently at.
func (r *Registry[T]) Current() Handle {
	return r.current
}

// Latest returns the highest allocated handle.
func (r *Registry[T]) Latest() Handle {
	return Handle(len(r.records) - 1)
}

// State returns the record stored at the current handle.
func (r *Registry[T]) State() T {
	return r.records[r.current]
}

// StateAt returns the record stored at the given handle. The handle must
// already be known-valid (e.g. obtained from Allocate or Current); use
// Switch first to validate an externally supplied handle.
func (r *Registry[T]) StateAt(h Handle) T {
	diag.Assertf(h >= 0 && int(h) < len(r.records), "version.Registry.StateAt: handle %d out of range for %d records", int(h), len(r.records))
	return r.records[h]
}

// Allocate appends state as a new version record and returns its handle.
// It does not change Current; the caller advances the cursor explicitly
// (normally to the handle just allocated) once the mutation is complete.
func (r *Registry[T]) Allocate(state T) Handle {
	r.records = append(r.records, state)
	return Handle(len(r.records) - 1)
}

// SetCurrent advances the current cursor to h without validating it; it is
// meant to be called only with a handle this registry just allocated.
func (r *Registry[T]) SetCurrent(h Handle) {
	r.current = h
}

// Switch validates h and, if valid, makes it current. It returns
// *SwitchError on failure.
func (r *Registry[T]) Switch(h Handle) error {
	if h < 0 || int(h) >= len(r.records) {
		return newSwitchError(h)
	}
	r.current = h
	return nil
}
