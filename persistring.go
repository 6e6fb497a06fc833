// Package persistring defines the shared contract implemented by every
// persistent-string representation strategy in this module (cow, delta,
// rope, flatrope): a text value that keeps every version it has ever held
// and can switch to any of them in O(1), forking a new head on the next
// mutation.
//
// None of the strategies are safe for concurrent mutation from multiple
// goroutines; each owns its state exclusively and expects the caller to
// serialize access, the same way a plain Go string builder would.
package persistring

import "github.com/JarvisCraft/persistring/version"

// Handle is re-exported from package version for callers that only need
// the handle type, not the registry machinery.
type Handle = version.Handle

// VersionSwitchError is re-exported from package version; TrySwitchVersion
// implementations return this (wrapped in the error interface) when asked
// to switch to a handle that was never allocated.
type VersionSwitchError = version.SwitchError

// ErrInvalidVersion is the sentinel to match against with errors.Is.
var ErrInvalidVersion = version.ErrInvalidVersion

// PersistentString is the common trait every representation strategy
// implements. All mutating methods allocate a new version and make it
// current; none of them truncate or reclaim history, even when switching
// away from the latest version and mutating from there.
type PersistentString interface {
	// Version returns the current handle.
	Version() Handle
	// LatestVersion returns the highest allocated handle.
	LatestVersion() Handle
	// TrySwitchVersion switches to v, returning an error if v was never
	// allocated. On success it has no effect beyond moving the cursor.
	TrySwitchVersion(v Handle) error
	// SwitchVersion is a convenience wrapper around TrySwitchVersion that
	// panics on an invalid handle.
	SwitchVersion(v Handle)

	// Snapshot returns the full text of the current version.
	Snapshot() string
	// IsEmpty reports whether the current version has zero bytes.
	IsEmpty() bool
	// Len returns the UTF-8 byte length of the current version.
	Len() int

	// Push appends a single rune, allocating a new version.
	Push(c rune)
	// PushStr appends a string, allocating a new version even if s is empty.
	PushStr(s string)
	// Pop removes and returns the last rune, allocating a new version on a
	// non-empty string. On an empty string it returns (0, false); whether a
	// new (identical) version is allocated in that case is left to the
	// strategy.
	Pop() (rune, bool)
	// Repeat replaces the current text with n consecutive copies of
	// itself, always allocating a new version.
	Repeat(n int)
	// Remove removes and returns the rune at character index i, allocating
	// a new version. It panics if i is out of range.
	Remove(i int) rune
	// Retain keeps every rune for which predicate returns true, in order,
	// always allocating a new version.
	Retain(predicate func(rune) bool)
	// Insert inserts a single rune at character index i, allocating a new
	// version. It panics if i is greater than the current character length.
	Insert(i int, c rune)
	// InsertStr inserts a string at character index i, allocating a new
	// version even if s is empty. It panics if i is greater than the
	// current character length.
	InsertStr(i int, s string)
}

// SwitchVersion is shared by every strategy's convenience wrapper: it calls
// TrySwitchVersion and panics with the underlying error on failure.
func SwitchVersion(s PersistentString, v Handle) {
	if err := s.TrySwitchVersion(v); err != nil {
		panic(err)
	}
}
