// Package cow implements the copy-on-write PersistentString strategy: each
// mutation clones the current version's full text, applies the operation
// to the clone, and stores the clone as a new version. It is the simplest
// possible correct strategy and the slowest — O(total bytes written across
// all versions) space, worst case quadratic time for a character-at-a-time
// workload — kept as a reference baseline rather than tuned.
//
// Not safe for concurrent mutation from multiple goroutines.
package cow

import (
	"strings"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/internal/diag"
	"github.com/JarvisCraft/persistring/version"
)

// String is the copy-on-write PersistentString.
type String struct {
	versions *version.Registry[string]
}

var _ persistring.PersistentString = (*String)(nil)

// New returns a String at version 0 (empty).
func New() *String {
	return &String{versions: version.New("")}
}

func (s *String) Version() persistring.Handle       { return s.versions.Current() }
func (s *String) LatestVersion() persistring.Handle { return s.versions.Latest() }

func (s *String) TrySwitchVersion(v persistring.Handle) error {
	return s.versions.Switch(v)
}

func (s *String) SwitchVersion(v persistring.Handle) {
	persistring.SwitchVersion(s, v)
}

func (s *String) Snapshot() string {
	return s.versions.State()
}

func (s *String) IsEmpty() bool { return len(s.versions.State()) == 0 }
func (s *String) Len() int      { return len(s.versions.State()) }

func (s *String) commit(next string) {
	h := s.versions.Allocate(next)
	s.versions.SetCurrent(h)
}

func (s *String) Push(c rune) {
	current := s.versions.State()
	s.commit(current + string(c))
}

func (s *String) PushStr(suffix string) {
	current := s.versions.State()
	s.commit(current + suffix)
}

func (s *String) Pop() (rune, bool) {
	current := s.versions.State()
	if current == "" {
		s.commit(current)
		return 0, false
	}
	runes := []rune(current)
	popped := runes[len(runes)-1]
	s.commit(string(runes[:len(runes)-1]))
	return popped, true
}

func (s *String) Repeat(n int) {
	current := s.versions.State()
	s.commit(strings.Repeat(current, n))
}

func (s *String) Remove(i int) rune {
	current := s.versions.State()
	runes := []rune(current)
	if i < 0 || i >= len(runes) {
		diag.IndexOutOfRange("cow.String.Remove", i, len(runes))
	}
	removed := runes[i]
	next := make([]rune, 0, len(runes)-1)
	next = append(next, runes[:i]...)
	next = append(next, runes[i+1:]...)
	s.commit(string(next))
	return removed
}

func (s *String) Retain(predicate func(rune) bool) {
	current := s.versions.State()
	var b strings.Builder
	b.Grow(len(current))
	for _, r := range current {
		if predicate(r) {
			b.WriteRune(r)
		}
	}
	s.commit(b.String())
}

func (s *String) Insert(i int, c rune) {
	s.InsertStr(i, string(c))
}

func (s *String) InsertStr(i int, insertion string) {
	current := s.versions.State()
	runes := []rune(current)
	if i < 0 || i > len(runes) {
		diag.IndexOutOfRange("cow.String.InsertStr", i, len(runes))
	}
	var b strings.Builder
	b.Grow(len(current) + len(insertion))
	b.WriteString(string(runes[:i]))
	b.WriteString(insertion)
	b.WriteString(string(runes[i:]))
	s.commit(b.String())
}
