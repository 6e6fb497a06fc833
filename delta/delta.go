// Package delta implements the delta-log PersistentString strategy: each
// mutation records only the operation performed, not the resulting text;
// Snapshot materializes a version by replaying the chain of operations
// from the empty string. Write cost is minimal; snapshot cost is
// proportional to version depth, which the package amortizes with an
// optional snapshot memoization cache.
//
// Retain predicates are ordinary Go closures owned by the delta record
// that created them; this is why the strategy only makes sense in-memory
// and has no serialization story.
//
// Not safe for concurrent mutation from multiple goroutines.
package delta

import (
	"strings"
	"sync/atomic"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/internal/diag"
	"github.com/JarvisCraft/persistring/internal/snapcache"
	"github.com/JarvisCraft/persistring/version"
)

var nextID uint64

func allocID() uintptr {
	return uintptr(atomic.AddUint64(&nextID, 1))
}

type kind int

const (
	kindPush kind = iota
	kindPushStr
	kindPop
	kindRepeat
	kindRemove
	kindRetain
	kindInsert
	kindInsertStr
)

// op is a single recorded mutation. Exactly the fields relevant to kind are
// meaningful; the rest are zero.
type op struct {
	kind kind
	r    rune
	s    string
	n    int
	pred func(rune) bool
}

func (o op) apply(current string) string {
	switch o.kind {
	case kindPush:
		return current + string(o.r)
	case kindPushStr:
		return current + o.s
	case kindPop:
		if current == "" {
			return current
		}
		runes := []rune(current)
		return string(runes[:len(runes)-1])
	case kindRepeat:
		return strings.Repeat(current, o.n)
	case kindRemove:
		runes := []rune(current)
		diag.Assertf(o.n >= 0 && o.n < len(runes), "delta.op.apply: remove index %d out of range for length %d", o.n, len(runes))
		next := make([]rune, 0, len(runes)-1)
		next = append(next, runes[:o.n]...)
		next = append(next, runes[o.n+1:]...)
		return string(next)
	case kindRetain:
		var b strings.Builder
		for _, r := range current {
			if o.pred(r) {
				b.WriteRune(r)
			}
		}
		return b.String()
	case kindInsert:
		runes := []rune(current)
		diag.Assertf(o.n >= 0 && o.n <= len(runes), "delta.op.apply: insert index %d out of range for length %d", o.n, len(runes))
		var b strings.Builder
		b.WriteString(string(runes[:o.n]))
		b.WriteRune(o.r)
		b.WriteString(string(runes[o.n:]))
		return b.String()
	case kindInsertStr:
		runes := []rune(current)
		diag.Assertf(o.n >= 0 && o.n <= len(runes), "delta.op.apply: insert_str index %d out of range for length %d", o.n, len(runes))
		var b strings.Builder
		b.WriteString(string(runes[:o.n]))
		b.WriteString(o.s)
		b.WriteString(string(runes[o.n:]))
		return b.String()
	default:
		panic("delta.op.apply: unknown op kind")
	}
}

// record is a version's bookkeeping: the index of the op that produced it
// from parent's content, and the parent handle itself. Version 0 has
// opIndex -1 and is its own parent.
type record struct {
	opIndex int
	parent  persistring.Handle
}

// String is the delta-log PersistentString.
type String struct {
	id       uintptr
	ops      []op
	versions *version.Registry[record]
	cache    *snapcache.Cache
}

var _ persistring.PersistentString = (*String)(nil)

// New returns a String at version 0 (empty), with snapshot memoization
// enabled.
func New() *String {
	return &String{id: allocID(), versions: version.New(record{opIndex: -1, parent: 0}), cache: snapcache.New(256)}
}

func (s *String) Version() persistring.Handle       { return s.versions.Current() }
func (s *String) LatestVersion() persistring.Handle { return s.versions.Latest() }

func (s *String) TrySwitchVersion(v persistring.Handle) error {
	return s.versions.Switch(v)
}

func (s *String) SwitchVersion(v persistring.Handle) {
	persistring.SwitchVersion(s, v)
}

// Snapshot materializes the current version by replaying the chain of
// operations from the empty string, memoizing the result.
func (s *String) Snapshot() string {
	return s.snapshotAt(s.versions.Current())
}

func (s *String) snapshotAt(h persistring.Handle) string {
	if cached, ok := s.cache.Get(s.id, h); ok {
		return cached
	}

	// Walk the parent chain collecting op indices in reverse, then fold
	// them forward from the empty string.
	var chain []int
	for cur := h; ; {
		rec := s.versions.StateAt(cur)
		if rec.opIndex < 0 {
			break
		}
		chain = append(chain, rec.opIndex)
		cur = rec.parent
	}

	text := ""
	for i := len(chain) - 1; i >= 0; i-- {
		text = s.ops[chain[i]].apply(text)
	}
	s.cache.Put(s.id, h, text)
	return text
}

func (s *String) IsEmpty() bool { return s.Len() == 0 }
func (s *String) Len() int      { return len(s.Snapshot()) }

func (s *String) commit(o op) {
	s.ops = append(s.ops, o)
	h := s.versions.Allocate(record{opIndex: len(s.ops) - 1, parent: s.versions.Current()})
	s.versions.SetCurrent(h)
}

func (s *String) Push(c rune) {
	s.commit(op{kind: kindPush, r: c})
}

func (s *String) PushStr(str string) {
	s.commit(op{kind: kindPushStr, s: str})
}

func (s *String) Pop() (rune, bool) {
	current := s.Snapshot()
	s.commit(op{kind: kindPop})
	if current == "" {
		return 0, false
	}
	runes := []rune(current)
	return runes[len(runes)-1], true
}

func (s *String) Repeat(n int) {
	s.commit(op{kind: kindRepeat, n: n})
}

func (s *String) Remove(i int) rune {
	current := []rune(s.Snapshot())
	if i < 0 || i >= len(current) {
		diag.IndexOutOfRange("delta.String.Remove", i, len(current))
	}
	removed := current[i]
	s.commit(op{kind: kindRemove, n: i})
	return removed
}

func (s *String) Retain(predicate func(rune) bool) {
	s.commit(op{kind: kindRetain, pred: predicate})
}

func (s *String) Insert(i int, c rune) {
	length := len([]rune(s.Snapshot()))
	if i < 0 || i > length {
		diag.IndexOutOfRange("delta.String.Insert", i, length)
	}
	s.commit(op{kind: kindInsert, n: i, r: c})
}

func (s *String) InsertStr(i int, str string) {
	length := len([]rune(s.Snapshot()))
	if i < 0 || i > length {
		diag.IndexOutOfRange("delta.String.InsertStr", i, length)
	}
	s.commit(op{kind: kindInsertStr, n: i, s: str})
}
