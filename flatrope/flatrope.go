// Package flatrope implements the flat segment-list PersistentString
// strategy: each version is a slice of byte-range segments over a shared
// append-only buffer, rather than a tree. Push/PushStr/Repeat only ever
// append or duplicate segment descriptors, so they are cheap and never
// allocate arena nodes; Insert/Remove/Retain instead rebuild the segment
// slice for the version being mutated, re-slicing existing segments
// without copying bytes.
//
// Where rope trades an O(log n)-ish tree for O(1) Push at the cost of
// Remove/Insert needing to walk down to one leaf, flatrope trades that
// tree away entirely: every mutation, Push included, copies or rebuilds the
// current version's segment slice and so is O(number of segments in the
// current version), and Insert/Remove also walk that slice to find the
// position they touch. For workloads dominated by appends and occasional whole-text
// transforms (Repeat, Retain), this is both simpler and faster than rope;
// for workloads with many interior inserts building up long segment
// chains, rope remains the better choice.
//
// Not safe for concurrent mutation from multiple goroutines.
package flatrope

import (
	"strings"
	"unicode/utf8"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/internal/diag"
	"github.com/JarvisCraft/persistring/segment"
	"github.com/JarvisCraft/persistring/version"
)

// state is the per-version payload: the ordered segment list making up the
// text, plus its cached rune and byte lengths.
type state struct {
	segments []segment.Segment
	charLen  int
	byteLen  int
}

// String is the flat segment-list PersistentString.
type String struct {
	buffer   []byte
	versions *version.Registry[state]
}

var _ persistring.PersistentString = (*String)(nil)

// New returns a String at version 0 (empty).
func New() *String {
	return &String{versions: version.New(state{})}
}

func (s *String) Version() persistring.Handle       { return s.versions.Current() }
func (s *String) LatestVersion() persistring.Handle { return s.versions.Latest() }

func (s *String) TrySwitchVersion(v persistring.Handle) error {
	return s.versions.Switch(v)
}

func (s *String) SwitchVersion(v persistring.Handle) {
	persistring.SwitchVersion(s, v)
}

// Snapshot concatenates the current version's segments. No memoization is
// used here: unlike delta and rope, a flatrope snapshot is already a
// single linear pass over segments that directly reference the buffer, so
// repeated materialization is cheap relative to tree traversal or replay.
func (s *String) Snapshot() string {
	st := s.versions.State()
	if len(st.segments) == 0 {
		return ""
	}
	if len(st.segments) == 1 {
		return st.segments[0].Str(s.buffer)
	}
	var b strings.Builder
	b.Grow(st.byteLen)
	for _, seg := range st.segments {
		b.Write(seg.Bytes(s.buffer))
	}
	return b.String()
}

func (s *String) IsEmpty() bool { return s.versions.State().byteLen == 0 }
func (s *String) Len() int      { return s.versions.State().byteLen }

func (s *String) commit(next state) {
	h := s.versions.Allocate(next)
	s.versions.SetCurrent(h)
}

func (s *String) appendSegment(str string) segment.Segment {
	seg := segment.Of(len(s.buffer), str)
	s.buffer = append(s.buffer, str...)
	return seg
}

func (s *String) Push(c rune) {
	s.PushStr(string(c))
}

func (s *String) PushStr(str string) {
	cur := s.versions.State()
	if str == "" {
		s.commit(cur)
		return
	}
	seg := s.appendSegment(str)
	segments := make([]segment.Segment, len(cur.segments), len(cur.segments)+1)
	copy(segments, cur.segments)
	segments = append(segments, seg)
	s.commit(state{segments: segments, charLen: cur.charLen + utf8.RuneCountInString(str), byteLen: cur.byteLen + len(str)})
}

// Pop removes and returns the last rune, shrinking the last segment (or
// dropping it, if it held exactly one rune). On an already-empty version
// it elides the allocation entirely.
func (s *String) Pop() (rune, bool) {
	cur := s.versions.State()
	if len(cur.segments) == 0 {
		return 0, false
	}
	last := cur.segments[len(cur.segments)-1]
	r, size := segment.LastRune(s.buffer, last)

	segments := make([]segment.Segment, len(cur.segments))
	copy(segments, cur.segments)
	if last.Len() == size {
		segments = segments[:len(segments)-1]
	} else {
		segments[len(segments)-1] = last.ShrinkEnd(size)
	}
	s.commit(state{segments: segments, charLen: cur.charLen - 1, byteLen: cur.byteLen - size})
	return r, true
}

// Repeat replaces the current text with n consecutive copies of itself by
// duplicating the segment slice n times; no bytes are copied.
func (s *String) Repeat(n int) {
	diag.Assertf(n >= 0, "flatrope.String.Repeat: n must be non-negative, got %d", n)
	cur := s.versions.State()
	if len(cur.segments) == 0 || n == 1 {
		s.commit(cur)
		return
	}
	segments := make([]segment.Segment, 0, len(cur.segments)*n)
	for i := 0; i < n; i++ {
		segments = append(segments, cur.segments...)
	}
	s.commit(state{segments: segments, charLen: cur.charLen * n, byteLen: cur.byteLen * n})
}

// locate finds the segment index and intra-segment rune offset containing
// character index idx. The comparison is strict so that an index sitting
// exactly on a segment boundary resolves to offset 0 of the *following*
// segment rather than the one-past-the-end offset of the preceding one —
// Remove relies on this to land inside a segment that actually has a rune
// there. idx == total char length falls through to (len(segments), 0),
// which Insert reads as "append after everything."
func locate(segments []segment.Segment, buf []byte, idx int) (segIdx, runeOffset int) {
	consumed := 0
	for i, seg := range segments {
		segRunes := seg.RuneLen(buf)
		if idx < consumed+segRunes {
			return i, idx - consumed
		}
		consumed += segRunes
	}
	return len(segments), 0
}

// InsertStr inserts s at character index i, allocating a new version even
// when s is empty. It panics if i is out of range.
func (s *String) InsertStr(i int, str string) {
	cur := s.versions.State()
	if i < 0 || i > cur.charLen {
		diag.IndexOutOfRange("flatrope.String.InsertStr", i, cur.charLen)
	}
	if str == "" {
		s.commit(cur)
		return
	}
	inserted := s.appendSegment(str)
	insertedRunes := utf8.RuneCountInString(str)

	segIdx, runeOffset := locate(cur.segments, s.buffer, i)
	segments := make([]segment.Segment, 0, len(cur.segments)+2)
	segments = append(segments, cur.segments[:segIdx]...)

	switch {
	case segIdx == len(cur.segments):
		segments = append(segments, inserted)
	case runeOffset == 0:
		segments = append(segments, inserted, cur.segments[segIdx])
	default:
		target := cur.segments[segIdx]
		left, right := target.SplitAtRune(s.buffer, runeOffset)
		segments = append(segments, left, inserted, right)
	}
	// Both non-append branches above already emit cur.segments[segIdx]
	// (whole after inserted, or split into left+right around it), so the
	// remainder starts strictly after it; in the append branch segIdx equals
	// len(cur.segments) and nothing remains, which the guard below handles.
	if segIdx < len(cur.segments) {
		segments = append(segments, cur.segments[segIdx+1:]...)
	}
	s.commit(state{segments: segments, charLen: cur.charLen + insertedRunes, byteLen: cur.byteLen + len(str)})
}

func (s *String) Insert(i int, c rune) {
	s.InsertStr(i, string(c))
}

// Remove removes and returns the rune at character index i by re-slicing
// the one segment that contains it, allocating a new version. It panics
// if i is out of range.
func (s *String) Remove(i int) rune {
	cur := s.versions.State()
	if i < 0 || i >= cur.charLen {
		diag.IndexOutOfRange("flatrope.String.Remove", i, cur.charLen)
	}
	segIdx, runeOffset := locate(cur.segments, s.buffer, i)
	target := cur.segments[segIdx]

	left, rest := target.SplitAtRune(s.buffer, runeOffset)
	removed, size := segment.FirstRune(s.buffer, rest)
	right := segment.Segment{Begin: rest.Begin + size, End: rest.End}

	segments := make([]segment.Segment, 0, len(cur.segments)+1)
	segments = append(segments, cur.segments[:segIdx]...)
	if !left.IsEmpty() {
		segments = append(segments, left)
	}
	if !right.IsEmpty() {
		segments = append(segments, right)
	}
	segments = append(segments, cur.segments[segIdx+1:]...)

	s.commit(state{segments: segments, charLen: cur.charLen - 1, byteLen: cur.byteLen - size})
	return removed
}

// Retain keeps every rune for which predicate returns true, in order,
// always allocating a new version. No bytes are copied: surviving runs
// become new segment descriptors over the same buffer ranges.
func (s *String) Retain(predicate func(rune) bool) {
	cur := s.versions.State()
	var segments []segment.Segment
	charLen, byteLen := 0, 0

	for _, seg := range cur.segments {
		if seg.IsEmpty() {
			continue
		}
		text := string(seg.Bytes(s.buffer))
		runStart := -1
		flush := func(end int) {
			if runStart < 0 {
				return
			}
			sub := segment.Segment{Begin: seg.Begin + runStart, End: seg.Begin + end}
			segments = append(segments, sub)
			byteLen += sub.Len()
			charLen += sub.RuneLen(s.buffer)
			runStart = -1
		}
		for byteOff, r := range text {
			if predicate(r) {
				if runStart < 0 {
					runStart = byteOff
				}
				continue
			}
			flush(byteOff)
		}
		flush(len(text))
	}

	s.commit(state{segments: segments, charLen: charLen, byteLen: byteLen})
}
