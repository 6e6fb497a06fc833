// Package segment provides the half-open byte-range descriptor shared by
// the rope and flat segment-list strategies: a [Begin,End) reference into
// a caller-owned append-only byte buffer, guaranteed to land on UTF-8
// scalar-value boundaries on both ends.
package segment

import (
	"unicode/utf8"

	"github.com/JarvisCraft/persistring/internal/diag"
)

// Segment is a half-open byte range [Begin, End) into a shared buffer.
// Segments are never mutated after creation; shrinking or splitting a
// segment always produces a new Segment value.
type Segment struct {
	Begin int
	End   int
}

// Empty is the canonical zero-length segment.
var Empty = Segment{}

// Of describes the bytes string s occupies once appended to a buffer whose
// length (before the append) was bufLenBefore.
func Of(bufLenBefore int, s string) Segment {
	return Segment{Begin: bufLenBefore, End: bufLenBefore + len(s)}
}

// Len reports the byte length of the segment.
func (s Segment) Len() int {
	return s.End - s.Begin
}

// IsEmpty reports whether the segment spans zero bytes.
func (s Segment) IsEmpty() bool {
	return s.Begin == s.End
}

// Bytes returns the slice of buf denoted by the segment.
func (s Segment) Bytes(buf []byte) []byte {
	return buf[s.Begin:s.End]
}

// Str returns the string denoted by the segment. buf must be the backing
// byte buffer the segment was allocated against. The bytes are copied into
// the returned string, so later changes to buf do not affect it.
func (s Segment) Str(buf []byte) string {
	return string(buf[s.Begin:s.End])
}

// RuneLen counts the Unicode scalar values covered by the segment. It walks
// the bytes once; callers on a hot path should cache the result alongside
// the segment rather than call this repeatedly.
func (s Segment) RuneLen(buf []byte) int {
	return utf8.RuneCount(buf[s.Begin:s.End])
}

// SplitAtRune splits the segment into a left and right half at the rune
// index i (0 <= i <= RuneLen), returning byte sub-segments of the same
// buffer. It panics if i is outside [0, RuneLen], which would indicate a
// defect upstream rather than a malformed caller index —
// callers are expected to have already range-checked i against RuneLen.
func (s Segment) SplitAtRune(buf []byte, i int) (left, right Segment) {
	text := buf[s.Begin:s.End]
	byteOffset := 0
	runeIndex := 0
	for byteOffset < len(text) {
		if runeIndex == i {
			break
		}
		_, size := utf8.DecodeRune(text[byteOffset:])
		diag.Assertf(size > 0, "segment.SplitAtRune: invalid UTF-8 at byte %d", s.Begin+byteOffset)
		byteOffset += size
		runeIndex++
	}
	diag.Assertf(runeIndex == i, "segment.SplitAtRune: rune index %d exceeds segment rune length %d", i, runeIndex)
	mid := s.Begin + byteOffset
	return Segment{Begin: s.Begin, End: mid}, Segment{Begin: mid, End: s.End}
}

// LastRune returns the final scalar value of the segment and its UTF-8
// byte width. It panics if the segment is empty.
func LastRune(buf []byte, s Segment) (r rune, size int) {
	diag.Assertf(!s.IsEmpty(), "segment.LastRune: segment is empty")
	r, size = utf8.DecodeLastRune(buf[s.Begin:s.End])
	diag.Assertf(r != utf8.RuneError || size != 1, "segment.LastRune: invalid UTF-8 at end of segment")
	return r, size
}

// FirstRune returns the leading scalar value of the segment and its UTF-8
// byte width. It panics if the segment is empty.
func FirstRune(buf []byte, s Segment) (r rune, size int) {
	diag.Assertf(!s.IsEmpty(), "segment.FirstRune: segment is empty")
	r, size = utf8.DecodeRune(buf[s.Begin:s.End])
	diag.Assertf(r != utf8.RuneError || size != 1, "segment.FirstRune: invalid UTF-8 at start of segment")
	return r, size
}

// ShrinkEnd returns a copy of s with its end moved back by n bytes, used
// when popping the trailing rune off a segment that still has text left.
func (s Segment) ShrinkEnd(n int) Segment {
	diag.Assertf(n <= s.Len(), "segment.ShrinkEnd: shrink %d exceeds segment length %d", n, s.Len())
	return Segment{Begin: s.Begin, End: s.End - n}
}
