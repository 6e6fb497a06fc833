package segment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JarvisCraft/persistring/segment"
)

func TestOfAndBytes(t *testing.T) {
	buf := []byte("hello world")
	seg := segment.Of(0, "hello")
	require.Equal(t, "hello", seg.Str(buf))
	require.Equal(t, 5, seg.Len())

	seg2 := segment.Of(5, " world")
	require.Equal(t, " world", seg2.Str(buf))
}

func TestSplitAtRuneASCII(t *testing.T) {
	buf := []byte("abcdef")
	seg := segment.Segment{Begin: 0, End: len(buf)}

	left, right := seg.SplitAtRune(buf, 3)
	require.Equal(t, "abc", left.Str(buf))
	require.Equal(t, "def", right.Str(buf))
}

func TestSplitAtRuneMultibyte(t *testing.T) {
	text := "aéb中c" // a,é,b,中,c — mixed 1/2/3-byte runes
	buf := []byte(text)
	seg := segment.Segment{Begin: 0, End: len(buf)}

	for i, want := range []string{"", "a", "aé", "aéb", "aéb中", text} {
		left, right := seg.SplitAtRune(buf, i)
		require.Equal(t, want, left.Str(buf), "left at rune %d", i)
		require.Equal(t, text[len(left.Str(buf)):], right.Str(buf), "right at rune %d", i)
	}
}

func TestLastRuneAndShrinkEnd(t *testing.T) {
	buf := []byte("hi中")
	seg := segment.Segment{Begin: 0, End: len(buf)}

	r, size := segment.LastRune(buf, seg)
	require.Equal(t, '中', r)
	require.Equal(t, 3, size)

	shrunk := seg.ShrinkEnd(size)
	require.Equal(t, "hi", shrunk.Str(buf))
}

func TestFirstRune(t *testing.T) {
	buf := []byte("中ab")
	seg := segment.Segment{Begin: 0, End: len(buf)}

	r, size := segment.FirstRune(buf, seg)
	require.Equal(t, '中', r)
	require.Equal(t, 3, size)
}

func TestEmptySegment(t *testing.T) {
	require.True(t, segment.Empty.IsEmpty())
	require.Equal(t, 0, segment.Empty.Len())
}
