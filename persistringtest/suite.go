// Package persistringtest provides a single battery of behavioral and
// versioning assertions run identically against every PersistentString
// strategy (cow, delta, rope, flatrope), so that the four implementations
// are held to the exact same contract instead of four hand-rolled,
// subtly-diverging test files.
//
// The scenario tests below are a direct port of the concrete scenarios and
// their exact sequences of operations and expected snapshots.
package persistringtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JarvisCraft/persistring"
)

// Factory constructs a fresh, empty PersistentString of the strategy under
// test.
type Factory func() persistring.PersistentString

// Run executes the full suite against the strategy produced by newString,
// as a set of named sub-tests under t.
func Run(t *testing.T, newString Factory) {
	t.Run("ReadonlyOperations", func(t *testing.T) { testReadonlyOperations(t, newString) })
	t.Run("Scenario1_PushStrAndSwitch", func(t *testing.T) { testScenario1(t, newString) })
	t.Run("Scenario2_PushCharByChar", func(t *testing.T) { testScenario2(t, newString) })
	t.Run("Scenario3_PopAndFork", func(t *testing.T) { testScenario3(t, newString) })
	t.Run("Scenario4_RepeatOnEmpty", func(t *testing.T) { testScenario4(t, newString) })
	t.Run("Scenario5_RepeatChaining", func(t *testing.T) { testScenario5(t, newString) })
	t.Run("Scenario6_Retain", func(t *testing.T) { testScenario6(t, newString) })
	t.Run("Scenario7_InsertStr", func(t *testing.T) { testScenario7(t, newString) })
	t.Run("Scenario8_InsertCharByChar", func(t *testing.T) { testScenario8(t, newString) })
	t.Run("Scenario9_VersionStrictlyIncreases", func(t *testing.T) { testScenario9(t, newString) })
	t.Run("RemoveVersioning", func(t *testing.T) { testRemoveVersioning(t, newString) })
	t.Run("SwitchToInvalidVersion", func(t *testing.T) { testSwitchToInvalidVersion(t, newString) })
}

func testReadonlyOperations(t *testing.T, newString Factory) {
	s := newString()
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, s.Len())
	require.Equal(t, "", s.Snapshot())
	require.Equal(t, persistring.Handle(0), s.Version())
	require.Equal(t, persistring.Handle(0), s.LatestVersion())
}

// testScenario1 ports scenario 1: push_str("foo")/("bar")/("baz"), then
// switch around among v0..v3 in a specific, non-monotonic order.
func testScenario1(t *testing.T, newString Factory) {
	s := newString()
	v0 := s.Version()

	s.PushStr("foo")
	v1 := s.Version()
	require.Equal(t, "foo", s.Snapshot())

	s.PushStr("bar")
	v2 := s.Version()
	require.Equal(t, "foobar", s.Snapshot())

	s.PushStr("baz")
	v3 := s.Version()
	require.Equal(t, "foobarbaz", s.Snapshot())

	s.SwitchVersion(v1)
	require.Equal(t, "foo", s.Snapshot())
	s.SwitchVersion(v3)
	require.Equal(t, "foobarbaz", s.Snapshot())
	s.SwitchVersion(v2)
	require.Equal(t, "foobar", s.Snapshot())
	s.SwitchVersion(v0)
	require.Equal(t, "", s.Snapshot())
	s.SwitchVersion(v3)
	require.Equal(t, "foobarbaz", s.Snapshot())
	s.SwitchVersion(v1)
	require.Equal(t, "foo", s.Snapshot())
}

// testScenario2 ports scenario 2: push one rune at a time to build "omagad",
// fork from "om" by pushing "s" then "k", and confirm every one of the nine
// handles still snapshots to its original text regardless of visit order.
func testScenario2(t *testing.T, newString Factory) {
	s := newString()
	v0 := s.Version()

	handles := map[string]persistring.Handle{"": v0}
	push := func(c rune, want string) {
		s.Push(c)
		handles[want] = s.Version()
		require.Equal(t, want, s.Snapshot())
	}
	push('o', "o")
	push('m', "om")
	vOm := handles["om"]
	push('a', "oma")
	push('g', "omag")
	push('a', "omaga")
	push('d', "omagad")

	s.SwitchVersion(vOm)
	require.Equal(t, "om", s.Snapshot())
	push('s', "oms")
	push('k', "omsk")

	for _, want := range []string{"", "o", "om", "oma", "omag", "omaga", "omagad", "oms", "omsk"} {
		s.SwitchVersion(handles[want])
		require.Equal(t, want, s.Snapshot())
	}
}

// testScenario3 ports scenario 3: push_str, pop, more pushes, then fork from
// v1 and pop three times down a different branch, keeping all nine handles
// addressable.
func testScenario3(t *testing.T, newString Factory) {
	s := newString()

	s.PushStr("hello")
	v1 := s.Version()
	require.Equal(t, "hello", s.Snapshot())

	r, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, 'o', r)
	v2 := s.Version()
	require.Equal(t, "hell", s.Snapshot())

	s.Push(' ')
	v3 := s.Version()
	s.PushStr("world")
	v4 := s.Version()
	require.Equal(t, "hell world", s.Snapshot())

	s.SwitchVersion(v1)
	require.Equal(t, "hello", s.Snapshot())
	s.Push(' ')
	v5 := s.Version()
	s.PushStr("world")
	v6 := s.Version()
	require.Equal(t, "hello world", s.Snapshot())

	r, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, 'd', r)
	v7 := s.Version()
	r, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, 'l', r)
	v8 := s.Version()
	r, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, 'r', r)
	v9 := s.Version()
	require.Equal(t, "hello wo", s.Snapshot())

	for want, h := range map[string]persistring.Handle{
		"hello": v1, "hell": v2, "hell ": v3, "hell world": v4,
		"hello ": v5, "hello world": v6, "hello worl": v7,
		"hello wor": v8, "hello wo": v9,
	} {
		s.SwitchVersion(h)
		require.Equal(t, want, s.Snapshot())
	}
}

// testScenario4 ports scenario 4: Repeat on an empty string still allocates
// a new, distinct handle.
func testScenario4(t *testing.T, newString Factory) {
	s := newString()
	v0 := s.Version()

	s.Repeat(5)
	require.NotEqual(t, v0, s.Version())
	require.Equal(t, "", s.Snapshot())
}

// testScenario5 ports scenario 5: chained Repeat calls, a Push in between,
// and switching back to an earlier version before repeating again.
func testScenario5(t *testing.T, newString Factory) {
	s := newString()

	s.Push('x')
	s.Repeat(3)
	require.Equal(t, "xxx", s.Snapshot())

	s.Repeat(2)
	require.Equal(t, "xxxxxx", s.Snapshot())
	vSixX := s.Version()

	s.Push('y')
	require.Equal(t, "xxxxxxy", s.Snapshot())

	s.Repeat(2)
	require.Equal(t, "xxxxxxyxxxxxxy", s.Snapshot())

	s.SwitchVersion(vSixX)
	require.Equal(t, "xxxxxx", s.Snapshot())
	s.Repeat(3)
	require.Equal(t, "xxxxxxxxxxxxxxxxxx", s.Snapshot())
}

// testScenario6 ports scenario 6: a sequence of Retain calls interleaved
// with PushStr, including forking back to an earlier retained version.
func testScenario6(t *testing.T, newString Factory) {
	s := newString()

	s.PushStr("hi there")
	s.Retain(func(r rune) bool { return r == 'e' })
	require.Equal(t, "ee", s.Snapshot())
	vEE := s.Version()

	s.PushStr("gogo")
	require.Equal(t, "eegogo", s.Snapshot())

	s.Retain(func(rune) bool { return false })
	require.Equal(t, "", s.Snapshot())

	s.PushStr("okay bye")
	s.Retain(func(r rune) bool { return r != 'k' && r != 'a' && r != 'b' })
	require.Equal(t, "oy ye", s.Snapshot())

	s.SwitchVersion(vEE)
	require.Equal(t, "eegogo", s.Snapshot())
	before := s.Version()
	s.Retain(func(rune) bool { return true })
	require.NotEqual(t, before, s.Version())
	require.Equal(t, "eegogo", s.Snapshot())
}

// testScenario7 ports scenario 7: chained InsertStr calls at various
// positions, including an empty insertion that still forks a new handle,
// and forking from an earlier version to insert down a different branch.
func testScenario7(t *testing.T, newString Factory) {
	s := newString()

	s.InsertStr(0, "foo")
	require.Equal(t, "foo", s.Snapshot())
	s.InsertStr(2, "bar")
	require.Equal(t, "fobaro", s.Snapshot())
	vFobaro := s.Version()
	s.InsertStr(6, "baz")
	require.Equal(t, "fobarobaz", s.Snapshot())
	s.InsertStr(0, "qux")
	require.Equal(t, "quxfobarobaz", s.Snapshot())

	s.SwitchVersion(vFobaro)
	require.Equal(t, "fobaro", s.Snapshot())
	s.InsertStr(4, "wow")
	require.Equal(t, "fobawowro", s.Snapshot())
	before := s.Version()
	s.InsertStr(7, "")
	require.NotEqual(t, before, s.Version())
	require.Equal(t, "fobawowro", s.Snapshot())
	s.InsertStr(7, "<*>")
	require.Equal(t, "fobawow<*>ro", s.Snapshot())
}

// testScenario8 ports the added scenario 8: single-rune Insert exercised
// distinctly from InsertStr, including forking from a historical version
// after an earlier fork has already happened.
func testScenario8(t *testing.T, newString Factory) {
	s := newString()

	s.Insert(0, 'a')
	require.Equal(t, "a", s.Snapshot())
	s.Insert(1, 'b')
	require.Equal(t, "ab", s.Snapshot())
	s.Insert(2, 'c')
	require.Equal(t, "abc", s.Snapshot())
	vAbc := s.Version()
	s.Insert(1, 'd')
	require.Equal(t, "adbc", s.Snapshot())
	s.Insert(0, '_')
	require.Equal(t, "_adbc", s.Snapshot())

	s.SwitchVersion(vAbc)
	require.Equal(t, "abc", s.Snapshot())
	s.Insert(3, 'x')
	require.Equal(t, "abcx", s.Snapshot())
	s.Insert(0, '*')
	require.Equal(t, "*abcx", s.Snapshot())
}

// testScenario9 ports the added scenario 9: after every mutation the
// freshly observed version handle is distinct from every previously
// observed handle in the run and greater than the one observed just before.
func testScenario9(t *testing.T, newString Factory) {
	s := newString()
	seen := map[persistring.Handle]bool{s.Version(): true}
	prev := s.Version()

	mutations := []func(){
		func() { s.PushStr("x") },
		func() { s.Push('y') },
		func() { s.PushStr("") },
		func() { s.Repeat(1) },
		func() { s.Insert(0, 'z') },
		func() { s.InsertStr(0, "") },
		func() { s.Retain(func(rune) bool { return true }) },
		func() { s.Remove(0) },
		func() { s.Pop() },
	}
	for _, mutate := range mutations {
		mutate()
		h := s.Version()
		require.False(t, seen[h], "handle %v observed twice", h)
		require.Greater(t, int(h), int(prev), "handle %v does not follow %v", h, prev)
		seen[h] = true
		prev = h
	}
}

func testRemoveVersioning(t *testing.T, newString Factory) {
	s := newString()
	s.PushStr("abc")
	v1 := s.Version()

	removed := s.Remove(1)
	v2 := s.Version()
	require.Equal(t, 'b', removed)
	require.NotEqual(t, v1, v2)
	require.Equal(t, "ac", s.Snapshot())

	removed = s.Remove(0)
	require.Equal(t, 'a', removed)
	require.Equal(t, "c", s.Snapshot())

	removed = s.Remove(0)
	require.Equal(t, 'c', removed)
	require.Equal(t, "", s.Snapshot())

	s.SwitchVersion(v1)
	require.Equal(t, "abc", s.Snapshot())
	s.SwitchVersion(v2)
	require.Equal(t, "ac", s.Snapshot())
}

func testSwitchToInvalidVersion(t *testing.T, newString Factory) {
	s := newString()
	s.PushStr("abc")

	err := s.TrySwitchVersion(s.LatestVersion() + 1)
	require.Error(t, err)
	require.ErrorIs(t, err, persistring.ErrInvalidVersion)

	err = s.TrySwitchVersion(-1)
	require.Error(t, err)
	require.ErrorIs(t, err, persistring.ErrInvalidVersion)

	require.Panics(t, func() { s.SwitchVersion(s.LatestVersion() + 1) })
}
