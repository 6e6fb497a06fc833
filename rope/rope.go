// Package rope implements the rope/segment PersistentString strategy: an
// append-only byte buffer plus an append-only arena of immutable nodes
// (leaf = byte segment, internal = left/right child ids). A mutation
// appends new nodes and at most one new byte segment, and allocates a new
// version pointing at the resulting root — every subtree untouched by the
// mutation is shared, byte-for-byte and node-for-node, with the prior
// version.
//
// This is the dominant strategy in the module: O(1) version switching,
// O(bytes appended) write cost for Push/PushStr, and structural sharing
// that makes history effectively free in space. The rope is built greedily
// (no rebalancing) per the module's non-goals; Repeat(n) for large n
// produces an O(n)-deep left-leaning spine by design.
//
// Not safe for concurrent mutation from multiple goroutines.
package rope

import (
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/JarvisCraft/persistring"
	"github.com/JarvisCraft/persistring/internal/diag"
	"github.com/JarvisCraft/persistring/internal/snapcache"
	"github.com/JarvisCraft/persistring/segment"
	"github.com/JarvisCraft/persistring/version"
)

var nextID uint64

func allocID() uintptr {
	return uintptr(atomic.AddUint64(&nextID, 1))
}

// String is the rope/segment PersistentString.
type String struct {
	id       uintptr
	arena    *arena
	versions *version.Registry[nodeID]
	cache    *snapcache.Cache
}

var _ persistring.PersistentString = (*String)(nil)

// New returns a String at version 0 (empty), with snapshot memoization
// enabled for multi-leaf versions.
func New() *String {
	return &String{
		id:       allocID(),
		arena:    newArena(),
		versions: version.New(emptyNodeID),
		cache:    snapcache.New(256),
	}
}

func (s *String) Version() persistring.Handle       { return s.versions.Current() }
func (s *String) LatestVersion() persistring.Handle { return s.versions.Latest() }

func (s *String) TrySwitchVersion(v persistring.Handle) error {
	return s.versions.Switch(v)
}

func (s *String) SwitchVersion(v persistring.Handle) {
	persistring.SwitchVersion(s, v)
}

func (s *String) root() nodeID {
	return s.versions.State()
}

func (s *String) commit(newRoot nodeID) {
	h := s.versions.Allocate(newRoot)
	s.versions.SetCurrent(h)
}

// Snapshot returns the current version's text. A single-leaf root is
// rendered directly off the shared buffer; a multi-leaf root is assembled
// by in-order traversal and memoized per version handle.
func (s *String) Snapshot() string {
	root := s.root()
	n := s.arena.at(root)
	if n.leaf {
		return n.seg.Str(s.arena.buffer)
	}
	if cached, ok := s.cache.Get(s.id, s.versions.Current()); ok {
		return cached
	}
	var b strings.Builder
	b.Grow(n.byteLen)
	s.writeInOrder(&b, root)
	text := b.String()
	s.cache.Put(s.id, s.versions.Current(), text)
	return text
}

func (s *String) writeInOrder(b *strings.Builder, id nodeID) {
	n := s.arena.at(id)
	if n.leaf {
		b.Write(n.seg.Bytes(s.arena.buffer))
		return
	}
	s.writeInOrder(b, n.left)
	s.writeInOrder(b, n.right)
}

func (s *String) IsEmpty() bool { return s.arena.at(s.root()).byteLen == 0 }
func (s *String) Len() int      { return s.arena.at(s.root()).byteLen }
func (s *String) charLen() int  { return s.arena.at(s.root()).charLen }

func (s *String) Push(c rune) {
	s.PushStr(string(c))
}

func (s *String) PushStr(str string) {
	root := s.root()
	if str == "" {
		s.commit(root)
		return
	}
	seg := s.arena.appendBytes(str)
	leaf := s.arena.allocLeaf(seg, utf8.RuneCountInString(str))
	if root == emptyNodeID {
		s.commit(leaf)
		return
	}
	s.commit(s.arena.allocInternal(root, leaf))
}

// Pop removes and returns the last rune. On an already-empty version it
// elides the allocation entirely (no new version is created), matching the
// teacher rope's early-return shape.
func (s *String) Pop() (rune, bool) {
	root := s.root()
	if s.arena.at(root).charLen == 0 {
		return 0, false
	}
	newRoot, popped := s.popRecursive(root)
	s.commit(newRoot)
	return popped, true
}

func (s *String) popRecursive(id nodeID) (nodeID, rune) {
	n := s.arena.at(id)
	if n.leaf {
		r, size := segment.LastRune(s.arena.buffer, n.seg)
		if n.seg.Len() == size {
			return emptyNodeID, r
		}
		return s.arena.allocLeaf(n.seg.ShrinkEnd(size), n.charLen-1), r
	}
	diag.Assertf(n.left != emptyNodeID && n.right != emptyNodeID, "rope.popRecursive: children must not be the canonical empty node")
	newRight, popped := s.popRecursive(n.right)
	if newRight == emptyNodeID {
		return n.left, popped
	}
	return s.arena.allocInternal(n.left, newRight), popped
}

// Repeat replaces the current text with n consecutive copies of itself. A
// new version is always allocated, even for n == 1 or an empty root.
func (s *String) Repeat(n int) {
	diag.Assertf(n >= 0, "rope.String.Repeat: n must be non-negative, got %d", n)
	root := s.root()
	if root == emptyNodeID {
		s.commit(emptyNodeID)
		return
	}
	var newRoot nodeID
	switch n {
	case 0:
		newRoot = emptyNodeID
	case 1:
		newRoot = root
	case 2:
		newRoot = s.arena.allocInternal(root, root)
	default:
		top := root
		for i := 2; i <= n; i++ {
			top = s.arena.allocInternal(top, root)
		}
		newRoot = top
	}
	s.commit(newRoot)
}

// InsertStr inserts s at character index i, allocating a new version even
// when s is empty. It panics if i is out of range.
func (s *String) InsertStr(i int, str string) {
	root := s.root()
	length := s.arena.at(root).charLen
	if i < 0 || i > length {
		diag.IndexOutOfRange("rope.String.InsertStr", i, length)
	}
	if str == "" {
		s.commit(root)
		return
	}
	seg := s.arena.appendBytes(str)
	if length == 0 {
		s.commit(s.arena.allocLeaf(seg, utf8.RuneCountInString(str)))
		return
	}
	s.commit(s.insertRecursive(root, seg, utf8.RuneCountInString(str), i))
}

func (s *String) Insert(i int, c rune) {
	s.InsertStr(i, string(c))
}

// insertRecursive descends to the leaf covering character index idx and
// splices insSeg (carrying insCharLen runes) in at that position.
func (s *String) insertRecursive(id nodeID, insSeg segment.Segment, insCharLen, idx int) nodeID {
	n := s.arena.at(id)
	if n.leaf {
		inserted := s.arena.allocLeaf(insSeg, insCharLen)
		switch {
		case idx == 0:
			return s.arena.allocInternal(inserted, id)
		case idx == n.charLen:
			return s.arena.allocInternal(id, inserted)
		default:
			left, right := n.seg.SplitAtRune(s.arena.buffer, idx)
			leftID := s.arena.allocLeaf(left, idx)
			rightID := s.arena.allocLeaf(right, n.charLen-idx)
			leftPair := s.arena.allocInternal(leftID, inserted)
			return s.arena.allocInternal(leftPair, rightID)
		}
	}
	leftLen := s.arena.at(n.left).charLen
	if idx <= leftLen {
		newLeft := s.insertRecursive(n.left, insSeg, insCharLen, idx)
		return s.arena.allocInternal(newLeft, n.right)
	}
	newRight := s.insertRecursive(n.right, insSeg, insCharLen, idx-leftLen)
	return s.arena.allocInternal(n.left, newRight)
}

// Remove removes and returns the rune at character index i, allocating a
// new version. It panics if i is out of range.
func (s *String) Remove(i int) rune {
	root := s.root()
	length := s.arena.at(root).charLen
	if i < 0 || i >= length {
		diag.IndexOutOfRange("rope.String.Remove", i, length)
	}
	newRoot, removed := s.removeRecursive(root, i)
	s.commit(newRoot)
	return removed
}

func (s *String) removeRecursive(id nodeID, idx int) (nodeID, rune) {
	n := s.arena.at(id)
	if n.leaf {
		left, rest := n.seg.SplitAtRune(s.arena.buffer, idx)
		removed, size := segment.FirstRune(s.arena.buffer, rest)
		right := segment.Segment{Begin: rest.Begin + size, End: rest.End}

		switch {
		case left.IsEmpty() && right.IsEmpty():
			return emptyNodeID, removed
		case left.IsEmpty():
			return s.arena.allocLeaf(right, n.charLen-idx-1), removed
		case right.IsEmpty():
			return s.arena.allocLeaf(left, idx), removed
		default:
			leftID := s.arena.allocLeaf(left, idx)
			rightID := s.arena.allocLeaf(right, n.charLen-idx-1)
			return s.arena.allocInternal(leftID, rightID), removed
		}
	}
	leftLen := s.arena.at(n.left).charLen
	if idx < leftLen {
		newLeft, removed := s.removeRecursive(n.left, idx)
		if newLeft == emptyNodeID {
			return n.right, removed
		}
		return s.arena.allocInternal(newLeft, n.right), removed
	}
	newRight, removed := s.removeRecursive(n.right, idx-leftLen)
	if newRight == emptyNodeID {
		return n.left, removed
	}
	return s.arena.allocInternal(n.left, newRight), removed
}

// Retain keeps every rune for which predicate returns true, in order,
// always allocating a new version. No bytes are copied: surviving runs
// become new segment descriptors over the same buffer ranges.
func (s *String) Retain(predicate func(rune) bool) {
	var survivors []segment.Segment
	s.collectSurvivors(s.root(), predicate, &survivors)

	if len(survivors) == 0 {
		s.commit(emptyNodeID)
		return
	}
	top := s.arena.allocLeaf(survivors[0], utf8.RuneCount(survivors[0].Bytes(s.arena.buffer)))
	for _, seg := range survivors[1:] {
		leaf := s.arena.allocLeaf(seg, utf8.RuneCount(seg.Bytes(s.arena.buffer)))
		top = s.arena.allocInternal(top, leaf)
	}
	s.commit(top)
}

func (s *String) collectSurvivors(id nodeID, predicate func(rune) bool, out *[]segment.Segment) {
	n := s.arena.at(id)
	if !n.leaf {
		s.collectSurvivors(n.left, predicate, out)
		s.collectSurvivors(n.right, predicate, out)
		return
	}
	if n.seg.IsEmpty() {
		return
	}
	leafText := string(n.seg.Bytes(s.arena.buffer))
	runStart := -1
	for byteOff, r := range leafText {
		if predicate(r) {
			if runStart < 0 {
				runStart = byteOff
			}
			continue
		}
		if runStart >= 0 {
			*out = append(*out, segment.Segment{Begin: n.seg.Begin + runStart, End: n.seg.Begin + byteOff})
			runStart = -1
		}
	}
	if runStart >= 0 {
		*out = append(*out, segment.Segment{Begin: n.seg.Begin + runStart, End: n.seg.End})
	}
}
