package rope

import "github.com/JarvisCraft/persistring/segment"

// nodeID indexes the arena; nodeID 0 is the canonical empty leaf.
type nodeID int

// node is a tagged union: a Leaf carries a segment, an Internal carries the
// ids of its two children. Nodes are immutable once appended to the arena.
type node struct {
	leaf bool
	seg  segment.Segment // valid iff leaf

	left, right nodeID // valid iff !leaf

	charLen int // cached rune count of the subtree
	byteLen int // cached byte length of the subtree, for Builder preallocation
}

func leafNode(seg segment.Segment, charLen int) node {
	return node{leaf: true, seg: seg, charLen: charLen, byteLen: seg.Len()}
}

func internalNode(left, right nodeID, leftNode, rightNode node) node {
	return node{
		leaf:    false,
		left:    left,
		right:   right,
		charLen: leftNode.charLen + rightNode.charLen,
		byteLen: leftNode.byteLen + rightNode.byteLen,
	}
}
