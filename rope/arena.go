package rope

import (
	"github.com/JarvisCraft/persistring/internal/diag"
	"github.com/JarvisCraft/persistring/segment"
)

// arena is the append-only byte buffer plus append-only node store shared
// by every version of a rope String. Nothing in here is ever mutated after
// being appended; structural sharing across versions falls directly out of
// that property.
type arena struct {
	buffer []byte
	nodes  []node
}

// emptyNodeID is reserved for the canonical empty leaf; every freshly
// constructed rope starts with its root pointing here.
const emptyNodeID nodeID = 0

func newArena() *arena {
	return &arena{
		buffer: make([]byte, 0, 64),
		nodes:  []node{leafNode(segment.Empty, 0)},
	}
}

func (a *arena) at(id nodeID) node {
	diag.Assertf(id >= 0 && int(id) < len(a.nodes), "rope.arena.at: node id %d out of arena range %d", int(id), len(a.nodes))
	return a.nodes[id]
}

func (a *arena) appendBytes(s string) segment.Segment {
	seg := segment.Of(len(a.buffer), s)
	a.buffer = append(a.buffer, s...)
	return seg
}

// allocLeaf appends a new leaf node over seg and returns its id. charLen is
// the rune count of seg's bytes.
func (a *arena) allocLeaf(seg segment.Segment, charLen int) nodeID {
	a.nodes = append(a.nodes, leafNode(seg, charLen))
	return nodeID(len(a.nodes) - 1)
}

// allocInternal appends a new internal node over the given children and
// returns its id.
func (a *arena) allocInternal(left, right nodeID) nodeID {
	a.nodes = append(a.nodes, internalNode(left, right, a.at(left), a.at(right)))
	return nodeID(len(a.nodes) - 1)
}
