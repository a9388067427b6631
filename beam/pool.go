package beam

import (
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
)

// Pool is a freelist arena for nodes. Each worker owns one; Get and Put
// are O(1) and never block. A node handed to another worker over a work
// queue transfers ownership with it: the receiving worker's pool frees
// it into its own freelist, so pools must tolerate (and do tolerate)
// freeing nodes they did not mint. Freelist access itself is always
// single-goroutine.
type Pool struct {
	free   *Node
	minted int
	reused int
}

// Get returns a node ready to be filled in. Reused nodes still carry
// stale layout bytes; callers overwrite every field they read.
func (p *Pool) Get() *Node {
	if n := p.free; n != nil {
		p.free = n.link
		n.link = nil
		p.reused++
		return n
	}
	p.minted++
	return &Node{}
}

// NewRoot mints a node for a starting layout at g = 0.
func (p *Pool) NewRoot(l game.Layout) *Node {
	n := p.Get()
	n.layout = l
	n.g = 0
	n.trail = Trail{}
	n.lastMove = move.Move{}
	n.computeBin()
	n.hash = n.layout.Hash()
	return n
}

// Clone copies src into a fresh node from this pool. The trail buffer is
// shared; it is read-only once written.
func (p *Pool) Clone(src *Node) *Node {
	n := p.Get()
	*n = *src
	n.link = nil
	return n
}

// Put releases a node for reuse, poisoning the fields a stale reader
// could be confused by.
func (p *Pool) Put(n *Node) {
	n.trail = Trail{}
	n.hash = 0
	n.link = p.free
	p.free = n
}

// Minted is the number of nodes allocated (not reused) by this pool.
func (p *Pool) Minted() int { return p.minted }
