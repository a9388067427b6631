package beam

import (
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
)

// Node is a search state: a layout plus the metadata the beam needs to
// order, dedupe, partition, and replay it. Nodes are minted and freed
// through a Pool; the link field threads them through exactly one
// container at a time (a bucket bin or a pool freelist).
type Node struct {
	layout   game.Layout
	g        uint16
	bin      int32
	hash     uint64
	lastMove move.Move
	trail    Trail
	link     *Node
}

// MovesPerformed is the g-cost: moves taken from the root.
func (n *Node) MovesPerformed() int { return int(n.g) }

// Bin is the priority key: g plus the admissible remaining-move bound
// (one move per unsorted card). Lower is better.
func (n *Node) Bin() int { return int(n.bin) }

// MinTotalMoves is the same value as Bin.
func (n *Node) MinTotalMoves() int { return int(n.bin) }

func (n *Node) Hash() uint64 { return n.hash }

func (n *Node) Layout() *game.Layout { return &n.layout }

func (n *Node) LastMove() move.Move { return n.lastMove }

func (n *Node) computeBin() {
	n.bin = int32(int(n.g) + n.layout.CardsUnsorted())
}

// Expand mints one child per legal move, in canonical order, appending
// to out. Children carry g+1, the extended trail, and a freshly
// computed bin and hash.
func (n *Node) Expand(p *Pool, moveBuf []move.Move, out []*Node) ([]*Node, []move.Move) {
	moves := movegen.Gen(&n.layout, moveBuf[:0])
	for i, m := range moves {
		c := p.Get()
		c.layout = n.layout
		c.layout.Apply(m)
		c.g = n.g + 1
		c.trail = n.trail.Append(i, len(moves))
		c.lastMove = m
		c.computeBin()
		c.hash = c.layout.Hash()
		out = append(out, c)
	}
	return out, moves
}
