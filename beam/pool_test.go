package beam

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/deck"
)

func TestPoolReuse(t *testing.T) {
	is := is.New(t)
	var p Pool

	a := p.Get()
	b := p.Get()
	is.Equal(p.Minted(), 2)

	p.Put(a)
	c := p.Get()
	is.Equal(c, a) // freelist handed the same node back
	is.Equal(p.Minted(), 2)

	p.Put(b)
	p.Put(c)
}

func TestPoolPutPoisons(t *testing.T) {
	is := is.New(t)
	var p Pool
	n := p.NewRoot(deck.Deal(5))
	n.trail = n.trail.Append(1, 4)
	p.Put(n)
	is.Equal(n.trail.n, uint32(0))
	is.Equal(n.hash, uint64(0))
}

func TestPoolCrossPoolFree(t *testing.T) {
	is := is.New(t)
	var producer, consumer Pool
	n := producer.NewRoot(deck.Deal(6))
	// Ownership transfers with the node: the consumer frees what the
	// producer minted, and reuses it afterwards.
	consumer.Put(n)
	got := consumer.Get()
	is.Equal(got, n)
}

func TestPoolClone(t *testing.T) {
	is := is.New(t)
	var p Pool
	n := p.NewRoot(deck.Deal(7))
	n.g = 3
	c := p.Clone(n)
	is.True(c != n)
	is.Equal(c.g, n.g)
	is.Equal(c.hash, n.hash)
	is.True(c.layout.Equal(&n.layout))
}
