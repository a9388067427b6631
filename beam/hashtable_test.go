package beam

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/deck"
)

func TestHashTableAddFindRemove(t *testing.T) {
	is := is.New(t)
	ht := NewHashTable(64)
	var p Pool

	a := p.NewRoot(deck.Deal(1))
	b := p.NewRoot(deck.Deal(2))

	is.Equal(ht.Find(a), (*Node)(nil))
	ht.Add(a)
	is.Equal(ht.Find(a), a)
	is.Equal(ht.Find(b), (*Node)(nil))

	ht.Add(b)
	is.Equal(ht.Size(), 2)

	// A distinct node with an equal layout is found by fingerprint.
	c := p.NewRoot(deck.Deal(1))
	is.Equal(ht.Find(c), a)

	ht.Remove(a)
	is.Equal(ht.Find(c), (*Node)(nil))
	is.Equal(ht.Find(b), b)
	is.Equal(ht.Size(), 1)

	// Removing an absent node is a no-op.
	ht.Remove(a)
	is.Equal(ht.Size(), 1)
}

func TestHashTableSurvivesChurn(t *testing.T) {
	is := is.New(t)
	ht := NewHashTable(8)
	var p Pool

	// Far more add/remove cycles than the table has slots: tombstones
	// must not choke lookups for absent keys.
	probe := p.NewRoot(deck.Deal(999))
	for round := 0; round < 50; round++ {
		batch := make([]*Node, 8)
		for i := range batch {
			batch[i] = p.NewRoot(deck.Deal(uint64(round*8 + i)))
			ht.Add(batch[i])
		}
		is.Equal(ht.Find(probe), (*Node)(nil))
		for _, n := range batch {
			is.Equal(ht.Find(n), n)
			ht.Remove(n)
			p.Put(n)
		}
	}
	is.Equal(ht.Size(), 0)
	is.Equal(ht.Find(probe), (*Node)(nil))
}

func TestHashTableTombstoneProbing(t *testing.T) {
	is := is.New(t)
	ht := NewHashTable(8)
	var p Pool

	// Force nodes into colliding slots by pinning their hashes. Layouts
	// must still differ so Find's fingerprint compare distinguishes
	// them.
	nodes := make([]*Node, 4)
	for i := range nodes {
		nodes[i] = p.NewRoot(deck.Deal(uint64(i + 10)))
		nodes[i].hash = 0x42 // same bucket for all
		ht.Add(nodes[i])
	}
	for _, n := range nodes {
		is.Equal(ht.Find(n), n)
	}
	// Remove one from the middle of the probe chain; the rest must
	// remain reachable through the tombstone.
	ht.Remove(nodes[1])
	is.Equal(ht.Find(nodes[1]), (*Node)(nil))
	is.Equal(ht.Find(nodes[0]), nodes[0])
	is.Equal(ht.Find(nodes[2]), nodes[2])
	is.Equal(ht.Find(nodes[3]), nodes[3])
}
