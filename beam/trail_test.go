package beam

import (
	"testing"

	"github.com/matryer/is"
)

func TestTrailRoundTrip(t *testing.T) {
	is := is.New(t)
	// Branching factors and chosen indices with varying bit widths,
	// including width-zero steps (single legal move).
	branchings := []int{5, 1, 17, 2, 64, 3, 1, 9}
	indices := []int{4, 0, 16, 1, 63, 2, 0, 8}

	var tr Trail
	for i := range branchings {
		tr = tr.Append(indices[i], branchings[i])
	}
	r := NewTrailReader(tr)
	for i := range branchings {
		is.Equal(r.Read(branchings[i]), indices[i])
	}
}

func TestTrailAppendDoesNotAlias(t *testing.T) {
	is := is.New(t)
	var root Trail
	root = root.Append(2, 8)

	// Two siblings extend the same parent; neither write may disturb
	// the other.
	a := root.Append(7, 8)
	b := root.Append(0, 8)

	ra := NewTrailReader(a)
	is.Equal(ra.Read(8), 2)
	is.Equal(ra.Read(8), 7)

	rb := NewTrailReader(b)
	is.Equal(rb.Read(8), 2)
	is.Equal(rb.Read(8), 0)
}

func TestIndexWidth(t *testing.T) {
	is := is.New(t)
	is.Equal(indexWidth(1), uint32(0))
	is.Equal(indexWidth(2), uint32(1))
	is.Equal(indexWidth(3), uint32(2))
	is.Equal(indexWidth(4), uint32(2))
	is.Equal(indexWidth(5), uint32(3))
	is.Equal(indexWidth(64), uint32(6))
	is.Equal(indexWidth(65), uint32(7))
}
