// Package game implements the Freecell layout: eight tableau columns,
// four reserve slots, and four foundations, plus the legality rules and
// the canonical fingerprint the search dedupes on.
package game

import (
	"sort"

	"github.com/cespare/xxhash"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/move"
)

const (
	NumTableaus  = 8
	ReserveSlots = 4
	// MaxColumnLen bounds a tableau column: at most seven dealt cards
	// with a king on top, plus the twelve cards that can legally land
	// on it.
	MaxColumnLen = 20
)

// Column is one tableau column, bottom to top.
type Column struct {
	cards [MaxColumnLen]card.Card
	n     uint8
}

func (c *Column) Len() int           { return int(c.n) }
func (c *Column) Empty() bool        { return c.n == 0 }
func (c *Column) At(i int) card.Card { return c.cards[i] }

// Top returns the top card. Callers must check Empty first.
func (c *Column) Top() card.Card { return c.cards[c.n-1] }

func (c *Column) push(cd card.Card) {
	c.cards[c.n] = cd
	c.n++
}

func (c *Column) pop() card.Card {
	c.n--
	return c.cards[c.n]
}

// RunLength is the length of the maximal sortable run on top: the longest
// suffix that descends by one rank with alternating colors.
func (c *Column) RunLength() int {
	if c.n == 0 {
		return 0
	}
	k := 1
	for k < int(c.n) {
		upper := c.cards[int(c.n)-1-k]
		lower := c.cards[int(c.n)-k]
		if upper.Rank() != lower.Rank()+1 || upper.SameColor(lower) {
			break
		}
		k++
	}
	return k
}

// Layout is the full game state. It is a value type: copying the struct
// copies the state, so search code clones by assignment and never shares
// mutable state.
type Layout struct {
	tableaus   [NumTableaus]Column
	reserve    [ReserveSlots]card.Card
	nReserve   uint8
	foundation [card.NumSuits]uint8
}

func (l *Layout) Tableau(i int) *Column { return &l.tableaus[i] }

// Reserve returns the occupied reserve slots in slot order.
func (l *Layout) Reserve() []card.Card { return l.reserve[:l.nReserve] }

// FoundationHeight is the number of cards of suit s already on its
// foundation: cards ace..height-1 have been placed.
func (l *Layout) FoundationHeight(s card.Suit) int { return int(l.foundation[s]) }

// FoundationHas reports whether c has reached its foundation.
func (l *Layout) FoundationHas(c card.Card) bool {
	return l.foundation[c.Suit()] > uint8(c.Rank())
}

func (l *Layout) FreeReserve() int { return ReserveSlots - int(l.nReserve) }

func (l *Layout) EmptyTableaus() int {
	n := 0
	for i := range l.tableaus {
		if l.tableaus[i].Empty() {
			n++
		}
	}
	return n
}

// MaxRun is the supermove capacity: (1 + free reserve slots) doubled for
// every empty column, excluding the destination if it is itself empty.
func (l *Layout) MaxRun(emptyExclDest int) int {
	return (1 + l.FreeReserve()) << emptyExclDest
}

// CardsUnsorted counts the cards not yet on a foundation.
func (l *Layout) CardsUnsorted() int {
	n := card.NumCards
	for _, h := range l.foundation {
		n -= int(h)
	}
	return n
}

func (l *Layout) Solved() bool { return l.CardsUnsorted() == 0 }

// CanPlayToFoundation reports whether c is immediately playable to its
// foundation.
func (l *Layout) CanPlayToFoundation(c card.Card) bool {
	return l.foundation[c.Suit()] == uint8(c.Rank())
}

// CanAutoPlay reports whether c is playable to its foundation and safe
// to play automatically: both opposite-color foundations have reached at
// least c's rank, so no tableau card can still need c.
func (l *Layout) CanAutoPlay(c card.Card) bool {
	if !l.CanPlayToFoundation(c) {
		return false
	}
	r := uint8(c.Rank())
	if c.Black() {
		return l.foundation[card.Diamond] >= r && l.foundation[card.Heart] >= r
	}
	return l.foundation[card.Club] >= r && l.foundation[card.Spade] >= r
}

// SetState loads a layout from its parts. Reserve cards are stored in
// the given slot order; foundation heights are taken as-is. Validation
// (conservation, ranges) belongs to the deck package at the I/O
// boundary.
func (l *Layout) SetState(reserve []card.Card, foundation [card.NumSuits]uint8, tableaus [][]card.Card) {
	*l = Layout{}
	for _, c := range reserve {
		l.reserve[l.nReserve] = c
		l.nReserve++
	}
	l.foundation = foundation
	for i, col := range tableaus {
		for _, c := range col {
			l.tableaus[i].push(c)
		}
	}
}

// Apply mutates the layout by one move. The move must be legal for the
// current state; search code only applies moves produced by movegen.
func (l *Layout) Apply(m move.Move) {
	switch m.Kind {
	case move.TableauToFoundation:
		c := l.tableaus[m.From].pop()
		l.foundation[c.Suit()]++
	case move.ReserveToFoundation:
		c := l.removeReserve(int(m.From))
		l.foundation[c.Suit()]++
	case move.TableauToTableau:
		src := &l.tableaus[m.From]
		dst := &l.tableaus[m.To]
		start := src.Len() - int(m.Count)
		for i := start; i < src.Len(); i++ {
			dst.push(src.cards[i])
		}
		src.n -= m.Count
	case move.TableauToReserve:
		c := l.tableaus[m.From].pop()
		l.reserve[l.nReserve] = c
		l.nReserve++
	case move.ReserveToTableau:
		c := l.removeReserve(int(m.From))
		l.tableaus[m.To].push(c)
	}
}

func (l *Layout) removeReserve(slot int) card.Card {
	c := l.reserve[slot]
	copy(l.reserve[slot:], l.reserve[slot+1:l.nReserve])
	l.nReserve--
	return c
}

// ReserveSlotOf finds the slot holding c, or -1.
func (l *Layout) ReserveSlotOf(c card.Card) int {
	for i := 0; i < int(l.nReserve); i++ {
		if l.reserve[i] == c {
			return i
		}
	}
	return -1
}

const fingerprintDelim = 0xfe

// Fingerprint appends the canonical serialization to buf and returns it:
// foundation heights in suit order, the reserve sorted, then each
// tableau bottom to top behind a delimiter. Two layouts are equivalent
// iff their fingerprints match.
func (l *Layout) Fingerprint(buf []byte) []byte {
	for _, h := range l.foundation {
		buf = append(buf, h)
	}
	var res [ReserveSlots]byte
	for i := 0; i < int(l.nReserve); i++ {
		res[i] = byte(l.reserve[i])
	}
	sorted := res[:l.nReserve]
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	buf = append(buf, sorted...)
	for i := range l.tableaus {
		buf = append(buf, fingerprintDelim)
		t := &l.tableaus[i]
		for j := 0; j < t.Len(); j++ {
			buf = append(buf, byte(t.cards[j]))
		}
	}
	return buf
}

// Hash is the stable 64-bit hash of the fingerprint. It is what the
// transposition tables key on and what partitions nodes across workers,
// so it must be identical across workers and runs.
func (l *Layout) Hash() uint64 {
	var buf [4 + ReserveSlots + NumTableaus*(MaxColumnLen+1)]byte
	return xxhash.Sum64(l.Fingerprint(buf[:0]))
}

// Equal reports fingerprint equality.
func (l *Layout) Equal(o *Layout) bool {
	var a, b [4 + ReserveSlots + NumTableaus*(MaxColumnLen+1)]byte
	fa := l.Fingerprint(a[:0])
	fb := o.Fingerprint(b[:0])
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i] != fb[i] {
			return false
		}
	}
	return true
}
