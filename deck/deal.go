package deck

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// Deal produces a fresh deal for the given seed: a seeded shuffle of
// the full deck laid out round-robin across the eight columns, so
// columns 0..3 hold seven cards and 4..7 hold six. The same seed always
// yields the same deal.
func Deal(seed uint64) game.Layout {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	rng := frand.NewCustom(key[:], 1024, 12)

	cards := make([]card.Card, card.NumCards)
	for i := range cards {
		cards[i] = card.Card(i)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	tableaus := make([][]card.Card, game.NumTableaus)
	for i, c := range cards {
		col := i % game.NumTableaus
		tableaus[col] = append(tableaus[col], c)
	}
	var l game.Layout
	l.SetState(nil, [card.NumSuits]uint8{}, tableaus)
	return l
}
