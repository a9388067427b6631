package movegen_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/deck"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
)

func cards(t *testing.T, codes ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, len(codes))
	for _, code := range codes {
		c, err := card.Parse(code)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, c)
	}
	return out
}

func TestCanonicalOrder(t *testing.T) {
	is := is.New(t)
	var l game.Layout
	// Reserve: ace of diamonds (playable), 4h. Foundations empty.
	// Columns: [kc 1c] [2h] [] ...
	l.SetState(cards(t, "1d", "4h"), [card.NumSuits]uint8{}, [][]card.Card{
		cards(t, "kc", "1c"),
		cards(t, "2h"),
	})
	moves := movegen.Gen(&l, nil)
	is.True(len(moves) > 0)

	// Kind order must be non-decreasing through the sequence.
	for i := 1; i < len(moves); i++ {
		is.True(moves[i-1].Kind <= moves[i].Kind)
	}
	// The very first move is the first tableau-to-foundation column.
	is.Equal(moves[0].Encode(), "1c_0_F")
	// Reserve-to-foundation follows.
	is.Equal(moves[1].Encode(), "1d_R_F")
}

func TestDeterminism(t *testing.T) {
	is := is.New(t)
	l := deck.Deal(11)
	a := movegen.Gen(&l, nil)
	b := movegen.Gen(&l, nil)
	is.Equal(len(a), len(b))
	for i := range a {
		is.Equal(a[i], b[i])
	}

	// A copied layout generates the identical sequence.
	l2 := l
	c := movegen.Gen(&l2, nil)
	is.Equal(len(a), len(c))
	for i := range a {
		is.Equal(a[i], c[i])
	}
}

func TestEmptyColumnTargetsLongestFirst(t *testing.T) {
	is := is.New(t)
	var l game.Layout
	l.SetState(nil, [card.NumSuits]uint8{}, [][]card.Card{
		cards(t, "8s", "7h", "6c"),
		cards(t, "ts"),
		{},
	})
	moves := movegen.Gen(&l, nil)
	// Collect tableau-to-tableau moves from column 0 to the empty
	// column 2: lengths must descend.
	var lengths []int
	for _, m := range moves {
		if m.Kind == move.TableauToTableau && m.From == 0 && m.To == 2 {
			lengths = append(lengths, int(m.Count))
		}
	}
	is.Equal(lengths, []int{3, 2, 1})
}

func TestFindDecoded(t *testing.T) {
	is := is.New(t)
	var l game.Layout
	l.SetState(cards(t, "9d"), [card.NumSuits]uint8{}, [][]card.Card{
		cards(t, "8s", "7h", "6c"),
		cards(t, "ts"),
	})
	decoded, err := move.Decode("8s#3_0_~1~")
	is.NoErr(err)
	m, ok := movegen.FindDecoded(&l, decoded[0])
	is.True(ok)
	is.Equal(m.Kind, move.TableauToTableau)
	is.Equal(int(m.Count), 3)

	// A step that references an absent card does not resolve.
	decoded, err = move.Decode("2c_0_F")
	is.NoErr(err)
	_, ok = movegen.FindDecoded(&l, decoded[0])
	is.True(!ok)
}
