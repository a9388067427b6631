package deck

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

func TestDealIsConservedAndSeeded(t *testing.T) {
	is := is.New(t)
	l := Deal(42)
	total := 0
	for i := 0; i < game.NumTableaus; i++ {
		n := l.Tableau(i).Len()
		if i < 4 {
			is.Equal(n, 7)
		} else {
			is.Equal(n, 6)
		}
		total += n
	}
	is.Equal(total, 52)
	is.Equal(len(l.Reserve()), 0)
	is.Equal(l.CardsUnsorted(), 52)

	again := Deal(42)
	is.True(l.Equal(&again))
	other := Deal(43)
	is.True(!l.Equal(&other))
}

func TestEncodeParseRoundTrip(t *testing.T) {
	is := is.New(t)
	l := Deal(7)
	encoded := Encode(&l)
	cfg, err := Parse(encoded)
	is.NoErr(err)
	is.True(cfg.Layout.Equal(&l))
	is.True(cfg.Challenge.FullSolve())
	is.Equal(cfg.MoveLimit, 0)
	is.Equal(Encode(&cfg.Layout), encoded)
}

func TestParseChallengeSuffix(t *testing.T) {
	is := is.New(t)
	l := Deal(9)
	cfg, err := Parse(Encode(&l) + "$k4$90")
	is.NoErr(err)
	is.True(!cfg.Challenge.FullSolve())
	is.Equal(cfg.Challenge.Code(), "k4")
	is.Equal(cfg.MoveLimit, 90)

	cfg, err = Parse(Encode(&l) + "$00$0")
	is.NoErr(err)
	is.True(cfg.Challenge.FullSolve())
	is.Equal(cfg.MoveLimit, 0)
}

func TestParseMidGameState(t *testing.T) {
	is := is.New(t)
	// The worked example from the original deal captures: two reserve
	// cards, four foundations started, one empty column.
	in := "006d8s001h1c3d2s" +
		"i4c4dts7h7cjs" +
		"iitdkc9d9cjd8d7s6h5c" +
		"iii5dks9sqh2c7d" +
		"iv" +
		"v8hjckh2h4s3h" +
		"vikdqcjhtc9h8c" +
		"vii3c3s6sqs6c5s" +
		"viiiqd5h4hth"
	cfg, err := Parse(in)
	is.NoErr(err)
	l := &cfg.Layout
	is.Equal(len(l.Reserve()), 2)
	is.Equal(l.FoundationHeight(card.Heart), 1)
	is.Equal(l.FoundationHeight(card.Club), 1)
	is.Equal(l.FoundationHeight(card.Diamond), 3)
	is.Equal(l.FoundationHeight(card.Spade), 2)
	is.True(l.Tableau(3).Empty())
	is.Equal(l.Tableau(1).Len(), 9)
	// Re-encoding compacts the reserve into the leading slots.
	is.Equal(Encode(l), "6d8s0000"+in[8:])
}

func TestParseMalformed(t *testing.T) {
	is := is.New(t)
	cases := []string{
		"",
		"0000",
		// No tableau markers.
		strings.Repeat("0", 16),
		// Bad reserve card.
		"zz" + strings.Repeat("0", 14),
	}
	for _, in := range cases {
		_, err := Parse(in)
		is.True(err != nil)
	}

	// Challenge suffix errors.
	l := Deal(3)
	_, err := Parse(Encode(&l) + "$k4")
	is.True(err != nil)
	_, err = Parse(Encode(&l) + "$k4$xy")
	is.True(err != nil)
}

func TestParseConservationViolations(t *testing.T) {
	is := is.New(t)
	l := Deal(4)
	encoded := Encode(&l)

	// Duplicate a card: overwrite the first tableau card with the
	// second, so one card appears twice and another not at all.
	idx := strings.Index(encoded, "i") + 1
	dup := encoded[:idx] + encoded[idx+2:idx+4] + encoded[idx+2:]
	_, err := Parse(dup)
	is.True(err != nil)
	is.True(errors.Is(err, ErrConservation))

	// Foundation suit out of position.
	bad := encoded[:8] + "3c" + encoded[10:]
	_, err = Parse(bad)
	is.True(err != nil)
}

func TestParseMissingCards(t *testing.T) {
	is := is.New(t)
	// A well-formed deck string with every reserve slot, foundation and
	// tableau empty.
	in := strings.Repeat("00", 8) + "iiiiiiivvviviiviii"
	_, err := Parse(in)
	is.True(errors.Is(err, ErrConservation))
}
