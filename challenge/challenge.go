// Package challenge parses and evaluates challenge codes: targeted
// sub-goals that ask for a specific card on its foundation, or for a
// number of suits to reach a rank, instead of a full solve.
package challenge

import (
	"errors"
	"fmt"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// FullSolveCode is the code meaning "sort the whole deck".
const FullSolveCode = "00"

var ErrBadCode = errors.New("challenge: malformed challenge code")

// Challenge is a parsed challenge code. The zero value is the full
// solve.
type Challenge struct {
	code    string
	rank    card.Rank
	suit    card.Suit
	hasSuit bool
	count   int
}

// Parse accepts "00" (full solve), rank+suit ("ks" — king of spades on
// its foundation), or rank+digit ("k4" — four kings across suits).
func Parse(code string) (Challenge, error) {
	if code == "" || code == FullSolveCode {
		return Challenge{code: FullSolveCode}, nil
	}
	if len(code) != 2 {
		return Challenge{}, fmt.Errorf("%w: %q", ErrBadCode, code)
	}
	r, err := card.ParseRankChar(code[0])
	if err != nil {
		return Challenge{}, fmt.Errorf("%w: %v", ErrBadCode, err)
	}
	ch := Challenge{code: code, rank: r}
	switch c := code[1]; {
	case c >= '1' && c <= '4':
		ch.count = int(c - '0')
	default:
		s, err := card.ParseSuitChar(c)
		if err != nil {
			return Challenge{}, fmt.Errorf("%w: %v", ErrBadCode, err)
		}
		ch.suit = s
		ch.hasSuit = true
		ch.count = 1
	}
	return ch, nil
}

func (c Challenge) Code() string {
	if c.code == "" {
		return FullSolveCode
	}
	return c.code
}

// FullSolve reports whether the challenge is the plain full solve.
func (c Challenge) FullSolve() bool { return c.Code() == FullSolveCode }

// RequiredCount is how many of the target cards must reach their
// foundations.
func (c Challenge) RequiredCount() int { return c.count }

// Targets lists the cards the heuristic should cost: the single target
// for a suit challenge, or the rank's card in every suit for a count
// challenge.
func (c Challenge) Targets() []card.Card {
	if c.FullSolve() {
		return nil
	}
	if c.hasSuit {
		return []card.Card{card.New(c.suit, c.rank)}
	}
	targets := make([]card.Card, 0, card.NumSuits)
	for s := card.Suit(0); s < card.NumSuits; s++ {
		targets = append(targets, card.New(s, c.rank))
	}
	return targets
}

// Met reports whether the layout satisfies the challenge.
func (c Challenge) Met(l *game.Layout) bool {
	if c.FullSolve() {
		return l.Solved()
	}
	if c.hasSuit {
		return l.FoundationHas(card.New(c.suit, c.rank))
	}
	n := 0
	for s := card.Suit(0); s < card.NumSuits; s++ {
		if l.FoundationHeight(s) > int(c.rank) {
			n++
		}
	}
	return n >= c.count
}
