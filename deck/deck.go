// Package deck parses and formats the external deck-configuration
// string. This is the I/O boundary: everything is validated here, fully,
// before any search starts. The external format orders foundations
// H, C, D, S; the internal suit order stays free.
package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/challenge"
	"github.com/domino14/freecell/game"
)

var (
	ErrMalformed    = errors.New("deck: malformed deck string")
	ErrConservation = errors.New("deck: deck is not a permutation of 52 cards")
)

// foundationOrder is the external foundation order, an I/O-boundary
// contract independent of the internal suit enum.
var foundationOrder = [card.NumSuits]card.Suit{card.Heart, card.Club, card.Diamond, card.Spade}

var romanMarkers = [game.NumTableaus]string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii"}

// Config is a fully parsed and validated deck configuration.
type Config struct {
	Layout    game.Layout
	Challenge challenge.Challenge
	MoveLimit int
}

// Parse decodes reserve, foundations, tableaus, and the optional
// "$challenge$limit" suffix, and verifies full 52-card conservation.
func Parse(input string) (Config, error) {
	var cfg Config
	deckPart := input
	if i := strings.IndexByte(input, '$'); i >= 0 {
		rest := input[i+1:]
		j := strings.IndexByte(rest, '$')
		if j < 0 {
			return Config{}, fmt.Errorf("%w: unterminated challenge suffix", ErrMalformed)
		}
		ch, err := challenge.Parse(rest[:j])
		if err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		limit, err := strconv.Atoi(rest[j+1:])
		if err != nil || limit < 0 {
			return Config{}, fmt.Errorf("%w: bad move limit %q", ErrMalformed, rest[j+1:])
		}
		cfg.Challenge = ch
		cfg.MoveLimit = limit
		deckPart = input[:i]
	} else {
		cfg.Challenge, _ = challenge.Parse(challenge.FullSolveCode)
	}

	if len(deckPart) < 16 {
		return Config{}, fmt.Errorf("%w: shorter than reserve and foundation sections", ErrMalformed)
	}

	var reserve []card.Card
	for i := 0; i < game.ReserveSlots; i++ {
		code := deckPart[i*2 : i*2+2]
		if code == "00" {
			continue
		}
		c, err := card.Parse(code)
		if err != nil {
			return Config{}, fmt.Errorf("%w: reserve slot %d: %v", ErrMalformed, i, err)
		}
		reserve = append(reserve, c)
	}

	var foundation [card.NumSuits]uint8
	for i, suit := range foundationOrder {
		code := deckPart[8+i*2 : 8+i*2+2]
		if code == "00" {
			continue
		}
		c, err := card.Parse(code)
		if err != nil {
			return Config{}, fmt.Errorf("%w: foundation %d: %v", ErrMalformed, i, err)
		}
		if c.Suit() != suit {
			return Config{}, fmt.Errorf("%w: foundation %d holds %s, want suit position %d", ErrMalformed, i, c, suit)
		}
		foundation[suit] = uint8(c.Rank()) + 1
	}

	tableaus, err := parseTableaus(deckPart[16:])
	if err != nil {
		return Config{}, err
	}

	cfg.Layout.SetState(reserve, foundation, tableaus)
	if err := checkConservation(reserve, foundation, tableaus); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseTableaus(s string) ([][]card.Card, error) {
	// Locate the eight roman markers in order. Marker letters (i, v)
	// never occur in card codes, so a simple forward scan is
	// unambiguous.
	positions := make([]int, game.NumTableaus+1)
	cur := 0
	for i, marker := range romanMarkers {
		pos := strings.Index(s[cur:], marker)
		if pos < 0 {
			return nil, fmt.Errorf("%w: missing tableau marker %q", ErrMalformed, marker)
		}
		positions[i] = cur + pos
		cur = cur + pos + len(marker)
	}
	positions[game.NumTableaus] = len(s)

	tableaus := make([][]card.Card, game.NumTableaus)
	for i := 0; i < game.NumTableaus; i++ {
		start := positions[i] + len(romanMarkers[i])
		end := positions[i+1]
		cards := s[start:end]
		if len(cards)%2 != 0 {
			return nil, fmt.Errorf("%w: tableau %d has a dangling character", ErrMalformed, i+1)
		}
		if len(cards)/2 > game.MaxColumnLen {
			return nil, fmt.Errorf("%w: tableau %d deeper than any reachable column", ErrMalformed, i+1)
		}
		for k := 0; k < len(cards); k += 2 {
			code := cards[k : k+2]
			if code == "00" {
				continue
			}
			c, err := card.Parse(code)
			if err != nil {
				return nil, fmt.Errorf("%w: tableau %d: %v", ErrMalformed, i+1, err)
			}
			tableaus[i] = append(tableaus[i], c)
		}
	}
	return tableaus, nil
}

// checkConservation verifies every card appears exactly once across the
// reserve, the foundations (ace..top of each suit), and the tableaus.
func checkConservation(reserve []card.Card, foundation [card.NumSuits]uint8, tableaus [][]card.Card) error {
	var seen [card.NumCards]bool
	mark := func(c card.Card) error {
		if seen[c] {
			return fmt.Errorf("%w: duplicate %s", ErrConservation, c)
		}
		seen[c] = true
		return nil
	}
	for _, c := range reserve {
		if err := mark(c); err != nil {
			return err
		}
	}
	for s := card.Suit(0); s < card.NumSuits; s++ {
		for r := card.Rank(0); r < card.Rank(foundation[s]); r++ {
			if err := mark(card.New(s, r)); err != nil {
				return err
			}
		}
	}
	for _, col := range tableaus {
		for _, c := range col {
			if err := mark(c); err != nil {
				return err
			}
		}
	}
	for c := 0; c < card.NumCards; c++ {
		if !seen[c] {
			return fmt.Errorf("%w: missing %s", ErrConservation, card.Card(c))
		}
	}
	return nil
}

// Encode renders the canonical deck string for a layout: reserve slots
// in slot order, foundation tops in H, C, D, S order, tableaus behind
// their roman markers.
func Encode(l *game.Layout) string {
	var sb strings.Builder
	res := l.Reserve()
	for i := 0; i < game.ReserveSlots; i++ {
		if i < len(res) {
			sb.WriteString(res[i].Code())
		} else {
			sb.WriteString("00")
		}
	}
	for _, suit := range foundationOrder {
		h := l.FoundationHeight(suit)
		if h == 0 {
			sb.WriteString("00")
		} else {
			sb.WriteString(card.New(suit, card.Rank(h-1)).Code())
		}
	}
	for i := 0; i < game.NumTableaus; i++ {
		sb.WriteString(romanMarkers[i])
		t := l.Tableau(i)
		for j := 0; j < t.Len(); j++ {
			sb.WriteString(t.At(j).Code())
		}
	}
	return sb.String()
}
