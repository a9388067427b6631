// Package move defines the solver's move representation and the textual
// solution encoding shared by the search, the solution store, and the
// readable output.
package move

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/domino14/freecell/card"
)

// Kind is a kind of move. The order of these constants is the canonical
// enumeration order of the move generator; trail replay depends on it.
type Kind uint8

const (
	TableauToFoundation Kind = iota
	ReserveToFoundation
	TableauToTableau
	TableauToReserve
	ReserveToTableau
)

// Move is a single legal action. From is a tableau column for tableau
// sources or a reserve slot for reserve sources. Count is the run length
// for tableau→tableau moves (1 otherwise). Card is the moved card; for
// multi-card runs it is the bottom card of the run.
type Move struct {
	Kind  Kind
	From  uint8
	To    uint8
	Count uint8
	Card  card.Card
}

func (m Move) String() string {
	return m.Encode()
}

// Encode renders the canonical textual form <card>[#k]_<src>_<dst>,
// where src is a tableau column digit or R, and dst is F, R, or ~n~.
func (m Move) Encode() string {
	b := make([]byte, 0, 10)
	b = m.Card.AppendCode(b)
	if m.Count > 1 {
		b = append(b, '#')
		b = strconv.AppendUint(b, uint64(m.Count), 10)
	}
	b = append(b, '_')
	switch m.Kind {
	case ReserveToFoundation, ReserveToTableau:
		b = append(b, 'R')
	default:
		b = append(b, '0'+m.From)
	}
	b = append(b, '_')
	switch m.Kind {
	case TableauToFoundation, ReserveToFoundation:
		b = append(b, 'F')
	case TableauToReserve:
		b = append(b, 'R')
	default:
		b = append(b, '~', '0'+m.To, '~')
	}
	return string(b)
}

// ReserveSource marks a decoded step whose source is the reserve.
const ReserveSource = 0xff

// Decoded is one step of a decoded solution string. Src is a tableau
// column or ReserveSource. DstFoundation/DstReserve distinguish the
// destination; otherwise Dst is a tableau column.
type Decoded struct {
	Card          card.Card
	Count         int
	Src           uint8
	Dst           uint8
	DstFoundation bool
	DstReserve    bool
}

var ErrBadSolution = errors.New("move: malformed solution string")

// Decode splits a concatenated solution string into steps. It accepts
// both the canonical form with an underscore after the card code and the
// compact legacy form without one.
func Decode(s string) ([]Decoded, error) {
	var out []Decoded
	pos := 0
	for pos < len(s) {
		if len(s)-pos < 4 {
			return nil, fmt.Errorf("%w: trailing %q", ErrBadSolution, s[pos:])
		}
		c, err := card.Parse(s[pos : pos+2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSolution, err)
		}
		pos += 2
		d := Decoded{Card: c, Count: 1}
		if pos < len(s) && s[pos] == '#' {
			pos++
			start := pos
			for pos < len(s) && s[pos] != '_' {
				pos++
			}
			n, err := strconv.Atoi(s[start:pos])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: bad stack count %q", ErrBadSolution, s[start:pos])
			}
			d.Count = n
		}
		if pos < len(s) && s[pos] == '_' {
			pos++
		}
		if pos >= len(s) {
			return nil, fmt.Errorf("%w: missing source", ErrBadSolution)
		}
		switch {
		case s[pos] == 'R':
			d.Src = ReserveSource
		case s[pos] >= '0' && s[pos] <= '7':
			d.Src = s[pos] - '0'
		default:
			return nil, fmt.Errorf("%w: bad source %q", ErrBadSolution, s[pos])
		}
		pos++
		if pos < len(s) && s[pos] == '_' {
			pos++
		}
		if pos >= len(s) {
			return nil, fmt.Errorf("%w: missing destination", ErrBadSolution)
		}
		switch s[pos] {
		case 'F':
			d.DstFoundation = true
			pos++
		case 'R':
			d.DstReserve = true
			pos++
		case '~':
			if pos+2 >= len(s) || s[pos+2] != '~' || s[pos+1] < '0' || s[pos+1] > '7' {
				return nil, fmt.Errorf("%w: bad tableau destination", ErrBadSolution)
			}
			d.Dst = s[pos+1] - '0'
			pos += 3
		default:
			return nil, fmt.Errorf("%w: bad destination %q", ErrBadSolution, s[pos])
		}
		out = append(out, d)
	}
	return out, nil
}
