package game

import (
	"fmt"
	"io"

	"github.com/domino14/freecell/card"
)

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// Colorize wraps a card's display form in the ANSI color used by the
// readable output: red suits in red, black suits in green.
func Colorize(c card.Card) string {
	if c.Black() {
		return ansiGreen + c.String() + ansiReset
	}
	return ansiRed + c.String() + ansiReset
}

// Show renders the layout for humans: reserve, foundations, and the
// tableau columns left to right.
func (l *Layout) Show(w io.Writer) {
	fmt.Fprint(w, "Reserve:    ")
	for i := 0; i < ReserveSlots; i++ {
		if i < int(l.nReserve) {
			fmt.Fprintf(w, "%s ", Colorize(l.reserve[i]))
		} else {
			fmt.Fprint(w, "-- ")
		}
	}
	fmt.Fprint(w, "\nFoundation: ")
	for s := card.Suit(0); s < card.NumSuits; s++ {
		h := l.foundation[s]
		if h == 0 {
			fmt.Fprint(w, "-- ")
		} else {
			fmt.Fprintf(w, "%s ", Colorize(card.New(s, card.Rank(h-1))))
		}
	}
	fmt.Fprintln(w)
	height := 0
	for i := range l.tableaus {
		if l.tableaus[i].Len() > height {
			height = l.tableaus[i].Len()
		}
	}
	for row := 0; row < height; row++ {
		for i := range l.tableaus {
			t := &l.tableaus[i]
			if row < t.Len() {
				fmt.Fprintf(w, "%s ", Colorize(t.cards[row]))
			} else {
				fmt.Fprint(w, "   ")
			}
		}
		fmt.Fprintln(w)
	}
}
