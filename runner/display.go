package runner

import (
	"fmt"

	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
)

const (
	ansiBlue  = "\033[34m"
	ansiReset = "\033[0m"
)

// describeSolution replays the decoded steps over a copy of the initial
// layout and prints one readable line per move. Moves that were safe
// automoves are shown in blue, matching the deck display's coloring.
func (r *Runner) describeSolution(l game.Layout, steps []move.Decoded) error {
	for i, d := range steps {
		m, ok := movegen.FindDecoded(&l, d)
		if !ok {
			return fmt.Errorf("%w: step %d (%s) does not apply", move.ErrBadSolution, i+1, d.Card)
		}

		cardName := game.Colorize(m.Card)
		if m.Count > 1 {
			cardName = fmt.Sprintf("stack of %d cards (%s)", m.Count, cardName)
		}

		var source string
		if m.Kind == move.ReserveToFoundation || m.Kind == move.ReserveToTableau {
			source = "Reserve"
		} else {
			source = fmt.Sprintf("Tableau %d", m.From+1)
		}

		var dest, onCard string
		switch m.Kind {
		case move.TableauToFoundation, move.ReserveToFoundation:
			dest = "Foundation"
		case move.TableauToReserve:
			dest = "Reserve"
		default:
			dest = fmt.Sprintf("Tableau %d", m.To+1)
			if t := l.Tableau(int(m.To)); t.Empty() {
				onCard = " (empty column)"
			} else {
				onCard = fmt.Sprintf(" (on %s)", game.Colorize(t.Top()))
			}
		}

		auto := (m.Kind == move.TableauToFoundation || m.Kind == move.ReserveToFoundation) &&
			l.CanAutoPlay(m.Card)

		l.Apply(m)

		line := fmt.Sprintf("Step %d: Move %s from %s to %s%s", i+1, cardName, source, dest, onCard)
		if auto {
			fmt.Fprintf(r.out, "%s%s%s\n", ansiBlue, line, ansiReset)
		} else {
			fmt.Fprintln(r.out, line)
		}
	}
	return nil
}
