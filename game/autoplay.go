package game

import (
	"strings"
)

// AutoPlay repeatedly drives safe cards to the foundations, mutating l,
// and returns the encoded moves it performed. Reserve slots are checked
// before tableau columns, lowest index first; this is not the move
// generator's order, which lists tableau columns first. If stop is non-nil, the loop halts as soon as it reports
// true (used to avoid auto-playing past a satisfied challenge).
func AutoPlay(l *Layout, stop func(*Layout) bool) string {
	var sb strings.Builder
	for {
		if stop != nil && stop(l) {
			break
		}
		moved := false
		for i, c := range l.Reserve() {
			if l.CanAutoPlay(c) {
				sb.WriteString(c.Code())
				sb.WriteString("_R_F")
				l.removeReserve(i)
				l.foundation[c.Suit()]++
				moved = true
				break
			}
		}
		if moved {
			continue
		}
		for i := range l.tableaus {
			t := &l.tableaus[i]
			if t.Empty() {
				continue
			}
			c := t.Top()
			if l.CanAutoPlay(c) {
				sb.WriteString(c.Code())
				sb.WriteByte('_')
				sb.WriteByte('0' + byte(i))
				sb.WriteString("_F")
				t.pop()
				l.foundation[c.Suit()]++
				moved = true
				break
			}
		}
		if !moved {
			break
		}
	}
	return sb.String()
}
