// Package movegen enumerates the legal moves of a layout in the fixed
// canonical order the compressed move trail depends on. Re-running Gen
// on equal layouts must yield identical sequences; replay breaks
// otherwise.
package movegen

import (
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
)

// Gen appends every legal move to buf in canonical order: tableau to
// foundation (column 0..7), reserve to foundation (slot 0..3), tableau
// to tableau ((from, to) pairs lexicographic, longest legal run first),
// tableau to reserve (column 0..7), reserve to tableau (slot 0..3 ×
// destination 0..7).
func Gen(l *game.Layout, buf []move.Move) []move.Move {
	for i := 0; i < game.NumTableaus; i++ {
		t := l.Tableau(i)
		if t.Empty() {
			continue
		}
		if c := t.Top(); l.CanPlayToFoundation(c) {
			buf = append(buf, move.Move{Kind: move.TableauToFoundation, From: uint8(i), Count: 1, Card: c})
		}
	}
	for slot, c := range l.Reserve() {
		if l.CanPlayToFoundation(c) {
			buf = append(buf, move.Move{Kind: move.ReserveToFoundation, From: uint8(slot), Count: 1, Card: c})
		}
	}
	empties := l.EmptyTableaus()
	for from := 0; from < game.NumTableaus; from++ {
		src := l.Tableau(from)
		if src.Empty() {
			continue
		}
		runLen := src.RunLength()
		top := src.Top()
		for to := 0; to < game.NumTableaus; to++ {
			if to == from {
				continue
			}
			dst := l.Tableau(to)
			if dst.Empty() {
				maxRun := l.MaxRun(empties - 1)
				k := runLen
				if k > maxRun {
					k = maxRun
				}
				for ; k >= 1; k-- {
					bottom := src.At(src.Len() - k)
					buf = append(buf, move.Move{Kind: move.TableauToTableau, From: uint8(from), To: uint8(to), Count: uint8(k), Card: bottom})
				}
				continue
			}
			dTop := dst.Top()
			// In a descending run only one suffix length can land on
			// dTop: the one whose bottom card is exactly one rank
			// below it.
			k := int(dTop.Rank()) - int(top.Rank())
			if k < 1 || k > runLen || k > l.MaxRun(empties) {
				continue
			}
			bottom := src.At(src.Len() - k)
			if bottom.SameColor(dTop) {
				continue
			}
			buf = append(buf, move.Move{Kind: move.TableauToTableau, From: uint8(from), To: uint8(to), Count: uint8(k), Card: bottom})
		}
	}
	if l.FreeReserve() > 0 {
		for i := 0; i < game.NumTableaus; i++ {
			t := l.Tableau(i)
			if t.Empty() {
				continue
			}
			buf = append(buf, move.Move{Kind: move.TableauToReserve, From: uint8(i), Count: 1, Card: t.Top()})
		}
	}
	for slot, c := range l.Reserve() {
		for to := 0; to < game.NumTableaus; to++ {
			dst := l.Tableau(to)
			if !dst.Empty() {
				dTop := dst.Top()
				if dTop.Rank() != c.Rank()+1 || dTop.SameColor(c) {
					continue
				}
			}
			buf = append(buf, move.Move{Kind: move.ReserveToTableau, From: uint8(slot), To: uint8(to), Count: 1, Card: c})
		}
	}
	return buf
}

// FindDecoded resolves a decoded solution step against the current
// layout into an applicable Move. It returns false when the step does
// not correspond to any present card, which indicates a corrupt
// solution string.
func FindDecoded(l *game.Layout, d move.Decoded) (move.Move, bool) {
	if d.Src == move.ReserveSource {
		slot := l.ReserveSlotOf(d.Card)
		if slot < 0 {
			return move.Move{}, false
		}
		if d.DstFoundation {
			return move.Move{Kind: move.ReserveToFoundation, From: uint8(slot), Count: 1, Card: d.Card}, true
		}
		return move.Move{Kind: move.ReserveToTableau, From: uint8(slot), To: d.Dst, Count: 1, Card: d.Card}, true
	}
	t := l.Tableau(int(d.Src))
	if t.Len() < d.Count {
		return move.Move{}, false
	}
	if t.At(t.Len()-d.Count) != d.Card {
		return move.Move{}, false
	}
	switch {
	case d.DstFoundation:
		return move.Move{Kind: move.TableauToFoundation, From: d.Src, Count: 1, Card: d.Card}, true
	case d.DstReserve:
		return move.Move{Kind: move.TableauToReserve, From: d.Src, Count: 1, Card: d.Card}, true
	default:
		return move.Move{Kind: move.TableauToTableau, From: d.Src, To: d.Dst, Count: uint8(d.Count), Card: d.Card}, true
	}
}
