package astar

import (
	"sort"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// heuristic depth recursion cap; a target's prerequisite chain is at
// most the twelve ranks below it.
const depthLimit = 13

// absentDepth is the sentinel for a card found nowhere, which cannot
// happen in a conserved deck.
const absentDepth = 1000

// cardDepth is the number of cards burying the target: 0 in the
// reserve, column height above it in a tableau, -1 when already on its
// foundation.
func cardDepth(l *game.Layout, target card.Card) int {
	if l.FoundationHas(target) {
		return -1
	}
	if l.ReserveSlotOf(target) >= 0 {
		return 0
	}
	for i := 0; i < game.NumTableaus; i++ {
		t := l.Tableau(i)
		for j := 0; j < t.Len(); j++ {
			if t.At(j) == target {
				return t.Len() - 1 - j
			}
		}
	}
	return absentDepth
}

// targetCost is the admissible lower bound for getting target onto its
// foundation: its burial depth plus the cost of its same-suit
// predecessor, recursively.
func targetCost(l *game.Layout, target card.Card, limit int) int {
	if limit <= 0 {
		return 0
	}
	if l.FoundationHas(target) {
		return 0
	}
	d := cardDepth(l, target)
	if d < 0 {
		return 0
	}
	cost := d
	if target.Rank() > card.Ace {
		cost += targetCost(l, card.New(target.Suit(), target.Rank()-1), limit-1)
	}
	return cost
}

// estimate is the challenge heuristic: the target's cost for a suit
// challenge, or the sum of the k cheapest per-suit costs for a count
// challenge (the other suits need not move at all).
func estimate(l *game.Layout, targets []card.Card, required int) int {
	if len(targets) == 0 {
		return 0
	}
	if required >= len(targets) {
		total := 0
		for _, t := range targets {
			total += targetCost(l, t, depthLimit)
		}
		return total
	}
	costs := make([]int, 0, len(targets))
	for _, t := range targets {
		costs = append(costs, targetCost(l, t, depthLimit))
	}
	sort.Ints(costs)
	total := 0
	for i := 0; i < required; i++ {
		total += costs[i]
	}
	return total
}
