// Package astar implements the challenge-mode solver: best-first search
// with an admissible buried-depth heuristic, used when the goal is a
// targeted challenge rather than a full solve. It shares the beam's
// game model, node arena, and trail replay.
package astar

import (
	"container/heap"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/beam"
	"github.com/domino14/freecell/challenge"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/stats"
)

// Solver is a single-threaded A* over layouts.
type Solver struct {
	ch        challenge.Challenge
	moveLimit int
	metrics   stats.Collector
}

func New(ch challenge.Challenge, moveLimit int, metrics stats.Collector) *Solver {
	if metrics == nil {
		metrics = stats.Noop{}
	}
	return &Solver{ch: ch, moveLimit: moveLimit, metrics: metrics}
}

// state is one open-list entry. seq breaks f ties by insertion order so
// the search (and therefore the emitted solution) is deterministic.
type state struct {
	node *beam.Node
	f    int
	seq  int
}

type openList []state

func (o openList) Len() int { return len(o) }

func (o openList) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}

func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x interface{}) { *o = append(*o, x.(state)) }

func (o *openList) Pop() interface{} {
	old := *o
	n := len(old)
	s := old[n-1]
	*o = old[:n-1]
	return s
}

// Solve searches for the challenge goal and returns the encoded
// solution. A goal already met at the root yields an empty, solved
// result. Exhausting the open list is not an error.
func (s *Solver) Solve(layout game.Layout) (beam.Result, error) {
	if s.ch.FullSolve() {
		// Full solves belong to the beam; nothing to target here.
		return beam.Result{}, nil
	}
	targets := s.ch.Targets()
	required := s.ch.RequiredCount()

	var pool beam.Pool
	root := pool.NewRoot(layout)
	closed := map[uint64]struct{}{root.Hash(): {}}

	open := openList{{node: root, f: estimate(&layout, targets, required)}}
	heap.Init(&open)

	var moveBuf []move.Move
	var childBuf []*beam.Node
	expanded := 0
	seq := 0

	for open.Len() > 0 {
		cur := heap.Pop(&open).(state)
		n := cur.node

		if s.ch.Met(n.Layout()) {
			log.Debug().Int("expanded", expanded).Int("moves", n.MovesPerformed()).
				Msg("challenge goal reached")
			encoded, err := beam.ReplayEncode(layout, n)
			if err != nil {
				return beam.Result{}, err
			}
			return beam.Result{Solved: true, Encoded: encoded, Moves: n.MovesPerformed()}, nil
		}

		expanded++
		s.metrics.IncCounter(stats.MetricExpanded, 1)
		childBuf = childBuf[:0]
		childBuf, moveBuf = n.Expand(&pool, moveBuf, childBuf)
		for _, c := range childBuf {
			if s.moveLimit > 0 && c.MovesPerformed() > s.moveLimit {
				pool.Put(c)
				continue
			}
			if _, ok := closed[c.Hash()]; ok {
				s.metrics.IncCounter(stats.MetricDuplicates, 1)
				pool.Put(c)
				continue
			}
			closed[c.Hash()] = struct{}{}
			h := estimate(c.Layout(), targets, required)
			seq++
			heap.Push(&open, state{node: c, f: c.MovesPerformed() + h, seq: seq})
		}
		pool.Put(n)
	}
	log.Debug().Int("expanded", expanded).Msg("challenge search exhausted without a solution")
	return beam.Result{}, nil
}
