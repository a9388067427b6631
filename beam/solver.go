package beam

import (
	"errors"
	"strings"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/freecell/challenge"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
	"github.com/domino14/freecell/stats"
)

// ErrReplayMismatch indicates a trail index that does not resolve
// against the re-expanded children. It can only mean the move
// generator's ordering is not deterministic, which is a bug, not an
// input condition.
var ErrReplayMismatch = errors.New("beam: trail replay mismatch")

// Options configures a solve.
type Options struct {
	// BeamSize is the per-worker, per-level node budget. 0 picks a
	// default from system memory.
	BeamSize int
	// NumWorkers is the number of beams. 0 means 1.
	NumWorkers int
	// Challenge is the goal; the zero value is the full solve.
	Challenge challenge.Challenge
	// MoveLimit caps node depth when > 0.
	MoveLimit int
	// Metrics receives search counters; nil means none.
	Metrics stats.Collector
}

// Result is the outcome of a solve.
type Result struct {
	Solved bool
	// Encoded is the concatenated canonical move codes.
	Encoded string
	// Moves is the solution length.
	Moves int
}

// Solver coordinates a fixed set of beam workers over one layout. The
// workers slice is built before any worker runs and never resized; it
// is the read-only shared state the barrier protocol relies on.
type Solver struct {
	beamSize   int
	numWorkers int
	challenge  challenge.Challenge
	moveLimit  int
	metrics    stats.Collector
	workers    []*Worker
}

// nodeFootprint approximates the resident bytes per live node (the node
// itself plus its trail and table slot) when sizing the default beam.
const nodeFootprint = 256

// memoryFraction of total system memory the default beam size is
// allowed to occupy across both resident levels.
const memoryFraction = 0.25

// DefaultBeamSize derives a beam size from total system memory: the
// largest power of two whose two resident levels fit in the memory
// fraction, clamped to a sane range.
func DefaultBeamSize(numWorkers int) int {
	if numWorkers < 1 {
		numWorkers = 1
	}
	budget := memoryFraction * float64(memory.TotalMemory())
	n := int(budget / float64(nodeFootprint*2*numWorkers))
	size := 1 << 10
	for size*2 <= n && size < 1<<22 {
		size <<= 1
	}
	return size
}

// NewSolver builds the worker set. Zero-valued options get defaults.
func NewSolver(opts Options) *Solver {
	if opts.NumWorkers < 1 {
		opts.NumWorkers = 1
	}
	if opts.BeamSize < 1 {
		opts.BeamSize = DefaultBeamSize(opts.NumWorkers)
		log.Info().Int("beam-size", opts.BeamSize).Msg("derived beam size from system memory")
	}
	if opts.Metrics == nil {
		opts.Metrics = stats.Noop{}
	}
	s := &Solver{
		beamSize:   opts.BeamSize,
		numWorkers: opts.NumWorkers,
		challenge:  opts.Challenge,
		moveLimit:  opts.MoveLimit,
		metrics:    opts.Metrics,
	}
	s.workers = make([]*Worker, s.numWorkers)
	for i := range s.workers {
		s.workers[i] = newWorker(i, s)
	}
	return s
}

// Solve runs the beam search from the given root layout. A root that
// already satisfies the goal yields an empty solution. No solution
// within bounds is not an error; Result.Solved is false.
func (s *Solver) Solve(layout game.Layout) (Result, error) {
	if s.goalMet(&layout) {
		return Result{Solved: true}, nil
	}
	if s.numWorkers == 1 {
		s.workers[0].best = s.workers[0].beamSearch(layout)
	} else {
		g := errgroup.Group{}
		for _, w := range s.workers {
			w := w
			g.Go(func() error {
				w.best = w.beamSearch(layout)
				return nil
			})
		}
		// Workers never return errors; discards are silent by design.
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	}
	best := s.pickBest()
	if best == nil {
		return Result{}, nil
	}
	encoded, err := s.EncodeSolution(layout, best)
	if err != nil {
		return Result{}, err
	}
	res := Result{Solved: true, Encoded: encoded, Moves: best.MovesPerformed()}
	for _, w := range s.workers {
		if w.best != nil {
			w.pool.Put(w.best)
			w.best = nil
		}
	}
	return res, nil
}

func (s *Solver) goalMet(l *game.Layout) bool {
	if s.challenge.FullSolve() {
		return l.Solved()
	}
	return s.challenge.Met(l)
}

// pickBest chooses the shortest solution across workers, ties to the
// lowest worker id, so multi-worker runs settle on one final layout.
func (s *Solver) pickBest() *Node {
	var best *Node
	for _, w := range s.workers {
		if w.best == nil {
			continue
		}
		if best == nil || w.best.MovesPerformed() < best.MovesPerformed() {
			best = w.best
		}
	}
	return best
}

// EncodeSolution replays finish's compressed trail from the start
// layout and emits the canonical textual move list.
func (s *Solver) EncodeSolution(start game.Layout, finish *Node) (string, error) {
	return ReplayEncode(start, finish)
}

// ReplayEncode replays finish's compressed trail from the start layout,
// re-expanding each step and picking the recorded child index, and
// emits the canonical textual move list. The final fingerprint must
// match the solving node's.
func ReplayEncode(start game.Layout, finish *Node) (string, error) {
	var sb strings.Builder
	cur := start
	reader := NewTrailReader(finish.trail)
	var moveBuf []move.Move
	for i := 0; i < finish.MovesPerformed(); i++ {
		moveBuf = movegen.Gen(&cur, moveBuf[:0])
		idx := reader.Read(len(moveBuf))
		if idx >= len(moveBuf) {
			return "", ErrReplayMismatch
		}
		m := moveBuf[idx]
		cur.Apply(m)
		sb.WriteString(m.Encode())
	}
	if !cur.Equal(&finish.layout) {
		return "", ErrReplayMismatch
	}
	return sb.String(), nil
}
