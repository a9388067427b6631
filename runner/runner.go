// Package runner wires the solve pipeline end to end: parse the deck,
// capture automoves, consult the solution store, run the right solver,
// merge and persist the result, and render the output.
package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sugawarayuuta/sonnet"

	"github.com/domino14/freecell/astar"
	"github.com/domino14/freecell/beam"
	"github.com/domino14/freecell/challenge"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deck"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
	"github.com/domino14/freecell/solutions"
	"github.com/domino14/freecell/stats"
)

// Runner executes one solve request.
type Runner struct {
	cfg     *config.Config
	store   *solutions.Store
	metrics stats.Collector
	out     io.Writer
}

func New(cfg *config.Config, metrics stats.Collector, out io.Writer) *Runner {
	if metrics == nil {
		metrics = stats.Noop{}
	}
	return &Runner{
		cfg:     cfg,
		store:   solutions.NewStore(cfg.SolutionsDir),
		metrics: metrics,
		out:     out,
	}
}

// Output is the JSON shape of a solve result.
type Output struct {
	Deck      string `json:"deck"`
	Solution  string `json:"solution"`
	Solved    bool   `json:"solved"`
	Moves     int    `json:"moves"`
	FromCache bool   `json:"from_cache"`
}

// Run solves the deck string. Malformed input and solution-store I/O
// failures are errors; an unsolved deck is a normal result.
func (r *Runner) Run(deckStr string) error {
	parsed, err := deck.Parse(deckStr)
	if err != nil {
		return err
	}
	initial := parsed.Layout
	encodedDeck := deck.Encode(&initial)
	ch := parsed.Challenge

	autoPlay := r.cfg.AutoPlay
	if parsed.MoveLimit > 0 && !ch.FullSolve() {
		// A capped challenge counts every move; automoves would spend
		// the budget behind the player's back.
		autoPlay = false
		log.Debug().Msg("autoplay disabled by challenge move limit")
	}

	working := initial
	var initialAuto string
	if autoPlay {
		initialAuto = game.AutoPlay(&working, stopWhenMet(ch))
	}

	moveLimit := parsed.MoveLimit
	if moveLimit > 0 && initialAuto != "" {
		steps, err := move.Decode(initialAuto)
		if err != nil {
			return err
		}
		moveLimit -= len(steps)
		if moveLimit < 0 {
			moveLimit = 0
		}
		log.Debug().Int("move-limit", moveLimit).Int("automoves", len(steps)).
			Msg("adjusted move limit for initial automoves")
	}

	if stored, ok, err := r.store.Lookup(encodedDeck); err != nil {
		return err
	} else if ok {
		full := stored
		if !strings.HasPrefix(stored, initialAuto) {
			full = initialAuto + stored
		}
		return r.emit(encodedDeck, &initial, full, true)
	}

	var res beam.Result
	if ch.FullSolve() {
		solver := beam.NewSolver(beam.Options{
			BeamSize:   r.cfg.BeamSize,
			NumWorkers: r.cfg.NumWorkers,
			Challenge:  ch,
			MoveLimit:  moveLimit,
			Metrics:    r.metrics,
		})
		res, err = solver.Solve(working)
	} else {
		res, err = astar.New(ch, moveLimit, r.metrics).Solve(working)
	}
	if err != nil {
		return err
	}
	if !res.Solved {
		if r.cfg.JSON {
			return r.writeJSON(Output{Deck: encodedDeck})
		}
		fmt.Fprintln(r.out, "no solution")
		return nil
	}

	full := r.mergeAutoMoves(working, initialAuto, res.Encoded, ch, autoPlay)

	if _, err := r.store.Save(encodedDeck, full); err != nil {
		return err
	}
	return r.emit(encodedDeck, &initial, full, false)
}

func stopWhenMet(ch challenge.Challenge) func(*game.Layout) bool {
	if ch.FullSolve() {
		return nil
	}
	return func(l *game.Layout) bool { return ch.Met(l) }
}

// mergeAutoMoves interleaves the safe automoves into the solver's
// solution: the initial batch first, then another sweep after each
// solver move, stopping as soon as the goal is satisfied. Solver moves
// made redundant by an earlier automove are dropped.
func (r *Runner) mergeAutoMoves(start game.Layout, initialAuto, encoded string, ch challenge.Challenge, autoPlay bool) string {
	if !autoPlay {
		return initialAuto + encoded
	}
	steps, err := move.Decode(encoded)
	if err != nil {
		// The solver produced this string; a decode failure is a bug,
		// but the raw concatenation is still a usable artifact.
		log.Error().Err(err).Msg("solution did not decode for automove merge")
		return initialAuto + encoded
	}
	var sb strings.Builder
	sb.WriteString(initialAuto)
	cur := start
	for _, d := range steps {
		if goalReached(&cur, ch) {
			break
		}
		m, ok := movegen.FindDecoded(&cur, d)
		if !ok {
			// An automove already played this card.
			continue
		}
		cur.Apply(m)
		sb.WriteString(m.Encode())
		sb.WriteString(game.AutoPlay(&cur, stopWhenMet(ch)))
	}
	return sb.String()
}

func goalReached(l *game.Layout, ch challenge.Challenge) bool {
	if ch.FullSolve() {
		return l.Solved()
	}
	return ch.Met(l)
}

// emit renders the final result: encoded deck, readable deck, encoded
// solution, readable move list — or the JSON object in JSON mode.
func (r *Runner) emit(encodedDeck string, initial *game.Layout, solution string, fromCache bool) error {
	steps, err := move.Decode(solution)
	if err != nil {
		return err
	}
	if r.cfg.JSON {
		return r.writeJSON(Output{
			Deck:      encodedDeck,
			Solution:  solution,
			Solved:    true,
			Moves:     len(steps),
			FromCache: fromCache,
		})
	}
	if r.cfg.Quiet {
		fmt.Fprintln(r.out, solution)
		return nil
	}
	if fromCache {
		fmt.Fprintf(r.out, "Found existing solution\n\n")
	}
	fmt.Fprintf(r.out, "Encoded deck configuration\n%s\n\n", encodedDeck)
	fmt.Fprintln(r.out, "Readable deck configuration")
	initial.Show(r.out)
	fmt.Fprintf(r.out, "\nEncoded solution\n%s\n\n", solution)
	fmt.Fprintln(r.out, "Readable solution")
	return r.describeSolution(*initial, steps)
}

func (r *Runner) writeJSON(o Output) error {
	b, err := sonnet.Marshal(o)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.out, "%s\n", b)
	return err
}
