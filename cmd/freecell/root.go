package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deck"
	"github.com/domino14/freecell/runner"
	"github.com/domino14/freecell/stats"
	"github.com/domino14/freecell/stats/logger"
	"github.com/domino14/freecell/stats/prom"
)

func rootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "freecell",
		Short: "Parallel beam-search Freecell solver",
		Long: `freecell solves Freecell deals: either sorting the whole deck onto the
foundations or satisfying a declared challenge within a move budget.

The deck string packs the reserve, the foundations (H, C, D, S), and the
eight tableau columns behind roman-numeral markers, with an optional
$challenge$limit suffix.

Examples:
  # Solve a deal
  freecell solve 006d8s001h1c3d2si4c4dts7h7cjsiitdkc9d9cjd8d7s6h5c...

  # Deal a fresh game from a seed and show it
  freecell deal --seed 7

  # Solve a challenge: four kings, at most 90 moves
  freecell solve '<deck>$k4$90'`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&cfg.SolutionsDir, "solutions-dir", cfg.SolutionsDir, "directory holding sol_<n> files")
	pf.BoolVar(&cfg.Quiet, "quiet", false, "only print the encoded solution")
	pf.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	pf.BoolVar(&cfg.JSON, "json", false, "emit the result as JSON")
	pf.IntVar(&cfg.BeamSize, "beam-size", 0, "nodes retained per level per worker (0 = size from memory)")
	pf.IntVar(&cfg.NumWorkers, "workers", cfg.NumWorkers, "number of parallel beams")
	pf.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while solving")
	pf.BoolVar(&cfg.AutoPlay, "autoplay", cfg.AutoPlay, "auto-play trivially safe cards outside the search")

	root.AddCommand(solveCommand(cfg), dealCommand(cfg), showCommand())
	return root
}

// collector picks the metrics backend: prometheus when an address is
// being served, else debug logging when --debug is set, else noop.
func collector(cfg *config.Config) stats.Collector {
	if cfg.MetricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		return prom.New(nil)
	}
	if cfg.Debug {
		return logger.New(log.Logger)
	}
	return stats.Noop{}
}

func solveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <deck-string>",
		Short: "Solve a deal or challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := runner.New(cfg, collector(cfg), os.Stdout)
			return r.Run(args[0])
		},
	}
}

func dealCommand(cfg *config.Config) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Deal a fresh game from a seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := deck.Deal(seed)
			if !cfg.Quiet {
				l.Show(os.Stdout)
			}
			_, err := os.Stdout.WriteString(deck.Encode(&l) + "\n")
			return err
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "deal seed")
	return cmd
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <deck-string>",
		Short: "Render a deck string for humans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := deck.Parse(args[0])
			if err != nil {
				return err
			}
			parsed.Layout.Show(os.Stdout)
			return nil
		},
	}
}
