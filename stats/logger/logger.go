// Package logger provides a zerolog-based stats collector that logs
// metric updates at debug level.
package logger

import (
	"github.com/rs/zerolog"

	"github.com/domino14/freecell/stats"
)

// Collector implements stats.Collector by logging metrics.
type Collector struct {
	logger zerolog.Logger
}

var _ stats.Collector = (*Collector)(nil)

// New creates a new logger-based collector.
func New(logger zerolog.Logger) *Collector {
	return &Collector{logger: logger}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.logger.Debug().Str("metric", name).Int64("delta", delta).Msg("counter")
}

func (c *Collector) SetGauge(name string, value int64) {
	c.logger.Debug().Str("metric", name).Int64("value", value).Msg("gauge")
}
