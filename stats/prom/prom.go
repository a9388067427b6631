// Package prom provides a Prometheus-based stats collector.
package prom

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/domino14/freecell/stats"
)

// Collector implements stats.Collector using Prometheus metrics.
type Collector struct {
	registry prometheus.Registerer

	mu       sync.RWMutex
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
}

var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector. If registry is nil,
// prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry: registry,
		counters: make(map[string]prometheus.Counter),
		gauges:   make(map[string]prometheus.Gauge),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.getOrCreateCounter(name).Add(float64(delta))
}

func (c *Collector) SetGauge(name string, value int64) {
	c.getOrCreateGauge(name).Set(float64(value))
}

func (c *Collector) getOrCreateCounter(name string) prometheus.Counter {
	c.mu.RLock()
	counter, ok := c.counters[name]
	c.mu.RUnlock()
	if ok {
		return counter
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if counter, ok = c.counters[name]; ok {
		return counter
	}
	counter = prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
	if err := c.registry.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				c.counters[name] = existing
				return existing
			}
		}
	}
	c.counters[name] = counter
	return counter
}

func (c *Collector) getOrCreateGauge(name string) prometheus.Gauge {
	c.mu.RLock()
	gauge, ok := c.gauges[name]
	c.mu.RUnlock()
	if ok {
		return gauge
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gauge, ok = c.gauges[name]; ok {
		return gauge
	}
	gauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
	if err := c.registry.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				c.gauges[name] = existing
				return existing
			}
		}
	}
	c.gauges[name] = gauge
	return gauge
}
