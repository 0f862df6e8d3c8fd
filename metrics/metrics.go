// Package metrics exports an easel's frame loop as Prometheus metrics.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agiangrant/easel"
)

// Collector is an easel.Observer that records frame loop events.
type Collector struct {
	// Counters
	scheduled prometheus.Counter
	fired     prometheus.Counter
	rendered  prometheus.Counter
	cancelled prometheus.Counter

	// Gauges
	paused prometheus.Gauge
	fps    prometheus.Gauge

	// Histograms
	delta prometheus.Histogram
}

// NewCollector creates the collectors and registers them with reg. Every
// metric carries a constant easel_id label.
func NewCollector(reg prometheus.Registerer, id string) (*Collector, error) {
	labels := prometheus.Labels{"easel_id": id}
	c := &Collector{
		scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "easel_frames_scheduled_total",
			Help:        "Total number of frame requests made",
			ConstLabels: labels,
		}),
		fired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "easel_frames_fired_total",
			Help:        "Total number of frame callbacks run, paused or not",
			ConstLabels: labels,
		}),
		rendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "easel_frames_rendered_total",
			Help:        "Total number of frames rendered",
			ConstLabels: labels,
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "easel_frames_cancelled_total",
			Help:        "Total number of frame requests withdrawn on close",
			ConstLabels: labels,
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "easel_paused",
			Help:        "1 while rendering is paused",
			ConstLabels: labels,
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "easel_fps",
			Help:        "Most recently displayed frames per second",
			ConstLabels: labels,
		}),
		delta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "easel_frame_delta_milliseconds",
			Help:        "Time between consecutive frames",
			ConstLabels: labels,
			Buckets:     []float64{4, 8, 12, 16.7, 20, 25, 33.3, 50, 100, 250},
		}),
	}
	c.paused.Set(1)

	for _, col := range []prometheus.Collector{
		c.scheduled, c.fired, c.rendered, c.cancelled, c.paused, c.fps, c.delta,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return c, nil
}

// FrameScheduled implements easel.Observer.
func (c *Collector) FrameScheduled() {
	c.scheduled.Inc()
}

// FrameFired implements easel.Observer.
func (c *Collector) FrameFired(stats easel.FrameStats) {
	c.fired.Inc()
	if stats.Rendered {
		c.rendered.Inc()
	}
	if stats.DeltaKnown {
		c.delta.Observe(stats.DeltaMs)
	}
	if stats.FPSKnown {
		c.fps.Set(stats.FPS)
	}
}

// FrameCancelled implements easel.Observer.
func (c *Collector) FrameCancelled() {
	c.cancelled.Inc()
}

// PauseChanged implements easel.Observer.
func (c *Collector) PauseChanged(paused bool) {
	if paused {
		c.paused.Set(1)
	} else {
		c.paused.Set(0)
	}
}

// Handler returns the HTTP handler for the /metrics endpoint of g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

var _ easel.Observer = (*Collector)(nil)
