// Package metrics exposes Prometheus collectors for board computations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hexgrid"

// Collector holds the board metrics. A nil *Collector is valid and records
// nothing.
type Collector struct {
	fovDuration     prometheus.Histogram
	fovVisible      prometheus.Histogram
	pathExpanded    *prometheus.HistogramVec
	pathOutcomes    *prometheus.CounterVec
	landmarkResets  prometheus.Histogram
	landmarkFailure prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fovDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fov",
			Name:      "duration_seconds",
			Help:      "Time spent computing one field of view.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		fovVisible: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fov",
			Name:      "visible_hexes",
			Help:      "Hexes marked visible per field of view.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		pathExpanded: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "expanded_hexes",
			Help:      "Hexes expanded per path search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"strategy"}),
		pathOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "path",
			Name:      "searches_total",
			Help:      "Path searches by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		landmarkResets: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "landmarks",
			Name:      "reset_duration_seconds",
			Help:      "Time spent rebuilding the landmark collection.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		landmarkFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "landmarks",
			Name:      "reset_failures_total",
			Help:      "Landmark resets that returned an error.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			c.fovDuration, c.fovVisible,
			c.pathExpanded, c.pathOutcomes,
			c.landmarkResets, c.landmarkFailure,
		)
	}
	return c
}

// ObserveFOV records one field-of-view computation.
func (c *Collector) ObserveFOV(d time.Duration, visible int) {
	if c == nil {
		return
	}
	c.fovDuration.Observe(d.Seconds())
	c.fovVisible.Observe(float64(visible))
}

// ObservePath records one path search.
func (c *Collector) ObservePath(strategy string, expanded int, found bool) {
	if c == nil {
		return
	}
	outcome := "none"
	if found {
		outcome = "found"
	}
	c.pathExpanded.WithLabelValues(strategy).Observe(float64(expanded))
	c.pathOutcomes.WithLabelValues(strategy, outcome).Inc()
}

// ObserveLandmarkReset records one landmark reset.
func (c *Collector) ObserveLandmarkReset(d time.Duration, err error) {
	if c == nil {
		return
	}
	c.landmarkResets.Observe(d.Seconds())
	if err != nil {
		c.landmarkFailure.Inc()
	}
}
