// Package metrics exposes simulation counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collision kinds used as label values.
const (
	KindWall   = "wall"
	KindEntity = "entity"
)

var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "worship_tick_seconds",
		Help:    "Time spent in one fixed simulation tick",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.02},
	})

	entityCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worship_entities",
		Help: "Entities currently registered with the world",
	})

	lightCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worship_dynamic_lights",
		Help: "Dynamic lights currently in the pool",
	})

	raycasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worship_raycasts_total",
		Help: "Wall raycasts performed",
	})

	// Bounded: "wall", "entity"
	collisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worship_collisions_total",
		Help: "Blocking collisions resolved by the movement pass",
	}, []string{"kind"})
)

// ObserveTick records the duration of one fixed tick.
func ObserveTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// SetPopulation records the current entity and light counts.
func SetPopulation(entities, lights int) {
	entityCount.Set(float64(entities))
	lightCount.Set(float64(lights))
}

// Raycast counts one wall raycast.
func Raycast() {
	raycasts.Inc()
}

// Collision counts one blocking collision of the given kind.
func Collision(kind string) {
	collisions.WithLabelValues(kind).Inc()
}
