// Package observability exposes simulation counters to Prometheus
package observability

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/status"
)

const namespace = "starfall"

// SimCollector holds per-frame simulation metrics
type SimCollector struct {
	gatherer prometheus.Gatherer

	FrameDuration  prometheus.Histogram
	Bodies         prometheus.Gauge
	Projectiles    prometheus.Gauge
	Collisions     prometheus.Counter
	ProjectileHits prometheus.Counter
	Expired        prometheus.Counter
	Destroyed      prometheus.Counter
	Faults         prometheus.Counter
	Skipped        prometheus.Counter
	Frames         prometheus.Counter
}

// NewSimCollector registers simulation metrics against reg, nil uses the default registerer
// Registering twice against the same registerer reuses the existing collectors
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &SimCollector{gatherer: gatherer}
	var err error

	c.FrameDuration, err = registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_duration_seconds",
		Help:      "Wall time spent in one simulation step.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
	}), "frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	gauges := []struct {
		dst  *prometheus.Gauge
		name string
		help string
	}{
		{&c.Bodies, "bodies", "Bodies registered with the physics world."},
		{&c.Projectiles, "projectiles", "Live projectiles."},
	}
	for _, g := range gauges {
		*g.dst, err = registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      g.name,
			Help:      g.help,
		}), g.name)
		if err != nil {
			return nil, err
		}
	}

	counters := []struct {
		dst  *prometheus.Counter
		name string
		help string
	}{
		{&c.Frames, "frames_total", "Simulation steps executed."},
		{&c.Collisions, "collisions_total", "Resolved body-body collisions."},
		{&c.ProjectileHits, "projectile_hits_total", "Projectile impacts."},
		{&c.Expired, "projectiles_expired_total", "Projectiles removed at end of lifespan."},
		{&c.Destroyed, "bodies_destroyed_total", "Bodies destroyed by damage."},
		{&c.Faults, "faults_total", "Recovered per-entity faults."},
		{&c.Skipped, "bodies_skipped_total", "Body updates skipped for invalid state."},
	}
	for _, ct := range counters {
		*ct.dst, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      ct.name,
			Help:      ct.help,
		}), ct.name)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector
func (c *SimCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler serves the gatherer in the Prometheus text format
func (c *SimCollector) Handler() http.Handler {
	gatherer := c.Gatherer()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveFrame records one step's duration and physics counters
func (c *SimCollector) ObserveFrame(d time.Duration, s physics.Stats) {
	if c == nil {
		return
	}
	c.FrameDuration.Observe(d.Seconds())
	c.Frames.Inc()
	c.Bodies.Set(float64(s.Bodies))
	c.Projectiles.Set(float64(s.Projectiles))
	c.Collisions.Add(float64(s.Collisions))
	c.ProjectileHits.Add(float64(s.ProjectileHits))
	c.Expired.Add(float64(s.Expired))
	c.Destroyed.Add(float64(s.Destroyed))
	c.Faults.Add(float64(s.Faults))
	c.Skipped.Add(float64(s.Skipped))
}

// StatusCollector exports every value of a status registry at scrape time
// Names are prefixed and dotted keys become underscores: combat.fired -> starfall_combat_fired
type StatusCollector struct {
	reg *status.Registry
}

// NewStatusCollector wraps reg for registration with Prometheus
func NewStatusCollector(reg *status.Registry) *StatusCollector {
	return &StatusCollector{reg: reg}
}

// Describe sends nothing; the metric set grows as components register keys
func (s *StatusCollector) Describe(chan<- *prometheus.Desc) {}

// Collect emits one untyped sample per registry key
func (s *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	if s == nil || s.reg == nil {
		return
	}
	for key, val := range s.reg.Snapshot() {
		desc := prometheus.NewDesc(MetricName(key), "Simulation status value "+key+".", nil, nil)
		m, err := prometheus.NewConstMetric(desc, prometheus.UntypedValue, val)
		if err != nil {
			ch <- prometheus.NewInvalidMetric(desc, err)
			continue
		}
		ch <- m
	}
}

// MetricName converts a status key into a Prometheus metric name
func MetricName(key string) string {
	var b strings.Builder
	b.WriteString(namespace)
	b.WriteByte('_')
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// RegisterStatus registers a StatusCollector for reg
// The collector is unchecked, so call it once per registerer
func RegisterStatus(r prometheus.Registerer, reg *status.Registry) error {
	if r == nil {
		r = prometheus.DefaultRegisterer
	}
	if err := r.Register(NewStatusCollector(reg)); err != nil {
		return fmt.Errorf("register status collector: %w", err)
	}
	return nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
