package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/status"
)

func TestObserveFrame(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSimCollector(reg)
	require.NoError(t, err)

	c.ObserveFrame(2*time.Millisecond, physics.Stats{Bodies: 4, Projectiles: 2, Collisions: 1, ProjectileHits: 3})
	c.ObserveFrame(3*time.Millisecond, physics.Stats{Bodies: 3, Collisions: 2, Faults: 1})

	assert.Equal(t, 3.0, testutil.ToFloat64(c.Bodies))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Projectiles))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Collisions))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.ProjectileHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Faults))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Frames))
	assert.Equal(t, uint64(2), histogramSampleCount(t, reg, "starfall_frame_duration_seconds"))
}

func TestNewSimCollectorReusesRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSimCollector(reg)
	require.NoError(t, err)
	second, err := NewSimCollector(reg)
	require.NoError(t, err)

	first.Collisions.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Collisions))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *SimCollector
	c.ObserveFrame(time.Millisecond, physics.Stats{})
	assert.Nil(t, c.Gatherer())
}

func TestStatusCollector(t *testing.T) {
	st := status.NewRegistry()
	st.Ints.Get("combat.fired").Store(7)
	st.Floats.Get("engine.fps").Set(59.5)

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterStatus(reg, st))

	expected := `
# HELP starfall_combat_fired Simulation status value combat.fired.
# TYPE starfall_combat_fired untyped
starfall_combat_fired 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "starfall_combat_fired"))

	st.Ints.Get("combat.fired").Add(1)
	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		values[mf.GetName()] = mf.GetMetric()[0].GetUntyped().GetValue()
	}
	assert.Equal(t, 8.0, values["starfall_combat_fired"])
	assert.Equal(t, 59.5, values["starfall_engine_fps"])
}

func TestMetricName(t *testing.T) {
	assert.Equal(t, "starfall_combat_effects_dropped", MetricName("combat.effects_dropped"))
	assert.Equal(t, "starfall_lod_changes", MetricName("lod.changes"))
	assert.Equal(t, "starfall_a_b", MetricName("a-b"))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewSimCollector(reg)
	require.NoError(t, err)
	c.ObserveFrame(time.Millisecond, physics.Stats{Bodies: 5})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "starfall_bodies 5")
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string) uint64 {
	t.Helper()
	families, err := gatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_HISTOGRAM {
			continue
		}
		for _, m := range mf.GetMetric() {
			return m.GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("histogram %s not found", name)
	return 0
}
