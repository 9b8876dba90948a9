package metric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notorious-go/semguard/counter"
	"github.com/notorious-go/semguard/semaphore"
)

func TestRegisterCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := counter.New(2)
	require.NoError(t, Register(reg, "any.app", "", c))

	g1, err := c.TryAcquire()
	require.NoError(t, err)
	defer g1.Release()

	expected := `
# HELP any_app_semaphore_capacity maximum number of concurrent guards
# TYPE any_app_semaphore_capacity gauge
any_app_semaphore_capacity 2
# HELP any_app_semaphore_in_use number of guards currently held
# TYPE any_app_semaphore_in_use gauge
any_app_semaphore_in_use 1
# HELP any_app_semaphore_saturated 1 if no more guards can be acquired
# TYPE any_app_semaphore_saturated gauge
any_app_semaphore_saturated 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))

	g2, err := c.TryAcquire()
	require.NoError(t, err)
	defer g2.Release()

	n, err := testutil.GatherAndCount(reg, "any_app_semaphore_saturated")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "any_app_semaphore_saturated" {
			assert.Equal(t, float64(1), mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestRegisterSemaphore(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := semaphore.New("pool", 3)
	require.NoError(t, Register(reg, "demo", "pool.slots", s))

	g := s.Get()
	defer g.Release()

	n, err := testutil.GatherAndCount(reg,
		"demo_pool_slots_in_use",
		"demo_pool_slots_capacity",
		"demo_pool_slots_saturated",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRegisterDuplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg, "demo", "", counter.New(1)))
	assert.Error(t, Register(reg, "demo", "", counter.New(1)))
}

func TestRegisterConflictLeavesNoGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	taken := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "demo",
		Subsystem: "semaphore",
		Name:      "capacity",
		Help:      "registered by someone else",
	})
	require.NoError(t, reg.Register(taken))

	require.Error(t, Register(reg, "demo", "", counter.New(1)))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Equal(t, []string{"demo_semaphore_capacity"}, names)

	// Once the conflict is gone, registering succeeds.
	require.True(t, reg.Unregister(taken))
	assert.NoError(t, Register(reg, "demo", "", counter.New(1)))
}

func TestRegisterNil(t *testing.T) {
	assert.NoError(t, Register(nil, "demo", "", counter.New(1)))
}
