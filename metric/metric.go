// Package metric exports the state of counters and semaphores to Prometheus.
package metric

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Observable is implemented by *counter.Counter and *semaphore.Semaphore.
type Observable interface {
	Count() uint64
	Max() uint64
	AtMax() bool
}

// Register adds the in_use, capacity and saturated gauges for o to reg.
// Dots in namespace and subsystem are replaced with underscores. A nil
// registerer is a no-op.
func Register(reg prometheus.Registerer, namespace, subsystem string, o Observable) error {
	if reg == nil {
		return nil
	}
	if subsystem == "" {
		subsystem = "semaphore"
	}
	namespace = strings.ReplaceAll(namespace, ".", "_")
	subsystem = strings.ReplaceAll(subsystem, ".", "_")

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "in_use",
			Help:      "number of guards currently held",
		}, func() float64 {
			return float64(o.Count())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "capacity",
			Help:      "maximum number of concurrent guards",
		}, func() float64 {
			return float64(o.Max())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "saturated",
			Help:      "1 if no more guards can be acquired",
		}, func() float64 {
			if o.AtMax() {
				return 1
			}
			return 0
		}),
	}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			// Leave the registry as it was: no gauge may outlive a failed call.
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			return err
		}
	}
	return nil
}
