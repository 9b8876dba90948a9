package semaphore

import (
	"runtime"
	"time"
)

const defaultPollInterval = 50 * time.Millisecond

// pauser is called by Get between two failed acquisition attempts.
type pauser func()

func sleeper(d time.Duration) pauser {
	return func() { time.Sleep(d) }
}

type options struct {
	pollInterval time.Duration
	spin         bool
}

func (o options) pause() pauser {
	if o.spin {
		return runtime.Gosched
	}
	return sleeper(o.pollInterval)
}

// Option configures a Semaphore.
type Option func(*options)

// WithPollInterval makes Get sleep for d between acquisition attempts.
// Non-positive durations fall back to the default of 50ms.
func WithPollInterval(d time.Duration) Option {
	if d <= 0 {
		d = defaultPollInterval
	}
	return func(o *options) {
		o.pollInterval = d
		o.spin = false
	}
}

// WithSpin makes Get yield the processor with runtime.Gosched between
// attempts instead of sleeping. This trades CPU for latency and suits very
// short hold times.
func WithSpin() Option {
	return func(o *options) {
		o.spin = true
	}
}
