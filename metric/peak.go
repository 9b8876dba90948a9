package metric

import "go.uber.org/atomic"

// Peak tracks how many holders are active right now and the highest number
// ever active at once. It is fed by the holders themselves, independently of
// the counter they acquire from. The zero Peak is ready to use.
type Peak struct {
	active atomic.Int64
	max    atomic.Int64
}

// Enter registers an active holder and returns the function that
// unregisters it. The returned function must be called exactly once.
func (p *Peak) Enter() (leave func()) {
	n := p.active.Inc()
	for {
		m := p.max.Load()
		if n <= m || p.max.CompareAndSwap(m, n) {
			break
		}
	}
	return func() { p.active.Dec() }
}

// Active returns the number of holders currently registered.
func (p *Peak) Active() int64 {
	return p.active.Load()
}

// Max returns the highest number of holders that were registered at once.
func (p *Peak) Max() int64 {
	return p.max.Load()
}
