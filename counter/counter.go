package counter

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"
)

// ErrAtMaxCount is returned by TryAcquire when the counter already admits its
// maximum number of holders.
var ErrAtMaxCount = errors.New("already at maximum count")

// Counter is an atomic count with a fixed upper bound.
//
// The zero Counter has a max of zero and never admits anyone; use New.
// A Counter must not be copied after first use.
type Counter struct {
	_     noCopy
	count atomic.Uint64
	max   uint64
}

// New creates a counter that admits at most max concurrent holders.
//
// A max of zero is accepted, but such a counter is permanently saturated.
func New(max uint64) *Counter {
	return &Counter{max: max}
}

// Max returns the capacity the counter was created with.
func (c *Counter) Max() uint64 {
	return c.max
}

// Count returns the number of guards currently outstanding.
func (c *Counter) Count() uint64 {
	return c.count.Load()
}

// AtMax reports whether the counter is saturated.
func (c *Counter) AtMax() bool {
	return c.count.Load() >= c.max
}

// String returns a human-readable representation of the counter's state in
// the "Counter(count/max)" format.
func (c *Counter) String() string {
	return fmt.Sprintf("Counter(%v/%v)", c.Count(), c.max)
}

// TryAcquire attempts to take one unit of the count without blocking.
//
// On success it returns a Guard that must be released exactly once. When the
// counter is saturated it returns ErrAtMaxCount and leaves the count
// untouched.
//
// The increment is a compare-and-swap loop rather than a check followed by an
// add, so racing callers can never push the count above max. The loop only
// retries when another goroutine changed the count in between; it never waits
// for capacity.
func (c *Counter) TryAcquire() (*Guard, error) {
	for {
		n := c.count.Load()
		if n >= c.max {
			return nil, ErrAtMaxCount
		}
		if c.count.CompareAndSwap(n, n+1) {
			return &Guard{counter: c}, nil
		}
	}
}

func (c *Counter) release() {
	for {
		n := c.count.Load()
		if n == 0 {
			// Guards release at most once, so this only happens if the count was
			// corrupted. The count is left at zero.
			panic("counter: unbalanced release")
		}
		if c.count.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Guard represents one held unit of a Counter.
//
// Guards are created by Counter.TryAcquire and returned as pointers. They must
// not be copied, and should be released on the goroutine that acquired them.
type Guard struct {
	_        noCopy
	counter  *Counter
	released atomic.Bool
}

// Release returns the unit to the counter.
//
// Only the first call decrements the count; subsequent calls are no-ops. This
// makes it safe to both defer Release and call it early on a fast path.
//
// Calling Release on a nil Guard is a no-op, which allows deferring it before
// checking the error from TryAcquire.
func (g *Guard) Release() {
	if g == nil {
		return
	}
	if g.released.CompareAndSwap(false, true) {
		g.counter.release()
	}
}

// Released reports whether Release has been called.
func (g *Guard) Released() bool {
	return g == nil || g.released.Load()
}

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527 for details.
//
// go vet's copylocks checker recognizes the Lock and Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
