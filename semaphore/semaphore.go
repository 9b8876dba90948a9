package semaphore

import (
	"fmt"

	"github.com/notorious-go/semguard/counter"
)

// ErrAtMaxCount is returned by TryGet when the semaphore already has its
// maximum number of outstanding guards. It is the same value as
// counter.ErrAtMaxCount.
var ErrAtMaxCount = counter.ErrAtMaxCount

// Semaphore allows up to max goroutines to hold a read-only view of a value.
//
// A Semaphore is safe for concurrent use. It must not be copied after first
// use.
type Semaphore[T any] struct {
	_     noCopy
	raw   *counter.Counter
	pause pauser
	data  T
}

// New creates a semaphore around value that admits at most max concurrent
// guards.
//
// A max of zero produces a semaphore that can never be acquired. That is almost
// always a mistake; builds with the semdebug tag panic here to surface it.
func New[T any](value T, max uint64, opts ...Option) *Semaphore[T] {
	if debugAssertions && max == 0 {
		panic("semaphore: a semaphore with a max of 0 is generally useless")
	}
	o := options{pollInterval: defaultPollInterval}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Semaphore[T]{
		raw:   counter.New(max),
		pause: o.pause(),
		data:  value,
	}
}

// String returns a human-readable representation of the semaphore's state in
// the "Semaphore(count/max)" format.
func (s *Semaphore[T]) String() string {
	return fmt.Sprintf("Semaphore(%v/%v)", s.raw.Count(), s.raw.Max())
}

// AtMax reports whether the semaphore currently has max outstanding guards.
func (s *Semaphore[T]) AtMax() bool {
	return s.raw.AtMax()
}

// Count returns the number of outstanding guards.
func (s *Semaphore[T]) Count() uint64 {
	return s.raw.Count()
}

// Max returns the capacity the semaphore was created with.
func (s *Semaphore[T]) Max() uint64 {
	return s.raw.Max()
}

// TryGet attempts to acquire a guard without blocking.
//
// It returns ErrAtMaxCount if the semaphore is saturated.
func (s *Semaphore[T]) TryGet() (*Guard[T], error) {
	raw, err := s.raw.TryAcquire()
	if err != nil {
		return nil, err
	}
	return &Guard[T]{raw: raw, data: &s.data}, nil
}

// Get blocks until a guard can be acquired.
//
// Get polls TryGet and pauses between attempts according to the configured
// strategy (see WithPollInterval and WithSpin). It gives no ordering guarantee
// among concurrent callers: whichever poll lands on free capacity wins.
//
// Get panics if the semaphore's max is zero, since it would loop forever.
func (s *Semaphore[T]) Get() *Guard[T] {
	if s.raw.Max() == 0 {
		panic("semaphore: Get on a semaphore with a max of 0 would loop forever")
	}
	for {
		if g, err := s.TryGet(); err == nil {
			return g
		}
		s.pause()
	}
}

// GetMut returns a pointer to the guarded value, bypassing the counter.
//
// The caller must have exclusive ownership of the semaphore: no guard may be
// outstanding and no other goroutine may acquire one while the pointer is in
// use. Go cannot check this, so it is the caller's obligation.
func (s *Semaphore[T]) GetMut() *T {
	return &s.data
}

// IntoInner returns the guarded value.
//
// It does not look at the count. All guards must have been released before,
// and the semaphore should not be used afterwards.
func (s *Semaphore[T]) IntoInner() T {
	return s.data
}

// Guard is a read-only view of a Semaphore's value that holds one slot.
//
// Guards must be released exactly once; extra calls to Release are no-ops.
// A Guard should be released on the goroutine that acquired it, and must not
// be used after release.
type Guard[T any] struct {
	raw  *counter.Guard
	data *T
}

// Value returns a copy of the guarded value.
//
// If T contains pointers, maps or slices, the copy shares their backing data.
// Treat it as read-only; mutation is reserved for Semaphore.GetMut.
func (g *Guard[T]) Value() T {
	return *g.data
}

// Release returns the guard's slot to the semaphore. Calling Release on a nil
// Guard is a no-op.
func (g *Guard[T]) Release() {
	if g == nil {
		return
	}
	g.raw.Release()
}

// Released reports whether the guard has been released.
func (g *Guard[T]) Released() bool {
	return g == nil || g.raw.Released()
}

// noCopy may be embedded into structs which must not be copied after first
// use. go vet's copylocks checker recognizes the Lock and Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
