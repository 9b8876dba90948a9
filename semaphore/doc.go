// Package semaphore provides a counting semaphore that guards a value, allowing
// up to a fixed number of goroutines to read it at the same time.
//
// # Why This Package Exists
//
// A [sync.RWMutex] admits any number of readers and exactly one writer. Some
// resources need the opposite trade-off: a bounded number of concurrent users
// and no writers at all while they hold it. Think of a shared client whose
// backend accepts only N concurrent requests, or a pool of slots that is
// described by a single configuration value.
//
// Semaphore pairs such a value with a [counter.Counter]. Each successful
// acquisition yields a [Guard] that exposes the value read-only and returns
// its slot to the counter when released. At most max guards exist at once.
//
// # Differences From a Lock
//
//   - Guards never hand out a pointer to the value, only a copy. There is no
//     write path through a guard.
//   - Up to max guards may be held simultaneously, not just one.
//   - Mutating the value requires exclusive ownership of the Semaphore itself
//     (see [Semaphore.GetMut]), which is a caller obligation rather than
//     something a guard can grant.
//
// # When NOT to Use This Package
//
// This is a deliberately simple primitive for low-contention, short-hold
// workloads. Look elsewhere if you need:
//
//   - Fair (FIFO) admission of blocked callers: use a buffered channel.
//   - Context cancellation or deadlines on the blocking path: use a buffered
//     channel with select, or golang.org/x/sync/semaphore.
//   - Weighted acquisition: use golang.org/x/sync/semaphore.
//   - Wake-up notification instead of polling: use a sync.Cond based design.
//
// # Design Trade-offs
//
//   - Polling: [Semaphore.Get] retries [Semaphore.TryGet] and pauses between
//     attempts, by default sleeping 50ms. There is no wait queue, so latency
//     is bounded by the poll interval and not by arrival order.
//   - No context support: keeps the API small. Wrap Get yourself if you need a
//     timeout, or poll TryGet.
//   - Exactly-once release: releasing a guard twice is a no-op, so deferring
//     Release is always safe.
//
// # Zero Capacity
//
// A Semaphore with a max of zero never admits anyone. Constructing one is not
// an error, except in builds with the semdebug tag where New panics to catch
// the mistake early. Calling Get on such a semaphore always panics, because it
// would otherwise loop forever.
package semaphore
