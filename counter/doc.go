// Package counter provides the raw counting primitive underneath the
// semaphore package: an atomic count bounded by a fixed maximum, and a guard
// that holds one unit of that count until it is released.
//
// # Why This Package Exists
//
// A Counter does not carry any data and does not block. It answers a single
// question, "may one more holder proceed?", and hands out a [Guard] when the
// answer is yes. Everything else (wrapping a value, waiting for capacity) is
// built on top of it in the semaphore package.
//
// Unlike a buffered-channel semaphore, a Counter can be inspected and
// acquired without touching the scheduler at all. TryAcquire is a handful of
// atomic instructions, which makes it usable from hot paths where a channel
// send would be too heavy.
//
// # Guarantees
//
//   - The count is always within [0, max]. Acquisition uses a compare-and-swap
//     loop, so concurrent TryAcquire calls never overshoot max, not even
//     transiently.
//   - Every successful TryAcquire increments the count exactly once, and the
//     returned Guard decrements it exactly once no matter how many times
//     Release is called.
//   - A Counter with a max of zero is legal and permanently saturated.
//
// # Guard Discipline
//
// Go has no destructors, so releasing is explicit. The idiomatic pattern is to
// defer the release right after acquiring:
//
//	g, err := c.TryAcquire()
//	if err != nil {
//	    return err
//	}
//	defer g.Release()
//
// A Guard must not be copied (go vet reports copies) and should be released
// on the goroutine that acquired it. The package cannot enforce goroutine
// affinity; it is part of the contract.
//
// # Memory Ordering
//
// All loads and stores go through sequentially consistent atomics. Go does
// not expose weaker orderings, so AtMax and Count take no ordering argument:
// every observation already synchronizes with the acquire and release that
// produced it.
package counter
