// Package semtest provides utilities for testing counting semaphores. It runs a
// set of [Holder]s concurrently and verifies that no more of them held a slot
// at the same time than the semaphore's capacity allows.
//
// # Example Usage
//
//	sem := semaphore.New("value", 2, semaphore.WithSpin())
//	holders := make([]semtest.Holder, 8)
//	for i := range holders {
//		holders[i] = semtest.Holder{
//			Token: fmt.Sprint(i),
//			Acquire: func() func() {
//				return sem.Get().Release
//			},
//		}
//	}
//	semtest.Test(t, sem.Max(), holders)
//
// The test fails if any holder never ran, or if the peak number of concurrent
// holders exceeded 2.
package semtest

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/notorious-go/semguard/metric"
)

// DefaultHold is how long a Holder keeps its slot when Hold is zero.
const DefaultHold = time.Millisecond

// Holder is one participant in a concurrent semaphore test.
type Holder struct {
	// Token is a unique identifier for this holder, used to report which
	// holders ran.
	Token string

	// Acquire takes a slot, blocking if necessary, and returns the function
	// that gives it back. The test framework calls the returned function
	// exactly once.
	Acquire func() (release func())

	// Hold is how long the slot is kept. Zero means DefaultHold.
	Hold time.Duration
}

// Test runs every holder on its own goroutine and verifies the capacity
// constraint.
//
// The function:
//
//   - Spawns a goroutine per holder in reverse order.
//   - Each goroutine acquires, records itself as active in a Peak, holds for
//     Holder.Hold, then leaves the Peak and releases.
//   - Verifies that every holder ran and that Peak.Max never exceeded max.
//
// Holders that have not yet started acquiring when the test's context is
// cancelled are reported as errors.
func Test(t *testing.T, max uint64, holders []Holder) {
	t.Helper()

	var (
		mu     sync.Mutex
		tokens []string
		peak   Peak
	)

	var wg sync.WaitGroup
	for _, h := range slices.Backward(holders) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case <-t.Context().Done():
				t.Errorf("test interrupted before holder %s could acquire", h.Token)
				return
			default:
			}

			release := h.Acquire()
			leave := peak.Enter()
			hold := h.Hold
			if hold == 0 {
				hold = DefaultHold
			}
			time.Sleep(hold)
			// Leave before releasing, so the next holder can't be counted while
			// this one is still registered.
			leave()
			release()

			mu.Lock()
			tokens = append(tokens, h.Token)
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, h := range holders {
		if !slices.Contains(tokens, h.Token) {
			t.Errorf("holder %v never acquired a slot", h.Token)
		}
	}
	if got := peak.Max(); got > int64(max) {
		t.Errorf("peak of %d concurrent holders exceeds max of %d", got, max)
	}
}

// Peak tracks the number of currently active holders and the highest number
// ever observed at once.
type Peak = metric.Peak
