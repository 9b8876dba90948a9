package semtest

import (
	"flag"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// chanHolders returns holders that share a buffered-channel semaphore of the
// given capacity.
func chanHolders(n, capacity int) []Holder {
	sem := make(chan struct{}, capacity)
	holders := make([]Holder, n)
	for i := range holders {
		holders[i] = Holder{
			Token: fmt.Sprint(i),
			Acquire: func() func() {
				sem <- struct{}{}
				return func() { <-sem }
			},
		}
	}
	return holders
}

func TestBoundedHolders(t *testing.T) {
	// A buffered channel is a correct semaphore, so calling semtest.Test is the
	// actual test: it fails if the harness itself misreports the peak.
	Test(t, 2, chanHolders(10, 2))
}

func TestSingleSlot(t *testing.T) {
	Test(t, 1, chanHolders(5, 1))
}

var xfail = flag.Bool("xfail", false, "run tests that are expected to fail")

func TestUnboundedHolders(t *testing.T) {
	// This test is expected to fail, so skip it unless explicitly requested with
	// the -xfail flag.
	if !*xfail {
		t.Skip("Skipping test that is expected to fail; use -xfail to run it")
	}

	// Every holder gets in at once, so the peak is well above the declared max.
	holders := make([]Holder, 8)
	for i := range holders {
		holders[i] = Holder{
			Token:   fmt.Sprint(i),
			Acquire: func() func() { return func() {} },
			Hold:    20 * time.Millisecond,
		}
	}
	Test(t, 1, holders)
}

func TestPeakAlias(t *testing.T) {
	var p Peak
	leave := p.Enter()
	assert.Equal(t, int64(1), p.Active())
	leave()
	assert.Equal(t, int64(1), p.Max())
}
