package metric

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeak(t *testing.T) {
	var p Peak
	leave1 := p.Enter()
	leave2 := p.Enter()
	assert.Equal(t, int64(2), p.Active())
	leave1()
	leave3 := p.Enter()
	assert.Equal(t, int64(2), p.Max())
	leave2()
	leave3()
	assert.Equal(t, int64(0), p.Active())
	assert.Equal(t, int64(2), p.Max())
}

func TestPeakConcurrent(t *testing.T) {
	var (
		p  Peak
		wg sync.WaitGroup
	)
	start := make(chan struct{})
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			p.Enter()()
		}()
	}
	close(start)
	wg.Wait()
	assert.Equal(t, int64(0), p.Active())
	assert.GreaterOrEqual(t, p.Max(), int64(1))
	assert.LessOrEqual(t, p.Max(), int64(16))
}
