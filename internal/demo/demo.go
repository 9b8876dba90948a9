// Package demo runs the semdemo harness: a group of workers sharing one
// semaphore-guarded value, each blocking until it gets a slot, holding it for
// a while, and releasing it.
package demo

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notorious-go/semguard/internal/config"
	"github.com/notorious-go/semguard/metric"
	"github.com/notorious-go/semguard/semaphore"
)

// Demo owns the shared semaphore and the workers' settings. A Demo is meant
// to be run once.
type Demo struct {
	cfg  config.Config
	log  *zap.Logger
	sem  *semaphore.Semaphore[string]
	peak metric.Peak
}

// Report summarizes a finished run.
type Report struct {
	Workers int
	// Peak is the highest number of workers that held a slot at once. Workers
	// report themselves, so it does not depend on the semaphore's own count.
	Peak int64
}

// New creates a demo whose semaphore guards cfg.Demo.Value with
// cfg.Semaphore.Max slots.
func New(cfg config.Config, log *zap.Logger) *Demo {
	var opts []semaphore.Option
	if cfg.Semaphore.Spin {
		opts = append(opts, semaphore.WithSpin())
	} else {
		opts = append(opts, semaphore.WithPollInterval(cfg.Semaphore.PollInterval))
	}
	return &Demo{
		cfg: cfg,
		log: log,
		sem: semaphore.New(cfg.Demo.Value, cfg.Semaphore.Max, opts...),
	}
}

// Semaphore returns the semaphore shared by the workers.
func (d *Demo) Semaphore() *semaphore.Semaphore[string] {
	return d.sem
}

// Run starts the workers and waits for all of them. Worker i holds its slot
// for i*HoldStep. Cancelling ctx cuts holds short, but a worker already
// blocked in Get keeps polling until it gets a slot.
func (d *Demo) Run(ctx context.Context) (Report, error) {
	d.log.Info("starting demo",
		zap.Int("workers", d.cfg.Demo.Workers),
		zap.Uint64("max", d.sem.Max()),
		zap.Duration("holdStep", d.cfg.Demo.HoldStep),
	)
	g, ctx := errgroup.WithContext(ctx)
	for i := range d.cfg.Demo.Workers {
		g.Go(func() error {
			return d.work(ctx, i)
		})
	}
	err := g.Wait()
	report := Report{Workers: d.cfg.Demo.Workers, Peak: d.peak.Max()}
	if err != nil {
		d.log.Warn("demo interrupted", zap.Error(err))
		return report, err
	}
	d.log.Info("demo finished", zap.Int64("peak", report.Peak))
	return report, nil
}

func (d *Demo) work(ctx context.Context, i int) error {
	guard := d.sem.Get()
	defer guard.Release()
	// Deferred calls run in reverse, so the worker leaves before releasing.
	defer d.peak.Enter()()

	log := d.log.With(zap.Int("worker", i))
	log.Info("acquired", zap.String("value", guard.Value()), zap.Stringer("semaphore", d.sem))

	hold := time.Duration(i) * d.cfg.Demo.HoldStep
	if hold > 0 {
		t := time.NewTimer(hold)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Debug("releasing", zap.Duration("held", hold))
	return nil
}
