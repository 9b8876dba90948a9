package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/notorious-go/semguard/internal/config"
	"github.com/notorious-go/semguard/internal/demo"
	"github.com/notorious-go/semguard/metric"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(cli.ErrWriter, err)
		cli.OsExiter(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "semdemo",
		Usage: "runs workers that share a bounded semaphore-guarded value",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "start the workers and wait for them to finish",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load settings from YAML `FILE`"},
					&cli.Uint64Flag{Name: "max", Usage: "maximum number of concurrent holders"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "number of workers"},
					&cli.DurationFlag{Name: "hold", Usage: "worker i holds its slot for i*`DURATION`"},
					&cli.DurationFlag{Name: "poll", Usage: "sleep between acquisition attempts"},
					&cli.BoolFlag{Name: "spin", Usage: "yield instead of sleeping between acquisition attempts"},
					&cli.StringFlag{Name: "metrics-addr", Usage: "serve Prometheus metrics on `ADDR`"},
				},
				Action: run,
			},
		},
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := cfg.Log.Build()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	d := demo.New(cfg, log.Named("demo"))

	if cfg.Metrics.Addr != "" {
		srv, err := serveMetrics(cfg.Metrics.Addr, d, log.Named("metrics"))
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err = d.Run(ctx)
	return err
}

func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("max") {
		cfg.Semaphore.Max = c.Uint64("max")
	}
	if c.IsSet("workers") {
		cfg.Demo.Workers = c.Int("workers")
	}
	if c.IsSet("hold") {
		cfg.Demo.HoldStep = c.Duration("hold")
	}
	if c.IsSet("poll") {
		cfg.Semaphore.PollInterval = c.Duration("poll")
	}
	if c.IsSet("spin") {
		cfg.Semaphore.Spin = c.Bool("spin")
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = c.String("metrics-addr")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serveMetrics(addr string, d *demo.Demo, log *zap.Logger) (*http.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	if err := metric.Register(reg, "semdemo", "", d.Semaphore()); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Bind before returning so a busy or malformed address fails the command.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return srv, nil
}
