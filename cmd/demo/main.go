package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/yourusername/gatelimit/metrics"
	"github.com/yourusername/gatelimit/pkg/gatelimit"
)

func main() {
	rate := flag.Int("rate", 1000, "tokens generated per second")
	capacity := flag.Int64("capacity", 0, "bucket capacity (0 = same as rate)")
	mode := flag.String("mode", "blocking", "acquisition mode: blocking, failfast, optimistic")
	iterations := flag.Int("n", 100, "number of acquisitions to attempt")
	interval := flag.Duration("interval", 100*time.Microsecond, "pause between acquisitions")
	redisAddr := flag.String("redis", "", "publish metrics snapshots to this Redis address (optional)")
	flag.Parse()

	m, err := gatelimit.ParseMode(*mode)
	if err != nil {
		slog.Error("invalid mode", "mode", *mode, "err", err)
		os.Exit(1)
	}

	collector := metrics.New()

	opts := []gatelimit.Option{
		gatelimit.WithRate(*rate),
		gatelimit.WithMode(m),
		gatelimit.WithMetrics(collector),
	}
	if *capacity > 0 {
		opts = append(opts, gatelimit.WithCapacity(*capacity))
	}

	limiter, err := gatelimit.New(opts...)
	if err != nil {
		slog.Error("failed to create limiter", "err", err)
		os.Exit(1)
	}

	slog.Info("limiter ready",
		"mode", limiter.Mode().String(),
		"rate", limiter.Rate(),
		"capacity", limiter.Capacity(),
		"period", limiter.Period())

	if *redisAddr != "" {
		publisher := metrics.NewPublisher(collector, metrics.PublisherConfig{
			Addr:     *redisAddr,
			Interval: 1 * time.Second,
		})
		if err := publisher.Ping(); err != nil {
			slog.Warn("redis unreachable, snapshots disabled", "addr", *redisAddr, "err", err)
		} else {
			stop := publisher.Start()
			defer stop()
			slog.Info("publishing metrics snapshots", "addr", *redisAddr)
		}
	}

	start := time.Now()
	for i := 0; i < *iterations; i++ {
		admitted := limiter.Acquire()
		if !admitted {
			slog.Debug("denied", "iteration", i)
		}
		time.Sleep(*interval)
	}

	snapshot := collector.GetSnapshot()
	slog.Info("done",
		"elapsed", time.Since(start),
		"total", snapshot.TotalRequests,
		"admitted", snapshot.Admitted,
		"denied", snapshot.Denied,
		"wait_cycles", snapshot.WaitCycles)
}
