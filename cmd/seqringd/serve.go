package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alephtx/seqring/internal/config"
	"github.com/alephtx/seqring/internal/filter"
	"github.com/alephtx/seqring/internal/logging"
	"github.com/alephtx/seqring/internal/metrics"
	"github.com/alephtx/seqring/internal/source"
	"github.com/alephtx/seqring/ring"
)

func runServe(_ *cobra.Command, _ []string) error {
	path := configPath
	if p := os.Getenv("SEQRING_CONFIG"); p != "" {
		path = p
	}

	logger := logging.Must(logging.Config{Level: logLevel})
	defer logger.Sync()

	watcher, err := config.NewWatcher(path, logger)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer watcher.Close()
	cfg := watcher.Current()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r, err := buildRing(cfg)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()

	var pred *filter.Predicate
	if cfg.Filter.Expression != "" {
		pred, err = filter.NewPredicate(cfg.Filter.Expression)
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		src := buildSource(cfg, logger)
		logger.Info("source: starting", zap.String("kind", cfg.Source.Kind))
		if err := src.Run(ctx, enqueueFunc(func(t source.Tick) {
			r.Enqueue(t)
			reg.Publish()
		})); err != nil && err != context.Canceled {
			logger.Error("source stopped", zap.Error(err))
		}
	}()

	for i := 0; i < cfg.Ring.ReaderCount; i++ {
		readerID := ulid.Make().String()
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			runReader(ctx, r, pred, reg, id)
		}(readerID)
	}

	if cfg.Metric.Enabled {
		srv := metrics.NewServer(cfg.Metric.Addr, reg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("metrics: serving", zap.String("addr", cfg.Metric.Addr))
	}

	reporter := cron.New()
	var lastPublished int64
	if err := reporter.AddFunc("@every 5s", func() {
		current := reg.PublishedCount()
		rate := float64(current-lastPublished) / 5
		lastPublished = current
		logger.Info("stats", zap.Int64("published_total", current), zap.Float64("rate_per_sec", rate))
	}); err != nil {
		logger.Warn("stats reporter: failed to schedule", zap.Error(err))
	} else {
		reporter.Start()
		defer reporter.Stop()
	}

	wg.Wait()
	logger.Info("seqringd: stopped")
	return nil
}

type enqueueFunc func(source.Tick)

func (f enqueueFunc) Enqueue(t source.Tick) { f(t) }

func buildRing(cfg config.Config) (*ring.BroadcastRing[source.Tick], error) {
	var opts []ring.Option
	if cfg.Ring.CacheLineIsolation {
		opts = append(opts, ring.WithCacheLineIsolation())
	}
	if cfg.Ring.ByteAtomicPayload {
		opts = append(opts, ring.WithByteAtomicPayload())
	}
	return ring.NewBroadcastRing[source.Tick](cfg.Ring.Capacity, opts...)
}

func buildSource(cfg config.Config, logger *zap.Logger) source.Source {
	interval, err := time.ParseDuration(cfg.Source.PollInterval)
	if err != nil {
		interval = 100 * time.Millisecond
	}

	switch cfg.Source.Kind {
	case "rest":
		return &source.REST{URL: cfg.Source.URL, Symbol: "BTC", PollInterval: interval, Logger: logger}
	case "ws":
		return &source.WS{URL: cfg.Source.URL, Symbol: "BTC", Logger: logger}
	default:
		return source.NewMock("BTC", 63100.0, interval)
	}
}

func runReader(ctx context.Context, r *ring.BroadcastRing[source.Tick], pred *filter.Predicate, reg *metrics.Registry, id string) {
	raw := r.MakeReader()
	reader := filter.NewFilteredReader(readerAdapter{raw}, pred)

	var lastVersion int64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if _, ok := reader.ReadNext(); ok {
			observed := raw.LastVersion()
			if lastVersion != 0 && observed > lastVersion+2 {
				reg.Overruns.WithLabelValues(id).Inc()
			}
			lastVersion = observed
			reg.ReaderLag.WithLabelValues(id).Set(float64(r.WriteIndex() - raw.ReadIndex()))
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Millisecond):
		}
	}
}

type readerAdapter struct {
	r *ring.Reader[source.Tick]
}

func (a readerAdapter) ReadNext() (source.Tick, bool) { return a.r.ReadNext() }
