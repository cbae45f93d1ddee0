// Package config loads and hot-reloads the seqringd TOML configuration,
// generalizing feeder/config/config.go (pelletier/go-toml/v2) with the
// fsnotify-driven reload pattern used in
// _examples/go-arcade-arcade/internal/engine/config/config.go.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// Config is the seqringd runtime configuration.
type Config struct {
	Ring   RingConfig   `toml:"ring"`
	Source SourceConfig `toml:"source"`
	Filter FilterConfig `toml:"filter"`
	Metric MetricConfig `toml:"metrics"`
}

// RingConfig controls the BroadcastRing's construction-time parameters.
type RingConfig struct {
	Capacity           int  `toml:"capacity"`
	CacheLineIsolation bool `toml:"cache_line_isolation"`
	ByteAtomicPayload  bool `toml:"byte_atomic_payload"`
	ReaderCount        int  `toml:"reader_count"`
}

// SourceConfig selects and configures the producer-side data source.
type SourceConfig struct {
	Kind         string `toml:"kind"` // "mock", "rest", "ws"
	URL          string `toml:"url"`
	PollInterval string `toml:"poll_interval"` // parsed with time.ParseDuration
}

// FilterConfig holds the optional expr-lang consumer-side predicate.
type FilterConfig struct {
	Expression string `toml:"expression"`
}

// MetricConfig controls the Prometheus/fiber metrics server.
type MetricConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// SetDefaults fills in zero-valued fields with sane defaults, matching the
// pack's SetDefaults convention (e.g. go-arcade-arcade/pkg/metrics.MetricsConfig).
func (c *Config) SetDefaults() {
	if c.Ring.Capacity == 0 {
		c.Ring.Capacity = 1024
	}
	if c.Ring.ReaderCount == 0 {
		c.Ring.ReaderCount = 2
	}
	if c.Source.Kind == "" {
		c.Source.Kind = "mock"
	}
	if c.Source.PollInterval == "" {
		c.Source.PollInterval = "100ms"
	}
	if c.Metric.Addr == "" {
		c.Metric.Addr = ":9090"
	}
}

// Load reads and parses a TOML file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.SetDefaults()
	return &c, nil
}

// Watcher hot-reloads a loaded Config on file change: every section except
// [ring] is replaced by the new file's contents, leaving structural ring
// parameters (capacity, isolation, payload policy) untouched — those only
// take effect at the next process start, since BroadcastRing has no
// dynamic-resizing support (spec.md §1, Non-goals).
type Watcher struct {
	path   string
	logger *zap.Logger

	mu  sync.RWMutex
	cur *Config

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher starts watching path for changes and returns a Watcher seeded
// with the initial parse of the file.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: new watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    path,
		logger:  logger,
		cur:     cfg,
		watcher: fsw,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	next, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.cur
	// Structural ring parameters cannot change after construction; keep the
	// ones the ring was actually built with.
	next.Ring = prev.Ring
	w.cur = next
	w.mu.Unlock()

	w.logger.Info("config reloaded",
		zap.String("source.poll_interval", next.Source.PollInterval),
		zap.String("filter.expression", next.Filter.Expression),
	)
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return *w.cur
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
