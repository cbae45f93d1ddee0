// Package metrics exposes BroadcastRing health over Prometheus, served on a
// small fiber app — the pack's HTTP framework of choice (e.g.
// _examples/go-arcade-arcade/internal/agent/router/router.go).
package metrics

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the counters/gauges this repo's demo wiring reports.
type Registry struct {
	Published prometheus.Counter
	ReaderLag *prometheus.GaugeVec
	Overruns  *prometheus.CounterVec

	reg       *prometheus.Registry
	published atomic.Int64
}

// Publish records one more enqueued item, both in the Prometheus counter
// (for /metrics scraping) and in a plain atomic counter the stats reporter
// can read back cheaply without talking to the Prometheus client.
func (r *Registry) Publish() {
	r.Published.Inc()
	r.published.Add(1)
}

// PublishedCount returns the running total recorded by Publish.
func (r *Registry) PublishedCount() int64 {
	return r.published.Load()
}

// NewRegistry builds a fresh Prometheus registry with seqring's metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seqring",
			Name:      "published_total",
			Help:      "Number of items the producer has enqueued.",
		}),
		ReaderLag: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "seqring",
			Name:      "reader_lag",
			Help:      "Producer write index minus a reader's read index.",
		}, []string{"reader_id"}),
		Overruns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seqring",
			Name:      "reader_overruns_total",
			Help:      "Count of observed version jumps greater than 2, per reader.",
		}, []string{"reader_id"}),
		reg: reg,
	}

	reg.MustRegister(r.Published, r.ReaderLag, r.Overruns)
	return r
}

// Server serves /metrics and /healthz on addr.
type Server struct {
	addr string
	app  *fiber.App
}

// NewServer builds the fiber app for reg, rooted at addr (e.g. ":9090").
func NewServer(addr string, reg *Registry) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "seqringd metrics",
		DisableStartupMessage: true,
	})
	app.Use(fiberrecover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	handler := promhttp.HandlerFor(reg.reg, promhttp.HandlerOpts{})
	app.Get("/metrics", adaptor.HTTPHandler(handler))

	return &Server{addr: addr, app: app}
}

// Run starts listening until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.app.Listen(s.addr) }()

	select {
	case <-ctx.Done():
		return s.app.ShutdownWithContext(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("metrics: listen %s: %w", s.addr, err)
		}
		return nil
	}
}
