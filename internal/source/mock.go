package source

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Mock generates a realistic random-walk BBO stream, ported from
// feeder/exchanges/mock.go for the case where no real upstream is
// configured.
type Mock struct {
	Symbol       string
	BasePrice    float64
	PollInterval time.Duration
}

// NewMock builds a Mock source for symbol starting at basePrice. A
// non-positive pollInterval defaults to 100ms.
func NewMock(symbol string, basePrice float64, pollInterval time.Duration) *Mock {
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	return &Mock{Symbol: symbol, BasePrice: basePrice, PollInterval: pollInterval}
}

func (m *Mock) Run(ctx context.Context, sink Sink) error {
	mid := m.BasePrice
	ticker := time.NewTicker(m.PollInterval)
	defer ticker.Stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sym := SymbolOf(m.Symbol)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			mid += mid * (rng.Float64() - 0.5) * 0.0002
			spread := mid * 0.0001
			bid := math.Round((mid-spread/2)*100) / 100
			ask := math.Round((mid+spread/2)*100) / 100

			sink.Enqueue(Tick{
				Symbol:      sym,
				TimestampNs: time.Now().UnixNano(),
				Bid:         bid,
				Ask:         ask,
			})
		}
	}
}
