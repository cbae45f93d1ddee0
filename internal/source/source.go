// Package source provides pluggable producer-side data sources for a
// ring.BroadcastRing[Tick], generalizing feeder/exchanges/*.go and
// feeder/binance/feeder.go from a hardcoded set of exchange feeds into a
// small Source interface with three concrete implementations.
package source

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Tick is the payload type this repo's demo ring carries: a single
// best-bid/best-ask style market update. It is a plain, trivially-copyable
// struct, as spec.md §3 requires of the ring's payload type.
type Tick struct {
	Symbol    [8]byte // fixed-size so Tick stays trivially copyable
	TimestampNs int64
	Bid       float64
	Ask       float64
}

// SymbolOf returns sym encoded into a fixed 8-byte Tick.Symbol field,
// truncating anything longer.
func SymbolOf(sym string) [8]byte {
	var out [8]byte
	copy(out[:], sym)
	return out
}

// Sink is the narrow interface a Source publishes into — satisfied by
// *ring.BroadcastRing[Tick].Enqueue.
type Sink interface {
	Enqueue(Tick)
}

// Source is the interface every producer-side feed implements, mirroring
// feeder/exchanges/base.go's Exchange interface.
type Source interface {
	Run(ctx context.Context, sink Sink) error
}

// ConnectFunc is one connection attempt's worth of work; RunConnectionLoop
// retries it with backoff until ctx is cancelled.
type ConnectFunc func(ctx context.Context) error

// RunConnectionLoop retries connect with a fixed backoff until ctx is done,
// ported from feeder/exchanges/base.go's RunConnectionLoop. logger may be
// nil; when set, each reconnect attempt is logged with name so multiple
// sources sharing one process log stream stay distinguishable.
func RunConnectionLoop(ctx context.Context, name string, backoff time.Duration, connect ConnectFunc, logger *zap.Logger) error {
	for {
		if err := connect(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if logger != nil {
				logger.Warn("source: connection lost, reconnecting", zap.String("source", name), zap.Error(err), zap.Duration("backoff", backoff))
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
}
