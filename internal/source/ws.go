package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// WS streams BBO updates over a websocket, generalizing
// feeder/exchanges/hyperliquid.go / edgex.go from a single hardcoded
// exchange protocol into one that reads {"bid":"..","ask":".."} frames.
type WS struct {
	URL    string
	Symbol string
	Logger *zap.Logger
}

type wsQuote struct {
	Bid string `json:"bid"`
	Ask string `json:"ask"`
}

func (w *WS) Run(ctx context.Context, sink Sink) error {
	return RunConnectionLoop(ctx, "ws", 3*time.Second, func(ctx context.Context) error {
		return w.connect(ctx, sink)
	}, w.Logger)
}

func (w *WS) connect(ctx context.Context, sink Sink) error {
	c, _, err := websocket.Dial(ctx, w.URL, nil)
	if err != nil {
		return fmt.Errorf("ws: dial %s: %w", w.URL, err)
	}
	defer c.CloseNow()

	if w.Logger != nil {
		w.Logger.Info("ws: connected", zap.String("url", w.URL))
	}

	sym := SymbolOf(w.Symbol)
	for {
		var q wsQuote
		if err := wsjson.Read(ctx, c, &q); err != nil {
			return fmt.Errorf("ws: read: %w", err)
		}

		bid, err := strconv.ParseFloat(q.Bid, 64)
		if err != nil {
			continue
		}
		ask, err := strconv.ParseFloat(q.Ask, 64)
		if err != nil {
			continue
		}

		sink.Enqueue(Tick{
			Symbol:      sym,
			TimestampNs: time.Now().UnixNano(),
			Bid:         bid,
			Ask:         ask,
		})
	}
}
