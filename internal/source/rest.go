package source

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// REST polls a JSON REST endpoint for BBO quotes. The teacher's own
// exchange clients are all WS-only; this implementation is grounded on the
// pack's resty usage instead (e.g. go-arcade-arcade's pkg/http/http_client.go
// and internal/pkg/executor/http_executor.go), giving seqringd a second
// producer-side source kind alongside WS.
type REST struct {
	URL          string
	Symbol       string
	PollInterval time.Duration
	Logger       *zap.Logger

	client *resty.Client
}

type restQuote struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

func (r *REST) Run(ctx context.Context, sink Sink) error {
	if r.client == nil {
		r.client = resty.New().SetTimeout(5 * time.Second)
	}
	if r.PollInterval <= 0 {
		r.PollInterval = time.Second
	}

	sym := SymbolOf(r.Symbol)
	ticker := time.NewTicker(r.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var q restQuote
			resp, err := r.client.R().SetContext(ctx).SetResult(&q).Get(r.URL)
			if err != nil {
				if r.Logger != nil {
					r.Logger.Warn("rest: poll failed", zap.Error(err))
				}
				continue
			}
			if resp.IsError() {
				if r.Logger != nil {
					r.Logger.Warn("rest: poll returned error status", zap.Int("status", resp.StatusCode()))
				}
				continue
			}

			sink.Enqueue(Tick{
				Symbol:      sym,
				TimestampNs: time.Now().UnixNano(),
				Bid:         q.Bid,
				Ask:         q.Ask,
			})
		}
	}
}
