package middleware

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gotd/td/telegram"

	"github.com/asterix-bot/storage-bot/client/middleware/recovery"
	"github.com/asterix-bot/storage-bot/client/middleware/retry"
	"github.com/asterix-bot/storage-bot/config"
)

func NewDefaultMiddlewares(ctx context.Context, timeout time.Duration) []telegram.Middleware {
	mws := []telegram.Middleware{
		recovery.New(ctx, func() backoff.BackOff { return newBackoff(timeout) }),
		retry.New(config.C().Telegram.RpcRetry),
	}
	return append(mws, NewFloodWaitMiddlewares(config.C().Telegram.FloodRetry)...)
}

func newBackoff(timeout time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.Multiplier = 1.1
	b.MaxElapsedTime = timeout
	b.MaxInterval = 10 * time.Second
	return b
}
