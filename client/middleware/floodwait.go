package middleware

import (
	"context"
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"golang.org/x/time/rate"

	"github.com/asterix-bot/storage-bot/client/middleware/retry"
)

// NewFloodWaitMiddlewares waits out FLOOD_WAIT errors and keeps outgoing calls
// under Telegram's bot limits. Single shot requests get the FLOOD_WAIT error back
// instead of being sent again.
func NewFloodWaitMiddlewares(maxRetries uint) []telegram.Middleware {
	waiter := floodwait.NewSimpleWaiter().WithMaxRetries(maxRetries)
	ratelimiter := ratelimit.New(rate.Every(time.Millisecond*100), 5)
	return []telegram.Middleware{
		skipSingleShot{waiter},
		ratelimiter,
	}
}

type skipSingleShot struct {
	next telegram.Middleware
}

func (s skipSingleShot) Handle(next tg.Invoker) telegram.InvokeFunc {
	wrapped := s.next.Handle(next)
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		if retry.SingleShot(input) {
			return next.Invoke(ctx, input, output)
		}
		return wrapped(ctx, input, output)
	}
}
