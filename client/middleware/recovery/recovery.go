package recovery

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/asterix-bot/storage-bot/client/middleware/retry"
)

// recovery re-sends requests that failed below the RPC layer (dropped connections,
// reconnects) until the backoff gives up. RPC errors are returned as they are.
type recovery struct {
	ctx     context.Context
	backoff func() backoff.BackOff
}

func New(ctx context.Context, newBackoff func() backoff.BackOff) telegram.Middleware {
	return &recovery{ctx: ctx, backoff: newBackoff}
}

func (r *recovery) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		if retry.SingleShot(input) {
			return next.Invoke(ctx, input, output)
		}
		op := func() error {
			err := next.Invoke(ctx, input, output)
			if err == nil {
				return nil
			}
			if r.shouldRecover(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		notify := func(err error, d time.Duration) {
			log.FromContext(ctx).Debug("Waiting for connection recovery", "error", err, "retry_after", d)
		}
		return backoff.RetryNotify(op, backoff.WithContext(r.backoff(), ctx), notify)
	}
}

func (r *recovery) shouldRecover(err error) bool {
	// the middleware context is canceled on shutdown, stop recovering then
	select {
	case <-r.ctx.Done():
		return false
	default:
	}
	if _, ok := tgerr.As(err); ok {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
