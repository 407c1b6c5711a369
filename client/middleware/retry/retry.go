package retry

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

var internalErrors = []string{
	"Timedout",
	"No workers running",
	"RPC_CALL_FAIL",
	"RPC_MCGET_FAIL",
	"WORKER_BUSY_TOO_LONG_RETRY",
	"memory limit exit",
}

// SingleShot reports requests that must reach Telegram at most once per call:
// relaying a file and asking for channel membership.
func SingleShot(input bin.Encoder) bool {
	switch input.(type) {
	case *tg.MessagesForwardMessagesRequest, *tg.ChannelsGetParticipantRequest:
		return true
	}
	return false
}

type retry struct {
	max    int
	errors []string
}

func (r retry) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		if SingleShot(input) {
			return next.Invoke(ctx, input, output)
		}
		var err error
		for retries := 0; retries < r.max; retries++ {
			err = next.Invoke(ctx, input, output)
			if err == nil {
				return nil
			}
			if !tgerr.Is(err, r.errors...) {
				return err
			}
			log.FromContext(ctx).Debug("retry middleware", "retries", retries, "error", err)
		}
		return fmt.Errorf("retry limit reached after %d attempts: %w", r.max, err)
	}
}

// New returns middleware that retries a request when it fails with one of the given
// or the internal Telegram errors. max below 1 means a single attempt.
func New(limit int, errs ...string) telegram.Middleware {
	return retry{
		max:    max(limit, 1),
		errors: append(errs, internalErrors...),
	}
}
