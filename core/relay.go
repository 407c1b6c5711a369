package core

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/config"
)

type downloadCounter interface {
	IncrementDownloads(ctx context.Context, messageID int) error
}

// Relay delivers storage channel messages to users.
type Relay struct {
	transfer Transferer
	counter  downloadCounter
	mode     string
	obs      *metrics.Observer
}

func NewRelay(transfer Transferer, counter downloadCounter, mode string, obs *metrics.Observer) *Relay {
	if mode == "" {
		mode = config.RelayModeCopy
	}
	return &Relay{transfer: transfer, counter: counter, mode: mode, obs: obs}
}

// Deliver sends the stored message to chatID. It makes exactly one attempt, any failure
// is reported as ErrNotFound. The download counter only moves on success.
func (r *Relay) Deliver(ctx context.Context, chatID int64, messageID int) error {
	logger := log.FromContext(ctx)
	start := time.Now()
	newID, err := r.transfer.Transfer(ctx, chatID, messageID, r.mode == config.RelayModeCopy)
	if err == nil && newID == 0 {
		err = fmt.Errorf("no message created")
	}
	if err != nil {
		err = fmt.Errorf("%w: message %d: %w", ErrNotFound, messageID, err)
	}
	r.obs.RecordDelivery(time.Since(start), err)
	if err != nil {
		logger.Warn("Failed to deliver file", "message_id", messageID, "chat", chatID, "error", err)
		return err
	}
	if err := r.counter.IncrementDownloads(ctx, messageID); err != nil {
		logger.Error("Failed to count download", "message_id", messageID, "error", err)
	}
	logger.Info("Delivered file", "message_id", messageID, "chat", chatID)
	return nil
}
