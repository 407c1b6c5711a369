package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/database"
)

func TestRelay_Deliver(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	ledger := openLedger(t)
	p.store(tgutil.MediaInfo{MessageID: 5, FileName: "a.mkv"})
	require.NoError(t, ledger.UpsertFile(ctx, &database.File{MessageID: 5, FileName: "a.mkv"}))

	r := NewRelay(p, ledger, config.RelayModeCopy, nil)
	require.NoError(t, r.Deliver(ctx, 77, 5))

	require.Len(t, p.transfers, 1)
	assert.Equal(t, transferCall{ToChatID: 77, MessageID: 5, DropAuthor: true}, p.transfers[0])
	f, err := ledger.GetFile(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.Downloads)
}

func TestRelay_ForwardMode(t *testing.T) {
	p := newFakePlatform()
	p.store(tgutil.MediaInfo{MessageID: 5})
	r := NewRelay(p, openLedger(t), config.RelayModeForward, nil)
	require.NoError(t, r.Deliver(context.Background(), 77, 5))
	assert.False(t, p.transfers[0].DropAuthor)
}

func TestRelay_NotFound(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	ledger := openLedger(t)
	require.NoError(t, ledger.UpsertFile(ctx, &database.File{MessageID: 12345, FileName: "gone.mkv"}))

	r := NewRelay(p, ledger, "", nil)
	err := r.Deliver(ctx, 77, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, p.transfers, 1, "exactly one attempt")

	f, err := ledger.GetFile(ctx, 12345)
	require.NoError(t, err)
	assert.Zero(t, f.Downloads)
}
