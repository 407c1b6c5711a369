package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asterix-bot/storage-bot/common/cache"
	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/database"
)

func TestMain(m *testing.M) {
	if err := cache.InitWith(10000, 10000); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var errRPC = errors.New("rpc error")

type transferCall struct {
	ToChatID   int64
	MessageID  int
	DropAuthor bool
}

type post struct {
	Channel, Text, Button, URL string
}

type fakePlatform struct {
	mu sync.Mutex

	status      map[string]map[int64]ParticipantStatus
	statusErr   map[string]error
	statusCalls int

	stored      map[int]tgutil.MediaInfo
	transfers   []transferCall
	nextMessage int

	posts   []post
	postErr error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		status:      map[string]map[int64]ParticipantStatus{},
		statusErr:   map[string]error{},
		stored:      map[int]tgutil.MediaInfo{},
		nextMessage: 1000,
	}
}

func (f *fakePlatform) join(channel string, userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status[channel] == nil {
		f.status[channel] = map[int64]ParticipantStatus{}
	}
	f.status[channel][userID] = StatusMember
}

func (f *fakePlatform) store(info tgutil.MediaInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[info.MessageID] = info
}

func (f *fakePlatform) ParticipantStatus(_ context.Context, channel string, userID int64) (ParticipantStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if err := f.statusErr[channel]; err != nil {
		return StatusNone, err
	}
	return f.status[channel][userID], nil
}

func (f *fakePlatform) Transfer(_ context.Context, toChatID int64, messageID int, dropAuthor bool) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transfers = append(f.transfers, transferCall{toChatID, messageID, dropAuthor})
	if _, ok := f.stored[messageID]; !ok {
		return 0, errRPC
	}
	f.nextMessage++
	return f.nextMessage, nil
}

func (f *fakePlatform) StorageMessage(_ context.Context, messageID int) (tgutil.MediaInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.stored[messageID]
	if !ok {
		return tgutil.MediaInfo{}, errRPC
	}
	return info, nil
}

func (f *fakePlatform) PostWithButton(_ context.Context, channel, text, buttonText, buttonURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return f.postErr
	}
	f.posts = append(f.posts, post{channel, text, buttonText, buttonURL})
	return nil
}

func (f *fakePlatform) transferCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transfers)
}

func (f *fakePlatform) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func openLedger(t *testing.T) *database.Store {
	t.Helper()
	s, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

var required = []config.RequiredChannel{
	{Role: config.RoleMain, Username: "FreeWebseriesBD"},
	{Role: config.RoleBackup, Username: "AsterixMovies"},
}

func testConfig() *config.Config {
	c := &config.Config{
		Owners:   []int64{1},
		Channels: config.ChannelsConfig{Main: "FreeWebseriesBD", Backup: "AsterixMovies", Storage: -1003017034291, Publish: "FreeWebseriesBD"},
	}
	c.Telegram.BotUsername = "AsterixStorageBot"
	c.Relay.Mode = config.RelayModeCopy
	c.Search.Cutoff = 60
	c.Search.Limit = 30
	return c
}
