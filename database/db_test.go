package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordUser(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.RecordUser(ctx, 100, "alice", "Alice"))
	first, err := s.GetUser(ctx, 100)
	require.NoError(t, err)

	require.NoError(t, s.RecordUser(ctx, 100, "alice_new", "Alice"))
	again, err := s.GetUser(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "alice_new", again.Username)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, first.JoinDate.Equal(again.JoinDate), "join date must not change")

	_, err = s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBan(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	banned, err := s.IsBanned(ctx, 7)
	require.NoError(t, err)
	assert.False(t, banned, "unknown users are not banned")

	require.NoError(t, s.RecordUser(ctx, 7, "bob", "Bob"))
	require.NoError(t, s.Ban(ctx, 7))
	banned, err = s.IsBanned(ctx, 7)
	require.NoError(t, err)
	assert.True(t, banned)

	// profile refresh keeps the ban
	require.NoError(t, s.RecordUser(ctx, 7, "bobby", "Bob"))
	banned, err = s.IsBanned(ctx, 7)
	require.NoError(t, err)
	assert.True(t, banned)

	// banning a user never seen before creates the row
	require.NoError(t, s.Ban(ctx, 8))
	banned, err = s.IsBanned(ctx, 8)
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestUpsertFile(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 10, FileName: "a.mkv", Title: "Alpha", Type: "video"}))
	require.NoError(t, s.IncrementDownloads(ctx, 10))
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 10, FileName: "alpha.mkv", Type: "video"}))

	f, err := s.GetFile(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "alpha.mkv", f.FileName)
	assert.Equal(t, "Alpha", f.Title, "empty title keeps the stored one")
	assert.Equal(t, int64(1), f.Downloads, "upsert keeps the counter")

	_, err = s.GetFile(ctx, 11)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIncrementDownloads_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 12345, FileName: "x.mp4"}))

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.IncrementDownloads(ctx, 12345)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	f, err := s.GetFile(ctx, 12345)
	require.NoError(t, err)
	assert.Equal(t, int64(n), f.Downloads)
}

func TestIncrementDownloads_Unregistered(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.IncrementDownloads(ctx, 1))
	_, err := s.GetFile(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestFiles(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 1, FileName: "m1", Category: CategoryMovie}))
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 2, FileName: "s1", Category: CategorySeries}))
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 3, FileName: "m2", Category: CategoryMovie}))

	movies, err := s.LatestFiles(ctx, CategoryMovie, 10)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, 3, movies[0].MessageID)
	assert.Equal(t, 1, movies[1].MessageID)

	all, err := s.LatestFiles(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 1, FileName: "Mohanagar.S01.mkv"}))
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 2, FileName: "Mohanagar.S01.mkv"}))
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 3, FileName: "Mohanagar.S01.mkv"}))
	require.NoError(t, s.UpsertFile(ctx, &File{MessageID: 4, FileName: "Interstellar.2014.mkv"}))
	require.NoError(t, s.IncrementDownloads(ctx, 1))

	matches, err := s.Search(ctx, 100, "mohanagar s01", SearchOptions{Cutoff: 60})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	// equal scores: most downloaded first, then newest message
	assert.Equal(t, 1, matches[0].File.MessageID)
	assert.Equal(t, 3, matches[1].File.MessageID)
	assert.Equal(t, 2, matches[2].File.MessageID)

	limited, err := s.Search(ctx, 100, "mohanagar", SearchOptions{Cutoff: 60, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := s.Search(ctx, 101, "zzzzqqqq", SearchOptions{Cutoff: 60})
	require.NoError(t, err)
	assert.Empty(t, none)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Searches, "every search is logged")
	assert.Equal(t, int64(4), st.Files)
	assert.Equal(t, int64(1), st.Downloads)
}

func TestStats_Empty(t *testing.T) {
	st, err := openTestStore(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, *st)
}
