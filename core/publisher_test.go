package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/database"
)

const owner = int64(1)

func TestPublisher_Link(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	f.platform.store(tgutil.MediaInfo{MessageID: 55, FileName: "Mohanagar.S01E01.mkv", Type: tgutil.MediaVideo, Size: 10})
	pub := f.services.Publisher

	link, err := pub.Link(ctx, owner, 55)
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/AsterixStorageBot?start=file_55", link, "configured username wins")

	file, err := f.ledger.GetFile(ctx, 55)
	require.NoError(t, err)
	assert.Equal(t, database.CategorySeries, file.Category)
	assert.Empty(t, f.platform.posts, "/link never posts")

	_, err = pub.Link(ctx, owner, 0)
	assert.ErrorIs(t, err, ErrInvalidMessageID)
	_, err = pub.Link(ctx, owner, 56)
	assert.ErrorIs(t, err, ErrNotStorage)
}

func TestPublisher_NonOwner(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	f.platform.store(tgutil.MediaInfo{MessageID: 55, FileName: "a.mkv"})
	pub := f.services.Publisher

	_, err := pub.Link(ctx, 2, 55)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = pub.Post(ctx, 2, 55, "A")
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = pub.PublishForward(ctx, 2, -1003017034291, tgutil.MediaInfo{MessageID: 55})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, pub.Ban(ctx, 2, 100), ErrNotOwner)
	_, err = pub.Stats(ctx, 2)
	assert.ErrorIs(t, err, ErrNotOwner)

	assert.Empty(t, f.platform.posts, "non owners never cause a channel post")
	_, err = f.ledger.GetFile(ctx, 55)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestPublisher_Post(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	f.platform.store(tgutil.MediaInfo{MessageID: 55, FileName: "x.mkv", Type: tgutil.MediaVideo})
	pub := f.services.Publisher

	link, err := pub.Post(ctx, owner, 55, "Interstellar (2014)")
	require.NoError(t, err)
	require.Len(t, f.platform.posts, 1)
	p := f.platform.posts[0]
	assert.Equal(t, "FreeWebseriesBD", p.Channel)
	assert.Equal(t, link, p.URL)
	assert.Contains(t, p.Text, "Interstellar (2014)")

	file, err := f.ledger.GetFile(ctx, 55)
	require.NoError(t, err)
	assert.Equal(t, "Interstellar (2014)", file.Title)
}

func TestPublisher_PostFailureStillReturnsLink(t *testing.T) {
	f := newGateFixture(t)
	f.platform.store(tgutil.MediaInfo{MessageID: 55, FileName: "x.mkv"})
	f.platform.postErr = errRPC

	link, err := f.services.Publisher.Post(context.Background(), owner, 55, "X")
	assert.ErrorIs(t, err, ErrPostFailed)
	assert.Equal(t, "https://t.me/AsterixStorageBot?start=file_55", link)
}

func TestPublisher_PublishForward(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	pub := f.services.Publisher
	info := tgutil.MediaInfo{MessageID: 77, FileName: "Mohanagar.mkv", Caption: "Mohanagar\nfull movie", Type: tgutil.MediaVideo}

	_, err := pub.PublishForward(ctx, owner, -1009999, info)
	assert.ErrorIs(t, err, ErrNotStorage, "forwards from other channels are ignored")
	assert.Empty(t, f.platform.posts)

	link, err := pub.PublishForward(ctx, owner, 3017034291, info)
	require.NoError(t, err, "ids without the -100 prefix match too")
	assert.Equal(t, "https://t.me/AsterixStorageBot?start=file_77", link)
	require.Len(t, f.platform.posts, 1)
	assert.Contains(t, f.platform.posts[0].Text, "Mohanagar")

	file, err := f.ledger.GetFile(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, database.CategoryMovie, file.Category)
}

func TestPublisher_BanAndStats(t *testing.T) {
	ctx := context.Background()
	f := newGateFixture(t)
	pub := f.services.Publisher

	require.NoError(t, pub.Ban(ctx, owner, 100))
	assert.Error(t, pub.Ban(ctx, owner, owner), "owners cannot be banned")

	st, err := pub.Stats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Banned)
}
