package core

import (
	"context"

	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/database"
)

type ParticipantStatus int

const (
	StatusNone ParticipantStatus = iota // left, kicked or never joined
	StatusMember
	StatusBanned
)

func (s ParticipantStatus) String() string {
	switch s {
	case StatusMember:
		return "member"
	case StatusBanned:
		return "banned"
	default:
		return "none"
	}
}

// Participants answers channel membership questions.
type Participants interface {
	ParticipantStatus(ctx context.Context, channel string, userID int64) (ParticipantStatus, error)
}

// Transferer copies or forwards a storage channel message into a chat.
// It returns the id of the message created in the target chat.
type Transferer interface {
	Transfer(ctx context.Context, toChatID int64, messageID int, dropAuthor bool) (int, error)
}

// StorageSource reads messages of the storage channel.
type StorageSource interface {
	StorageMessage(ctx context.Context, messageID int) (tgutil.MediaInfo, error)
}

// ChannelPoster publishes a text with one URL button into a public channel.
type ChannelPoster interface {
	PostWithButton(ctx context.Context, channel, text, buttonText, buttonURL string) error
}

type Platform interface {
	Participants
	Transferer
	StorageSource
	ChannelPoster
}

// Ledger is the persistence the services need. *database.Store implements it.
type Ledger interface {
	RecordUser(ctx context.Context, userID int64, username, firstName string) error
	IsBanned(ctx context.Context, userID int64) (bool, error)
	Ban(ctx context.Context, userID int64) error
	IncrementDownloads(ctx context.Context, messageID int) error
	GetFile(ctx context.Context, messageID int) (*database.File, error)
	UpsertFile(ctx context.Context, file *database.File) error
	LatestFiles(ctx context.Context, category string, limit int) ([]database.File, error)
	Search(ctx context.Context, userID int64, query string, opts database.SearchOptions) ([]database.Match, error)
	Stats(ctx context.Context) (*database.Stats, error)
}

var _ Ledger = (*database.Store)(nil)
