package core

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/duke-git/lancet/v2/strutil"

	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/database"
	"github.com/asterix-bot/storage-bot/pkg/deeplink"
)

const maxTitleLen = 200

type PublisherConfig struct {
	Owners         []int64
	BotUsername    string
	StorageChannel int64 // with or without the -100 prefix
	PublishChannel string
}

// Publisher implements the owner only actions: minting links, registering files
// and posting them to the publish channel.
type Publisher struct {
	cfg    PublisherConfig
	source StorageSource
	poster ChannelPoster
	ledger Ledger
	obs    *metrics.Observer
}

func NewPublisher(cfg PublisherConfig, source StorageSource, poster ChannelPoster, ledger Ledger, obs *metrics.Observer) *Publisher {
	return &Publisher{cfg: cfg, source: source, poster: poster, ledger: ledger, obs: obs}
}

func (p *Publisher) IsOwner(userID int64) bool {
	return slice.Contain(p.cfg.Owners, userID)
}

func (p *Publisher) BotUsername() string {
	return p.cfg.BotUsername
}

func (p *Publisher) PublishChannel() string {
	return p.cfg.PublishChannel
}

// Link registers the storage message and returns its deep link.
func (p *Publisher) Link(ctx context.Context, userID int64, messageID int) (string, error) {
	if !p.IsOwner(userID) {
		return "", ErrNotOwner
	}
	if messageID <= 0 {
		return "", ErrInvalidMessageID
	}
	if _, err := p.register(ctx, messageID, ""); err != nil {
		return "", err
	}
	return deeplink.URL(p.cfg.BotUsername, messageID), nil
}

// Post registers the storage message under title and announces it in the publish channel.
// When only the announcement fails the link is still returned, along with ErrPostFailed.
func (p *Publisher) Post(ctx context.Context, userID int64, messageID int, title string) (string, error) {
	if !p.IsOwner(userID) {
		return "", ErrNotOwner
	}
	if messageID <= 0 {
		return "", ErrInvalidMessageID
	}
	file, err := p.register(ctx, messageID, title)
	if err != nil {
		return "", err
	}
	return p.announce(ctx, file)
}

// PublishForward handles an owner forwarding a storage channel post to the bot.
// fromChannelID is the channel the forward originates from.
func (p *Publisher) PublishForward(ctx context.Context, userID, fromChannelID int64, info tgutil.MediaInfo) (string, error) {
	if !p.IsOwner(userID) {
		return "", ErrNotOwner
	}
	if fromChannelID == 0 || tgutil.NormalizeChannelID(fromChannelID) != tgutil.NormalizeChannelID(p.cfg.StorageChannel) {
		return "", ErrNotStorage
	}
	if info.MessageID <= 0 {
		return "", ErrInvalidMessageID
	}
	file := fileRecord(info, "")
	if err := p.ledger.UpsertFile(ctx, file); err != nil {
		return "", fmt.Errorf("failed to register file: %w", err)
	}
	if stored, err := p.ledger.GetFile(ctx, info.MessageID); err == nil {
		file = stored
	}
	return p.announce(ctx, file)
}

// Ban bans target. Owners cannot be banned.
func (p *Publisher) Ban(ctx context.Context, userID, target int64) error {
	if !p.IsOwner(userID) {
		return ErrNotOwner
	}
	if target <= 0 || p.IsOwner(target) {
		return fmt.Errorf("cannot ban user %d", target)
	}
	return p.ledger.Ban(ctx, target)
}

func (p *Publisher) Stats(ctx context.Context, userID int64) (*database.Stats, error) {
	if !p.IsOwner(userID) {
		return nil, ErrNotOwner
	}
	return p.ledger.Stats(ctx)
}

func (p *Publisher) register(ctx context.Context, messageID int, title string) (*database.File, error) {
	info, err := p.source.StorageMessage(ctx, messageID)
	if err != nil {
		log.FromContext(ctx).Warn("Storage message lookup failed", "message_id", messageID, "error", err)
		return nil, fmt.Errorf("%w: message %d", ErrNotStorage, messageID)
	}
	file := fileRecord(info, title)
	if err := p.ledger.UpsertFile(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to register file: %w", err)
	}
	stored, err := p.ledger.GetFile(ctx, messageID)
	if err != nil {
		return file, nil
	}
	return stored, nil
}

func (p *Publisher) announce(ctx context.Context, file *database.File) (string, error) {
	link := deeplink.URL(p.cfg.BotUsername, file.MessageID)
	text := i18n.T(i18nk.PostCaption, map[string]any{"Title": strutil.Ellipsis(displayTitle(file), maxTitleLen)})
	err := p.poster.PostWithButton(ctx, p.cfg.PublishChannel, text, i18n.T(i18nk.ButtonGetFile), link)
	p.obs.RecordPost(err)
	if err != nil {
		log.FromContext(ctx).Error("Failed to post to channel", "channel", p.cfg.PublishChannel, "error", err)
		return link, fmt.Errorf("%w: %w", ErrPostFailed, err)
	}
	log.FromContext(ctx).Info("Posted file", "message_id", file.MessageID, "channel", p.cfg.PublishChannel)
	return link, nil
}

func displayTitle(f *database.File) string {
	switch {
	case f.Title != "":
		return f.Title
	case f.Caption != "":
		return firstLine(f.Caption)
	case f.FileName != "":
		return f.FileName
	}
	return fmt.Sprintf("File #%d", f.MessageID)
}
