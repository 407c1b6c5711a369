package handlers

import (
	"errors"
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/client/bot/handlers/utils/re"
	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/core"
)

// storageMessageID accepts a message id or a link to a storage channel message.
func storageMessageID(ref string) (int, error) {
	msgRef, err := re.ParseMessageRef(ref)
	if err != nil {
		return 0, core.ErrInvalidMessageID
	}
	// the storage channel is private, public links always point somewhere else
	if msgRef.Username != "" {
		return 0, core.ErrNotStorage
	}
	if msgRef.ChannelID != 0 && msgRef.ChannelID != tgutil.NormalizeChannelID(config.C().Channels.Storage) {
		return 0, core.ErrNotStorage
	}
	return msgRef.MessageID, nil
}

func replyOwnerError(ctx *ext.Context, update *ext.Update, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidMessageID):
		replyText(ctx, update, i18nk.InvalidMessageID)
	case errors.Is(err, core.ErrNotStorage):
		replyText(ctx, update, i18nk.NotStorageFile)
	case errors.Is(err, core.ErrNotOwner):
		replyText(ctx, update, i18nk.NotAuthorized)
	default:
		log.FromContext(ctx).Error("Owner command failed", "error", err)
		replyText(ctx, update, i18nk.GenericError)
	}
}

func handleLinkCmd(ctx *ext.Context, update *ext.Update) error {
	args := strings.Fields(update.EffectiveMessage.Text)
	if len(args) < 2 {
		replyText(ctx, update, i18nk.LinkUsage)
		return dispatcher.EndGroups
	}
	messageID, err := storageMessageID(args[1])
	if err != nil {
		replyOwnerError(ctx, update, err)
		return dispatcher.EndGroups
	}
	link, err := svc.Publisher.Link(ctx, update.GetUserChat().GetID(), messageID)
	if err != nil {
		replyOwnerError(ctx, update, err)
		return dispatcher.EndGroups
	}
	replyText(ctx, update, i18nk.LinkReady, map[string]any{"Link": link})
	return dispatcher.EndGroups
}

func handlePostCmd(ctx *ext.Context, update *ext.Update) error {
	args := strings.Fields(update.EffectiveMessage.Text)
	if len(args) < 3 {
		replyText(ctx, update, i18nk.PostUsage)
		return dispatcher.EndGroups
	}
	messageID, err := storageMessageID(args[1])
	if err != nil {
		replyOwnerError(ctx, update, err)
		return dispatcher.EndGroups
	}
	title := strings.Join(args[2:], " ")
	link, err := svc.Publisher.Post(ctx, update.GetUserChat().GetID(), messageID, title)
	channel := "@" + svc.Publisher.PublishChannel()
	switch {
	case errors.Is(err, core.ErrPostFailed):
		replyText(ctx, update, i18nk.PostFailed, map[string]any{"Channel": channel, "Link": link})
	case err != nil:
		replyOwnerError(ctx, update, err)
	default:
		replyText(ctx, update, i18nk.PostDone, map[string]any{"Channel": channel, "Link": link})
	}
	return dispatcher.EndGroups
}

func handleBanCmd(ctx *ext.Context, update *ext.Update) error {
	args := strings.Fields(update.EffectiveMessage.Text)
	if len(args) < 2 {
		replyText(ctx, update, i18nk.BanUsage)
		return dispatcher.EndGroups
	}
	target, err := tgutil.ParseChatID(ctx, args[1])
	if err != nil || target <= 0 {
		log.FromContext(ctx).Debug("Bad ban target", "target", args[1], "error", err)
		replyText(ctx, update, i18nk.BanUsage)
		return dispatcher.EndGroups
	}
	if err := svc.Publisher.Ban(ctx, update.GetUserChat().GetID(), target); err != nil {
		log.FromContext(ctx).Warn("Ban failed", "target", target, "error", err)
		replyText(ctx, update, i18nk.BanUsage)
		return dispatcher.EndGroups
	}
	log.FromContext(ctx).Info("User banned", "target", target)
	replyText(ctx, update, i18nk.BanDone, map[string]any{"UserID": target})
	return dispatcher.EndGroups
}

func handleStatsCmd(ctx *ext.Context, update *ext.Update) error {
	stats, err := svc.Publisher.Stats(ctx, update.GetUserChat().GetID())
	if err != nil {
		replyOwnerError(ctx, update, err)
		return dispatcher.EndGroups
	}
	reply(ctx, update, view{text: i18n.T(i18nk.Stats, map[string]any{
		"Users":     stats.Users,
		"Banned":    stats.Banned,
		"Files":     stats.Files,
		"Downloads": stats.Downloads,
		"Searches":  stats.Searches,
	})})
	return dispatcher.EndGroups
}
