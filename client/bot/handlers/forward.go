package handlers

import (
	"errors"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"

	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/core"
)

// handleForwardMessage publishes a storage channel post the owner forwarded to the bot.
// Forwards from anyone else are dropped without an answer.
func handleForwardMessage(ctx *ext.Context, update *ext.Update) error {
	logger := log.FromContext(ctx)
	userID := update.GetUserChat().GetID()
	if !svc.Publisher.IsOwner(userID) {
		logger.Debug("Ignoring forward from non owner", "user", userID)
		return dispatcher.EndGroups
	}
	msg := update.EffectiveMessage.Message
	fwd, _ := msg.GetFwdFrom()
	from, _ := fwd.GetFromID()
	var channelID int64
	if ch, ok := from.(*tg.PeerChannel); ok {
		channelID = ch.ChannelID
	}
	info, ok := tgutil.DescribeMessage(msg)
	if !ok {
		replyText(ctx, update, i18nk.NotStorageFile)
		return dispatcher.EndGroups
	}
	info.MessageID, _ = fwd.GetChannelPost()

	link, err := svc.Publisher.PublishForward(ctx, userID, channelID, info)
	channel := "@" + svc.Publisher.PublishChannel()
	switch {
	case errors.Is(err, core.ErrPostFailed):
		replyText(ctx, update, i18nk.PostFailed, map[string]any{"Channel": channel, "Link": link})
	case err != nil:
		replyOwnerError(ctx, update, err)
	default:
		logger.Info("Forward published", "message_id", info.MessageID, "channel", channel)
		replyText(ctx, update, i18nk.ForwardRegistered, map[string]any{"Name": info.FileName, "Link": link})
	}
	return dispatcher.EndGroups
}
