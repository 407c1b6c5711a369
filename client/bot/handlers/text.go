package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"

	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
)

func handleTextMessage(ctx *ext.Context, update *ext.Update) error {
	replyText(ctx, update, i18nk.PrivateHint)
	return dispatcher.EndGroups
}
