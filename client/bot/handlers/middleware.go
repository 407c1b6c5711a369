package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
)

func ownerOnly(next func(*ext.Context, *ext.Update) error) func(*ext.Context, *ext.Update) error {
	return func(ctx *ext.Context, update *ext.Update) error {
		userID := update.GetUserChat().GetID()
		if !svc.Publisher.IsOwner(userID) {
			log.FromContext(ctx).Warn("Owner command rejected", "user", userID)
			replyText(ctx, update, i18nk.NotAuthorized)
			return dispatcher.EndGroups
		}
		return next(ctx, update)
	}
}
