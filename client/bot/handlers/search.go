package handlers

import (
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
)

func handleSearchCmd(ctx *ext.Context, update *ext.Update) error {
	_, query, _ := strings.Cut(strings.TrimSpace(update.EffectiveMessage.Text), " ")
	query = strings.TrimSpace(query)
	if query == "" {
		replyText(ctx, update, i18nk.SearchUsage)
		return dispatcher.EndGroups
	}
	v := messageVisitor(update)
	res, err := svc.Gate.Search(ctx, v, query)
	if err != nil {
		log.FromContext(ctx).Error("Search failed", "user", v.UserID, "query", query, "error", err)
		replyText(ctx, update, i18nk.GenericError)
		return dispatcher.EndGroups
	}
	if out, ok := render(ctx, v, res, query); ok {
		reply(ctx, update, out)
	}
	return dispatcher.EndGroups
}
