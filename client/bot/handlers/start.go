package handlers

import (
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
)

func handleStartCmd(ctx *ext.Context, update *ext.Update) error {
	logger := log.FromContext(ctx)
	args := strings.Fields(update.EffectiveMessage.Text)
	token := ""
	if len(args) > 1 {
		token = args[1]
	}
	v := messageVisitor(update)
	res, err := svc.Gate.Start(ctx, v, token)
	if err != nil {
		logger.Error("Start failed", "user", v.UserID, "error", err)
		replyText(ctx, update, i18nk.GenericError)
		return dispatcher.EndGroups
	}
	logger.Debug("Start", "user", v.UserID, "token", token, "outcome", res.Outcome)
	if out, ok := render(ctx, v, res, ""); ok {
		reply(ctx, update, out)
	}
	return dispatcher.EndGroups
}
