package handlers

import (
	"strconv"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/client/bot/handlers/utils/msgelem"
	"github.com/asterix-bot/storage-bot/common/cache"
	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/core"
	"github.com/asterix-bot/storage-bot/database"
	"github.com/asterix-bot/storage-bot/pkg/tcbdata"
)

func alert(ctx *ext.Context, update *ext.Update, text string) error {
	ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), text))
	return dispatcher.EndGroups
}

func ack(ctx *ext.Context, update *ext.Update) {
	ctx.AnswerCallback(msgelem.AckCallbackAnswer(update.CallbackQuery.GetQueryID()))
}

func callbackArgs(ctx *ext.Context, update *ext.Update) ([]string, bool) {
	_, args, err := tcbdata.Parse(update.CallbackQuery.Data)
	if err != nil {
		log.FromContext(ctx).Debug("Bad callback data", "data", string(update.CallbackQuery.Data))
		return nil, false
	}
	return args, true
}

// gateFailed answers the button for outcomes that stop a gated action.
// It reports false when the outcome is not a stop.
func gateFailed(ctx *ext.Context, update *ext.Update, v core.Visitor, res core.Result) bool {
	switch res.Outcome {
	case core.OutcomeBanned:
		alert(ctx, update, i18n.T(i18nk.Banned))
	case core.OutcomeJoinRequired:
		ack(ctx, update)
		send(ctx, v.ChatID, joinView(v, res))
	default:
		return false
	}
	return true
}

// handleJoinedCallback re-checks membership and resumes the pending deep link, if any.
func handleJoinedCallback(ctx *ext.Context, update *ext.Update) error {
	args, ok := callbackArgs(ctx, update)
	if !ok {
		return alert(ctx, update, i18n.T(i18nk.UnknownAction))
	}
	token := ""
	if len(args) > 0 {
		token = args[0]
	}
	v := callbackVisitor(update)
	res, err := svc.Gate.Start(ctx, v, token)
	if err != nil {
		log.FromContext(ctx).Error("Joined check failed", "user", v.UserID, "error", err)
		return alert(ctx, update, i18n.T(i18nk.GenericError))
	}
	switch res.Outcome {
	case core.OutcomeBanned:
		return alert(ctx, update, i18n.T(i18nk.Banned))
	case core.OutcomeJoinRequired:
		return alert(ctx, update, i18n.T(i18nk.JoinMissing, map[string]any{"Channels": channelList(res.Missing)}))
	case core.OutcomeWelcome:
		ctx.AnswerCallback(msgelem.AlertCallbackAnswer(update.CallbackQuery.GetQueryID(), i18n.T(i18nk.JoinThanks)))
		edit(ctx, update, welcomeView(v))
		return dispatcher.EndGroups
	case core.OutcomeDelivered:
		ack(ctx, update)
		edit(ctx, update, view{text: i18n.T(i18nk.JoinThanks)})
		return dispatcher.EndGroups
	}
	ack(ctx, update)
	if out, ok := render(ctx, v, res, ""); ok {
		edit(ctx, update, out)
	}
	return dispatcher.EndGroups
}

func handleMenuCallback(ctx *ext.Context, update *ext.Update) error {
	args, ok := callbackArgs(ctx, update)
	if !ok || len(args) == 0 {
		return alert(ctx, update, i18n.T(i18nk.UnknownAction))
	}
	v := callbackVisitor(update)
	switch args[0] {
	case tcbdata.MenuHelp:
		ack(ctx, update)
		edit(ctx, update, helpView())
		return dispatcher.EndGroups
	case tcbdata.MenuStart:
		res, err := svc.Gate.Start(ctx, v, "")
		if err != nil {
			log.FromContext(ctx).Error("Menu failed", "user", v.UserID, "error", err)
			return alert(ctx, update, i18n.T(i18nk.GenericError))
		}
		if gateFailed(ctx, update, v, res) {
			return dispatcher.EndGroups
		}
		ack(ctx, update)
		edit(ctx, update, welcomeView(v))
		return dispatcher.EndGroups
	case tcbdata.MenuMovies:
		return showLatest(ctx, update, v, database.CategoryMovie, i18nk.MenuMoviesTitle)
	case tcbdata.MenuWebseries:
		return showLatest(ctx, update, v, database.CategorySeries, i18nk.MenuWebseriesTitle)
	}
	return alert(ctx, update, i18n.T(i18nk.UnknownAction))
}

func showLatest(ctx *ext.Context, update *ext.Update, v core.Visitor, category string, title i18nk.Key) error {
	res, err := svc.Gate.Latest(ctx, v, category, config.C().Search.Limit)
	if err != nil {
		log.FromContext(ctx).Error("Failed to list latest files", "category", category, "error", err)
		return alert(ctx, update, i18n.T(i18nk.GenericError))
	}
	if gateFailed(ctx, update, v, res) {
		return dispatcher.EndGroups
	}
	ack(ctx, update)
	if res.Outcome == core.OutcomeNoResults {
		edit(ctx, update, view{text: i18n.T(i18nk.MenuEmpty), markup: msgelem.BuildBackKeyboard()})
		return dispatcher.EndGroups
	}
	edit(ctx, update, pageView(ctx, i18n.T(title), res.Files))
	return dispatcher.EndGroups
}

func handleFileCallback(ctx *ext.Context, update *ext.Update) error {
	args, ok := callbackArgs(ctx, update)
	if !ok || len(args) == 0 {
		return alert(ctx, update, i18n.T(i18nk.UnknownAction))
	}
	messageID, err := strconv.Atoi(args[0])
	if err != nil {
		return alert(ctx, update, i18n.T(i18nk.InvalidLink))
	}
	v := callbackVisitor(update)
	res, err := svc.Gate.Fetch(ctx, v, messageID)
	if err != nil {
		log.FromContext(ctx).Error("Fetch failed", "user", v.UserID, "message_id", messageID, "error", err)
		return alert(ctx, update, i18n.T(i18nk.GenericError))
	}
	if gateFailed(ctx, update, v, res) {
		return dispatcher.EndGroups
	}
	switch res.Outcome {
	case core.OutcomeDelivered:
		ack(ctx, update)
	case core.OutcomeInvalidLink:
		return alert(ctx, update, i18n.T(i18nk.InvalidLink))
	default:
		return alert(ctx, update, i18n.T(i18nk.FileNotFound))
	}
	return dispatcher.EndGroups
}

func handlePageCallback(ctx *ext.Context, update *ext.Update) error {
	args, ok := callbackArgs(ctx, update)
	if !ok || len(args) < 2 {
		return alert(ctx, update, i18n.T(i18nk.UnknownAction))
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return alert(ctx, update, i18n.T(i18nk.UnknownAction))
	}
	page, ok := cache.Get[tcbdata.SearchPage](pageKeyPrefix + args[0])
	if !ok {
		return alert(ctx, update, i18n.T(i18nk.SearchExpired))
	}
	ack(ctx, update)
	edit(ctx, update, renderPage(args[0], page, n))
	return dispatcher.EndGroups
}
