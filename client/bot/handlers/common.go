package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/strutil"
	"github.com/gotd/td/tg"
	"github.com/rs/xid"

	"github.com/asterix-bot/storage-bot/client/bot/handlers/utils/msgelem"
	"github.com/asterix-bot/storage-bot/common/cache"
	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/core"
	"github.com/asterix-bot/storage-bot/database"
	"github.com/asterix-bot/storage-bot/pkg/consts/tglimit"
	"github.com/asterix-bot/storage-bot/pkg/tcbdata"
)

const pageKeyPrefix = "page:"

// view is a rendered bot answer: text plus an optional inline keyboard.
type view struct {
	text   string
	markup *tg.ReplyInlineMarkup
}

// body keeps the text within a single message.
func (v view) body() string {
	return strutil.Ellipsis(v.text, tglimit.MaxMessageLength-3)
}

func (v view) replyOpts() *ext.ReplyOpts {
	if v.markup == nil {
		return nil
	}
	return &ext.ReplyOpts{Markup: v.markup}
}

func (v view) editRequest(msgID int) *tg.MessagesEditMessageRequest {
	req := &tg.MessagesEditMessageRequest{ID: msgID, Message: v.body()}
	if v.markup != nil {
		req.SetReplyMarkup(v.markup)
	}
	return req
}

func reply(ctx *ext.Context, update *ext.Update, v view) {
	if _, err := ctx.Reply(update, ext.ReplyTextString(v.body()), v.replyOpts()); err != nil {
		log.FromContext(ctx).Error("Failed to reply", "error", err)
	}
}

func replyText(ctx *ext.Context, update *ext.Update, key i18nk.Key, data ...map[string]any) {
	reply(ctx, update, view{text: i18n.T(key, data...)})
}

// edit replaces the message a callback button belongs to.
func edit(ctx *ext.Context, update *ext.Update, v view) {
	cq := update.CallbackQuery
	if _, err := ctx.EditMessage(cq.GetUserID(), v.editRequest(cq.GetMsgID())); err != nil {
		log.FromContext(ctx).Debug("Failed to edit message", "error", err)
	}
}

func messageVisitor(update *ext.Update) core.Visitor {
	v := core.Visitor{ChatID: update.GetUserChat().GetID()}
	v.UserID = v.ChatID
	if user := update.EffectiveUser(); user != nil {
		v.UserID = user.ID
		v.Username = user.Username
		v.FirstName = user.FirstName
	}
	return v
}

func callbackVisitor(update *ext.Update) core.Visitor {
	userID := update.CallbackQuery.GetUserID()
	v := core.Visitor{UserID: userID, ChatID: userID}
	if update.Entities != nil {
		if user, ok := update.Entities.Users[userID]; ok && user != nil {
			v.Username = user.Username
			v.FirstName = user.FirstName
		}
	}
	return v
}

func displayName(v core.Visitor) string {
	if v.FirstName != "" {
		return v.FirstName
	}
	if v.Username != "" {
		return "@" + v.Username
	}
	return "there"
}

func channelList(chs []config.RequiredChannel) string {
	names := make([]string, len(chs))
	for i, ch := range chs {
		names[i] = "@" + ch.Username
	}
	return strings.Join(names, ", ")
}

func welcomeView(v core.Visitor) view {
	return view{
		text:   i18n.T(i18nk.Welcome, map[string]any{"Name": displayName(v)}),
		markup: msgelem.BuildWelcomeKeyboard(svc.Oracle.Required()),
	}
}

func joinView(v core.Visitor, res core.Result) view {
	return view{
		text: i18n.T(i18nk.JoinRequired, map[string]any{
			"Name":     displayName(v),
			"Channels": channelList(res.Missing),
		}),
		markup: msgelem.BuildJoinKeyboard(res.Missing, res.Token),
	}
}

func helpView() view {
	return view{
		text:   i18n.T(i18nk.Help, map[string]any{"Channels": channelList(svc.Oracle.Required())}),
		markup: msgelem.BuildBackKeyboard(),
	}
}

// pageView caches the result list and renders its first page.
func pageView(ctx context.Context, title string, files []database.File) view {
	page := tcbdata.SearchPage{Title: title, Items: msgelem.PageItems(files)}
	id := xid.New().String()
	if err := cache.Set(pageKeyPrefix+id, page); err != nil {
		log.FromContext(ctx).Warn("Failed to cache result page", "error", err)
	}
	return renderPage(id, page, 0)
}

func renderPage(id string, page tcbdata.SearchPage, n int) view {
	size := config.C().Search.PageSize
	markup, current := msgelem.BuildPageKeyboard(id, page, n, size)
	text := page.Title
	if pages := page.Pages(size); pages > 1 {
		text = fmt.Sprintf("%s (%d/%d)", text, current+1, pages)
	}
	return view{text: text, markup: markup}
}

// render turns a gate result into the answer shown to the visitor.
// Delivered files need no text: the file itself is the answer.
func render(ctx context.Context, v core.Visitor, res core.Result, query string) (view, bool) {
	switch res.Outcome {
	case core.OutcomeWelcome:
		return welcomeView(v), true
	case core.OutcomeDelivered:
		return view{}, false
	case core.OutcomeBanned:
		return view{text: i18n.T(i18nk.Banned)}, true
	case core.OutcomeJoinRequired:
		return joinView(v, res), true
	case core.OutcomeInvalidLink:
		return view{text: i18n.T(i18nk.InvalidLink)}, true
	case core.OutcomeNotFound:
		return view{text: i18n.T(i18nk.FileNotFound)}, true
	case core.OutcomeNoResults:
		return view{text: i18n.T(i18nk.SearchNoResults, map[string]any{
			"Query":   query,
			"Channel": "@" + svc.Publisher.PublishChannel(),
		})}, true
	case core.OutcomeResults:
		files := res.Files
		if len(res.Matches) > 0 {
			files = make([]database.File, len(res.Matches))
			for i, m := range res.Matches {
				files[i] = m.File
			}
		}
		title := i18n.T(i18nk.SearchResults, map[string]any{"Count": len(files), "Query": query})
		return pageView(ctx, title, files), true
	}
	log.FromContext(ctx).Warn("Unhandled outcome", "outcome", res.Outcome)
	return view{text: i18n.T(i18nk.GenericError)}, true
}

// send posts a new message to chatID, used where there is no message to reply to.
func send(ctx *ext.Context, chatID int64, v view) {
	req := &tg.MessagesSendMessageRequest{Message: v.body()}
	if v.markup != nil {
		req.SetReplyMarkup(v.markup)
	}
	if _, err := ctx.SendMessage(chatID, req); err != nil {
		log.FromContext(ctx).Error("Failed to send message", "chat", chatID, "error", err)
	}
}
