package msgelem

import (
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/strutil"
	"github.com/dustin/go-humanize"
	"github.com/gotd/td/tg"

	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/database"
	"github.com/asterix-bot/storage-bot/pkg/tcbdata"
)

const maxLabelLen = 48

func ChannelURL(username string) string {
	return "https://t.me/" + username
}

func urlButton(text, url string) tg.KeyboardButtonClass {
	return &tg.KeyboardButtonURL{Text: text, URL: url}
}

func callbackButton(text string, data []byte) tg.KeyboardButtonClass {
	return &tg.KeyboardButtonCallback{Text: text, Data: data}
}

func row(buttons ...tg.KeyboardButtonClass) tg.KeyboardButtonRow {
	return tg.KeyboardButtonRow{Buttons: buttons}
}

func joinButtonText(role string) string {
	if role == config.RoleBackup {
		return i18n.T(i18nk.ButtonJoinBackup)
	}
	return i18n.T(i18nk.ButtonJoinMain)
}

// BuildJoinKeyboard lists the channels still to join and an "I Joined" button
// carrying the pending deep link token, if any.
func BuildJoinKeyboard(missing []config.RequiredChannel, token string) *tg.ReplyInlineMarkup {
	rows := make([]tg.KeyboardButtonRow, 0, len(missing)+1)
	for _, ch := range missing {
		rows = append(rows, row(urlButton(joinButtonText(ch.Role), ChannelURL(ch.Username))))
	}
	data := tcbdata.Build(tcbdata.TypeJoined)
	if token != "" {
		data = tcbdata.Build(tcbdata.TypeJoined, token)
	}
	rows = append(rows, row(callbackButton(i18n.T(i18nk.ButtonJoined), data)))
	return &tg.ReplyInlineMarkup{Rows: rows}
}

func BuildWelcomeKeyboard(required []config.RequiredChannel) *tg.ReplyInlineMarkup {
	rows := []tg.KeyboardButtonRow{
		row(
			callbackButton(i18n.T(i18nk.ButtonMovies), tcbdata.Build(tcbdata.TypeMenu, tcbdata.MenuMovies)),
			callbackButton(i18n.T(i18nk.ButtonWebseries), tcbdata.Build(tcbdata.TypeMenu, tcbdata.MenuWebseries)),
		),
	}
	channels := make([]tg.KeyboardButtonClass, 0, len(required))
	for _, ch := range required {
		channels = append(channels, urlButton(joinButtonText(ch.Role), ChannelURL(ch.Username)))
	}
	if len(channels) > 0 {
		rows = append(rows, row(channels...))
	}
	rows = append(rows, row(callbackButton(i18n.T(i18nk.ButtonHelp), tcbdata.Build(tcbdata.TypeMenu, tcbdata.MenuHelp))))
	return &tg.ReplyInlineMarkup{Rows: rows}
}

func BuildBackKeyboard() *tg.ReplyInlineMarkup {
	return &tg.ReplyInlineMarkup{Rows: []tg.KeyboardButtonRow{
		row(callbackButton(i18n.T(i18nk.ButtonBack), tcbdata.Build(tcbdata.TypeMenu, tcbdata.MenuStart))),
	}}
}

// FileLabel is the button text for a stored file: its title or name and its size.
func FileLabel(f database.File) string {
	name := f.Title
	if name == "" {
		name = f.FileName
	}
	if name == "" {
		name = fmt.Sprintf("#%d", f.MessageID)
	}
	name = strutil.Ellipsis(strings.TrimSpace(name), maxLabelLen)
	if f.Size > 0 {
		return fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(f.Size)))
	}
	return name
}

func PageItems(files []database.File) []tcbdata.PageItem {
	items := make([]tcbdata.PageItem, len(files))
	for i, f := range files {
		items[i] = tcbdata.PageItem{MessageID: f.MessageID, Label: FileLabel(f)}
	}
	return items
}

// BuildPageKeyboard renders one page of a cached result list stored under pageID.
func BuildPageKeyboard(pageID string, page tcbdata.SearchPage, n, size int) (*tg.ReplyInlineMarkup, int) {
	items, current := page.Page(n, size)
	rows := make([]tg.KeyboardButtonRow, 0, len(items)+2)
	for _, it := range items {
		rows = append(rows, row(callbackButton(it.Label, tcbdata.Build(tcbdata.TypeFile, it.MessageID))))
	}
	if pages := page.Pages(size); pages > 1 {
		nav := make([]tg.KeyboardButtonClass, 0, 2)
		if current > 0 {
			nav = append(nav, callbackButton(i18n.T(i18nk.ButtonPrev), tcbdata.Build(tcbdata.TypePage, pageID, current-1)))
		}
		if current < pages-1 {
			nav = append(nav, callbackButton(i18n.T(i18nk.ButtonNext), tcbdata.Build(tcbdata.TypePage, pageID, current+1)))
		}
		rows = append(rows, row(nav...))
	}
	rows = append(rows, row(callbackButton(i18n.T(i18nk.ButtonBack), tcbdata.Build(tcbdata.TypeMenu, tcbdata.MenuStart))))
	return &tg.ReplyInlineMarkup{Rows: rows}, current
}
