package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/dispatcher/handlers"
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/ext"

	botfilters "github.com/asterix-bot/storage-bot/client/bot/handlers/utils/filters"
	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
	"github.com/asterix-bot/storage-bot/core"
	"github.com/asterix-bot/storage-bot/pkg/tcbdata"
)

type DescCommandHandler struct {
	Cmd     string
	Desc    i18nk.Key
	Public  bool // listed in the bot command menu
	handler func(ctx *ext.Context, u *ext.Update) error
}

var CommandHandlers = []DescCommandHandler{
	{"start", i18nk.CmdStart, true, handleStartCmd},
	{"search", i18nk.CmdSearch, true, handleSearchCmd},
	{"help", i18nk.CmdHelp, true, handleHelpCmd},
	{"link", "", false, ownerOnly(handleLinkCmd)},
	{"post", "", false, ownerOnly(handlePostCmd)},
	{"ban", "", false, ownerOnly(handleBanCmd)},
	{"stats", "", false, ownerOnly(handleStatsCmd)},
}

var svc *core.Services

func Register(disp dispatcher.Dispatcher, services *core.Services) {
	svc = services
	disp.AddHandler(handlers.NewMessage(filters.Message.ChatType(filters.ChatTypeChannel), func(ctx *ext.Context, u *ext.Update) error {
		return dispatcher.EndGroups
	}))
	disp.AddHandler(handlers.NewMessage(filters.Message.ChatType(filters.ChatTypeChat), func(ctx *ext.Context, u *ext.Update) error {
		return dispatcher.EndGroups
	}))
	for _, info := range CommandHandlers {
		disp.AddHandler(handlers.NewCommand(info.Cmd, info.handler))
	}
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypeJoined), handleJoinedCallback))
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypeMenu), handleMenuCallback))
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypeFile), handleFileCallback))
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(tcbdata.TypePage), handlePageCallback))
	disp.AddHandler(handlers.NewMessage(botfilters.ChannelForward, handleForwardMessage))
	disp.AddHandler(handlers.NewMessage(filters.Message.Text, handleTextMessage))
}
