package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
)

func handleHelpCmd(ctx *ext.Context, update *ext.Update) error {
	reply(ctx, update, helpView())
	return dispatcher.EndGroups
}
