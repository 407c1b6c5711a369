package tgutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/celestix/gotgproto/ext"
	"github.com/duke-git/lancet/v2/validator"
)

// NormalizeChannelID strips the -100 prefix the Bot API puts in front of channel ids.
func NormalizeChannelID(id int64) int64 {
	s := strconv.FormatInt(id, 10)
	if rest, ok := strings.CutPrefix(s, "-100"); ok && rest != "" {
		if n, err := strconv.ParseInt(rest, 10, 64); err == nil {
			return n
		}
	}
	if id < 0 {
		return -id
	}
	return id
}

// ParseChatID accepts a numeric id or a username (with or without @) and resolves the latter.
func ParseChatID(ctx *ext.Context, idOrUsername string) (int64, error) {
	idOrUsername = strings.TrimPrefix(strings.TrimSpace(idOrUsername), "@")
	if validator.IsIntStr(idOrUsername) {
		return strconv.ParseInt(idOrUsername, 10, 64)
	}
	chat, err := ctx.ResolveUsername(idOrUsername)
	if err != nil {
		return 0, err
	}
	if chat == nil {
		return 0, fmt.Errorf("no chat found for username: %s", idOrUsername)
	}
	chatID := chat.GetID()
	if chatID == 0 {
		return 0, fmt.Errorf("chat ID is zero for username: %s", idOrUsername)
	}
	return chatID, nil
}
