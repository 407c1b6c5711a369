package re

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	// t.me/c/<channel id>/<message id> or t.me/<username>/<message id>
	TgMessageLinkRegexString = `^https?://t\.me/(?:c/(\d+)|([A-Za-z0-9_]+))/(\d+)(?:\?[^\s#]*)?$`
	TgMessageLinkRegexp      = regexp.MustCompile(TgMessageLinkRegexString)
)

var ErrBadMessageRef = errors.New("not a message id or link")

// MessageRef is a message id, optionally with the channel a link pointed into.
// A bare id has neither ChannelID nor Username.
type MessageRef struct {
	MessageID int
	ChannelID int64  // private t.me/c/ links
	Username  string // public t.me/<username>/ links
}

// ParseMessageRef accepts a message id or a t.me message link.
func ParseMessageRef(ref string) (MessageRef, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		if id <= 0 {
			return MessageRef{}, ErrBadMessageRef
		}
		return MessageRef{MessageID: id}, nil
	}
	m := TgMessageLinkRegexp.FindStringSubmatch(ref)
	if m == nil {
		return MessageRef{}, ErrBadMessageRef
	}
	id, err := strconv.Atoi(m[3])
	if err != nil || id <= 0 {
		return MessageRef{}, ErrBadMessageRef
	}
	msgRef := MessageRef{MessageID: id, Username: m[2]}
	if m[1] != "" {
		msgRef.ChannelID, err = strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return MessageRef{}, ErrBadMessageRef
		}
	}
	return msgRef, nil
}
