package filters

import (
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/types"
	"github.com/gotd/td/tg"
)

// ChannelForward matches messages forwarded from a channel post.
var ChannelForward filters.MessageFilter = func(m *types.Message) bool {
	if m == nil || m.Message == nil {
		return false
	}
	fwd, ok := m.GetFwdFrom()
	if !ok {
		return false
	}
	from, ok := fwd.GetFromID()
	if !ok {
		return false
	}
	_, isChannel := from.(*tg.PeerChannel)
	return isChannel
}
