package tgutil

import "github.com/gotd/td/tg"

// NewMessageID returns the id of the first message created by an updates response,
// as returned by messages.sendMessage or messages.forwardMessages.
func NewMessageID(updates tg.UpdatesClass) (int, bool) {
	var list []tg.UpdateClass
	switch u := updates.(type) {
	case *tg.UpdateShortSentMessage:
		return u.ID, u.ID != 0
	case *tg.Updates:
		list = u.Updates
	case *tg.UpdatesCombined:
		list = u.Updates
	case *tg.UpdateShort:
		list = []tg.UpdateClass{u.Update}
	default:
		return 0, false
	}
	for _, update := range list {
		var msg tg.MessageClass
		switch v := update.(type) {
		case *tg.UpdateNewMessage:
			msg = v.Message
		case *tg.UpdateNewChannelMessage:
			msg = v.Message
		case *tg.UpdateMessageID:
			if v.ID != 0 {
				return v.ID, true
			}
			continue
		default:
			continue
		}
		if m, ok := msg.(*tg.Message); ok && m.ID != 0 {
			return m.ID, true
		}
	}
	return 0, false
}
