package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/celestix/gotgproto/storage"
	"github.com/duke-git/lancet/v2/validator"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/core"
)

// platform adapts the MTProto client to the core services.
type platform struct {
	api       *tg.Client
	peers     *storage.PeerStorage
	storageID int64
}

var _ core.Platform = (*platform)(nil)

func newPlatform(api *tg.Client, peers *storage.PeerStorage, storageChannel int64) *platform {
	return &platform{
		api:       api,
		peers:     peers,
		storageID: tgutil.NormalizeChannelID(storageChannel),
	}
}

func (p *platform) channelByUsername(ctx context.Context, username string) (*tg.InputChannel, error) {
	if peer := p.peers.GetPeerByUsername(username); peer != nil && peer.ID != 0 && peer.AccessHash != 0 {
		return &tg.InputChannel{ChannelID: peer.ID, AccessHash: peer.AccessHash}, nil
	}
	resolved, err := p.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve @%s: %w", username, err)
	}
	for _, chat := range resolved.Chats {
		if ch, ok := chat.(*tg.Channel); ok {
			p.peers.AddPeer(ch.ID, ch.AccessHash, storage.TypeChannel, ch.Username)
			return ch.AsInput(), nil
		}
	}
	return nil, fmt.Errorf("@%s is not a channel", username)
}

// channelByID looks the channel up in the peer storage first. Bots may ask for channels
// they are in with a zero access hash, which is how the storage channel gets resolved
// on a fresh session.
func (p *platform) channelByID(ctx context.Context, id int64) (*tg.InputChannel, error) {
	if peer, ok := p.peers.GetInputPeerById(id).(*tg.InputPeerChannel); ok {
		return &tg.InputChannel{ChannelID: peer.ChannelID, AccessHash: peer.AccessHash}, nil
	}
	chats, err := p.api.ChannelsGetChannels(ctx, []tg.InputChannelClass{&tg.InputChannel{ChannelID: id}})
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %d: %w", id, err)
	}
	for _, chat := range chats.GetChats() {
		if ch, ok := chat.(*tg.Channel); ok && ch.ID == id {
			p.peers.AddPeer(ch.ID, ch.AccessHash, storage.TypeChannel, ch.Username)
			return ch.AsInput(), nil
		}
	}
	return nil, fmt.Errorf("channel %d is not accessible", id)
}

// channel resolves a username or a numeric channel id.
func (p *platform) channel(ctx context.Context, ref string) (*tg.InputChannel, error) {
	if validator.IsIntStr(ref) {
		id, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			return nil, err
		}
		return p.channelByID(ctx, tgutil.NormalizeChannelID(id))
	}
	return p.channelByUsername(ctx, ref)
}

func (p *platform) userPeer(userID int64) tg.InputPeerClass {
	switch peer := p.peers.GetInputPeerById(userID).(type) {
	case *tg.InputPeerUser:
		return peer
	}
	return &tg.InputPeerUser{UserID: userID}
}

func (p *platform) ParticipantStatus(ctx context.Context, channel string, userID int64) (core.ParticipantStatus, error) {
	ch, err := p.channel(ctx, channel)
	if err != nil {
		return core.StatusNone, err
	}
	res, err := p.api.ChannelsGetParticipant(ctx, &tg.ChannelsGetParticipantRequest{
		Channel:     ch,
		Participant: p.userPeer(userID),
	})
	if err != nil {
		if tgerr.Is(err, "USER_NOT_PARTICIPANT") {
			return core.StatusNone, nil
		}
		return core.StatusNone, err
	}
	switch res.Participant.(type) {
	case *tg.ChannelParticipant, *tg.ChannelParticipantSelf, *tg.ChannelParticipantCreator, *tg.ChannelParticipantAdmin:
		return core.StatusMember, nil
	case *tg.ChannelParticipantBanned:
		return core.StatusBanned, nil
	}
	return core.StatusNone, nil
}

func (p *platform) Transfer(ctx context.Context, toChatID int64, messageID int, dropAuthor bool) (int, error) {
	from, err := p.channelByID(ctx, p.storageID)
	if err != nil {
		return 0, err
	}
	updates, err := p.api.MessagesForwardMessages(ctx, &tg.MessagesForwardMessagesRequest{
		FromPeer:   &tg.InputPeerChannel{ChannelID: from.ChannelID, AccessHash: from.AccessHash},
		ToPeer:     p.userPeer(toChatID),
		ID:         []int{messageID},
		RandomID:   []int64{rand.Int64()},
		DropAuthor: dropAuthor,
	})
	if err != nil {
		return 0, err
	}
	id, ok := tgutil.NewMessageID(updates)
	if !ok {
		return 0, fmt.Errorf("message %d was not forwarded", messageID)
	}
	return id, nil
}

func (p *platform) StorageMessage(ctx context.Context, messageID int) (tgutil.MediaInfo, error) {
	ch, err := p.channelByID(ctx, p.storageID)
	if err != nil {
		return tgutil.MediaInfo{}, err
	}
	res, err := p.api.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{
		Channel: ch,
		ID:      []tg.InputMessageClass{&tg.InputMessageID{ID: messageID}},
	})
	if err != nil {
		return tgutil.MediaInfo{}, err
	}
	modified, ok := res.AsModified()
	if !ok {
		return tgutil.MediaInfo{}, fmt.Errorf("unexpected messages type: %T", res)
	}
	for _, m := range modified.GetMessages() {
		msg, ok := m.(*tg.Message)
		if !ok || msg.ID != messageID {
			continue
		}
		info, ok := tgutil.DescribeMessage(msg)
		if !ok {
			return tgutil.MediaInfo{}, fmt.Errorf("message %d has no file", messageID)
		}
		return info, nil
	}
	return tgutil.MediaInfo{}, fmt.Errorf("message %d not found", messageID)
}

func (p *platform) PostWithButton(ctx context.Context, channel, text, buttonText, buttonURL string) error {
	ch, err := p.channel(ctx, channel)
	if err != nil {
		return err
	}
	_, err = p.api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
		Peer:     &tg.InputPeerChannel{ChannelID: ch.ChannelID, AccessHash: ch.AccessHash},
		Message:  text,
		RandomID: rand.Int64(),
		ReplyMarkup: &tg.ReplyInlineMarkup{Rows: []tg.KeyboardButtonRow{{
			Buttons: []tg.KeyboardButtonClass{&tg.KeyboardButtonURL{Text: buttonText, URL: buttonURL}},
		}}},
	})
	return err
}
