package retry

import (
	"context"
	"testing"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/stretchr/testify/assert"
)

type countingInvoker struct {
	calls int
	errs  []error
}

func (c *countingInvoker) Invoke(_ context.Context, _ bin.Encoder, _ bin.Decoder) error {
	c.calls++
	if c.calls <= len(c.errs) {
		return c.errs[c.calls-1]
	}
	return nil
}

func TestRetry_InternalErrors(t *testing.T) {
	inv := &countingInvoker{errs: []error{tgerr.New(500, "RPC_CALL_FAIL"), tgerr.New(500, "RPC_CALL_FAIL")}}
	err := New(5).Handle(inv)(context.Background(), &tg.MessagesGetDialogsRequest{}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, inv.calls)
}

func TestRetry_Limit(t *testing.T) {
	fail := tgerr.New(500, "RPC_CALL_FAIL")
	inv := &countingInvoker{errs: []error{fail, fail, fail, fail}}
	err := New(2).Handle(inv)(context.Background(), &tg.MessagesGetDialogsRequest{}, nil)
	assert.Error(t, err)
	assert.True(t, tgerr.Is(err, "RPC_CALL_FAIL"))
	assert.Equal(t, 2, inv.calls)
}

func TestRetry_OtherErrorsPassThrough(t *testing.T) {
	inv := &countingInvoker{errs: []error{tgerr.New(400, "USER_NOT_PARTICIPANT")}}
	err := New(5).Handle(inv)(context.Background(), &tg.MessagesGetDialogsRequest{}, nil)
	assert.True(t, tgerr.Is(err, "USER_NOT_PARTICIPANT"))
	assert.Equal(t, 1, inv.calls)
}

func TestRetry_SingleShotRequests(t *testing.T) {
	for _, input := range []bin.Encoder{&tg.ChannelsGetParticipantRequest{}, &tg.MessagesForwardMessagesRequest{}} {
		inv := &countingInvoker{errs: []error{tgerr.New(500, "RPC_CALL_FAIL")}}
		err := New(5).Handle(inv)(context.Background(), input, nil)
		assert.Error(t, err)
		assert.Equal(t, 1, inv.calls, "%T must not be retried", input)
	}
}
