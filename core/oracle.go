package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/asterix-bot/storage-bot/common/cache"
	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/config"
)

// Oracle decides whether users belong to the required channels.
// It fails closed: any error while asking Telegram counts as not a member.
type Oracle struct {
	participants Participants
	required     []config.RequiredChannel
	ttl          time.Duration
	obs          *metrics.Observer
}

// NewOracle builds an Oracle. Positive answers are cached for ttl, zero disables caching.
func NewOracle(participants Participants, required []config.RequiredChannel, ttl time.Duration, obs *metrics.Observer) *Oracle {
	return &Oracle{
		participants: participants,
		required:     required,
		ttl:          ttl,
		obs:          obs,
	}
}

func (o *Oracle) Required() []config.RequiredChannel {
	return o.required
}

func (o *Oracle) IsMember(ctx context.Context, userID int64, channel string) bool {
	key := memberKey(channel, userID)
	if o.ttl > 0 {
		if member, ok := cache.Get[bool](key); ok && member {
			return true
		}
	}
	status, err := o.participants.ParticipantStatus(ctx, channel, userID)
	if err != nil {
		log.FromContext(ctx).Warn("Membership check failed, treating as not joined", "channel", channel, "user", userID, "error", err)
		return false
	}
	member := status == StatusMember
	if member && o.ttl > 0 {
		if err := cache.SetWithTTL(key, true, o.ttl); err != nil {
			log.FromContext(ctx).Debug("Failed to cache membership", "error", err)
		}
	}
	return member
}

// Check asks every required channel at once and returns the ones the user is missing, in config order.
func (o *Oracle) Check(ctx context.Context, userID int64) []config.RequiredChannel {
	joined := make([]bool, len(o.required))
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range o.required {
		g.Go(func() error {
			joined[i] = o.IsMember(gctx, userID, ch.Username)
			o.obs.RecordMembership(ch.Role, joined[i])
			return nil
		})
	}
	// lookups never return an error, a failed one already counts as not joined
	_ = g.Wait()

	var missing []config.RequiredChannel
	for i, ch := range o.required {
		if !joined[i] {
			missing = append(missing, ch)
		}
	}
	return missing
}

func memberKey(channel string, userID int64) string {
	return fmt.Sprintf("member:%s:%d", strings.ToLower(channel), userID)
}
