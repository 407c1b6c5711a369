// Package core holds the bot's services: the membership oracle, the file relay,
// the delivery gate in front of both and the owner publisher.
package core

import (
	"time"

	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/config"
)

type Services struct {
	Oracle    *Oracle
	Relay     *Relay
	Gate      *Gate
	Publisher *Publisher
}

// New wires the services from cfg. botUsername is the username the client logged in as.
func New(cfg *config.Config, botUsername string, platform Platform, ledger Ledger, obs *metrics.Observer) *Services {
	if cfg.Telegram.BotUsername != "" {
		botUsername = cfg.Telegram.BotUsername
	}
	oracle := NewOracle(platform, cfg.Channels.Required(), time.Duration(cfg.Cache.MembershipTTL)*time.Second, obs)
	relay := NewRelay(platform, ledger, cfg.Relay.Mode, obs)
	gate := NewGate(ledger, oracle, relay, SearchConfig{
		Cutoff: cfg.Search.Cutoff,
		Limit:  cfg.Search.Limit,
	}, obs)
	publisher := NewPublisher(PublisherConfig{
		Owners:         cfg.Owners,
		BotUsername:    botUsername,
		StorageChannel: cfg.Channels.Storage,
		PublishChannel: cfg.Channels.Publish,
	}, platform, platform, ledger, obs)
	return &Services{
		Oracle:    oracle,
		Relay:     relay,
		Gate:      gate,
		Publisher: publisher,
	}
}
