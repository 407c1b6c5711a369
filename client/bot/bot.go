package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"

	"github.com/asterix-bot/storage-bot/client/bot/handlers"
	"github.com/asterix-bot/storage-bot/client/middleware"
	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/common/utils/tgutil"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/core"
	"github.com/asterix-bot/storage-bot/database"
)

func newClient(ctx context.Context) (*gotgproto.Client, error) {
	resolver, err := tgutil.NewConfigProxyResolver()
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	return gotgproto.NewClient(
		config.C().Telegram.AppID,
		config.C().Telegram.AppHash,
		gotgproto.ClientTypeBot(config.C().Telegram.Token),
		&gotgproto.ClientOpts{
			Session:          sessionMaker.SqlSession(database.GetDialect(database.DSN(config.C().DB.Session))),
			DisableCopyright: true,
			Middlewares:      middleware.NewDefaultMiddlewares(ctx, 5*time.Minute),
			Resolver:         resolver,
			Context:          ctx,
			MaxRetries:       config.C().Telegram.RpcRetry,
			ErrorHandler: func(ctx *ext.Context, u *ext.Update, s string) error {
				log.FromContext(ctx).Errorf("unhandled error: %s", s)
				return dispatcher.EndGroups
			},
		},
	)
}

func setCommands(ctx context.Context, api *tg.Client) error {
	commands := make([]tg.BotCommand, 0, len(handlers.CommandHandlers))
	for _, info := range handlers.CommandHandlers {
		if !info.Public {
			continue
		}
		commands = append(commands, tg.BotCommand{Command: info.Cmd, Description: i18n.T(info.Desc)})
	}
	_, err := api.BotsSetBotCommands(ctx, &tg.BotsSetBotCommandsRequest{
		Scope:    &tg.BotCommandScopeDefault{},
		Commands: commands,
	})
	return err
}

// Init logs the bot in, retrying up to telegram.start_retry times, and registers the handlers.
func Init(ctx context.Context, store *database.Store, obs *metrics.Observer) (*gotgproto.Client, error) {
	logger := log.FromContext(ctx)
	logger.Info("Initializing Bot...")

	var client *gotgproto.Client
	var b backoff.BackOff = backoff.NewExponentialBackOff()
	b = backoff.WithMaxRetries(b, config.C().Telegram.StartRetry)
	err := backoff.RetryNotify(func() error {
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		client = c
		return nil
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		logger.Warn("Bot login failed, retrying", "error", err, "next", next)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	if err := setCommands(ctx, client.API()); err != nil {
		logger.Warn("Failed to set bot commands", "error", err)
	}

	cfg := config.C()
	p := newPlatform(client.API(), client.PeerStorage, cfg.Channels.Storage)
	services := core.New(cfg, client.Self.Username, p, store, obs)
	handlers.Register(client.Dispatcher, services)

	logger.Info("Bot initialization completed.", "username", services.Publisher.BotUsername())
	return client, nil
}
