package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/asterix-bot/storage-bot/client/bot"
	"github.com/asterix-bot/storage-bot/common/cache"
	"github.com/asterix-bot/storage-bot/common/i18n"
	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/database"
)

func Run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := config.Init(ctx, config.GetConfigFile(cmd)); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := log.FromContext(ctx)
	if level, err := log.ParseLevel(config.C().Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("Unknown log level, keeping info", "level", config.C().Log.Level)
	}
	i18n.Init(config.C().Lang)
	cache.Init()
	store := database.Init(ctx)
	defer store.Close()

	obs, err := metrics.NewObserver("asterix", prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if config.C().Metrics.Enable {
		go func() {
			logger.Info("Serving metrics", "addr", config.C().Metrics.Addr)
			if err := metrics.Serve(ctx, config.C().Metrics.Addr, prometheus.DefaultGatherer); err != nil {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	client, err := bot.Init(ctx, store, obs)
	if err != nil {
		return err
	}
	logger.Info("Bot is running, press Ctrl+C to stop")
	<-ctx.Done()
	logger.Info("Exiting...")
	client.Stop()
	logger.Info("Bye!")
	return nil
}
