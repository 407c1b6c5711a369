package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/asterix-bot/storage-bot/cmd/stats"
	"github.com/asterix-bot/storage-bot/config"
)

var rootCmd = &cobra.Command{
	Use:   "asterix-bot",
	Short: "Telegram file delivery bot gated on channel membership",
	RunE:  Run,
}

func init() {
	config.RegisterFlags(rootCmd)
	stats.Register(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute(ctx context.Context) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "asterix",
	})
	ctx = log.WithContext(ctx, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
