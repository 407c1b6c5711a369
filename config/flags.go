package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file path")
	flags.StringP("lang", "l", "", "language (e.g., en, bn)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("proxy", "", "proxy URL (http, https, socks5, socks5h)")
	flags.Int64Slice("owners", nil, "telegram user ids allowed to run owner commands")

	// telegram
	flags.String("telegram-token", "", "telegram bot token")
	flags.Int("telegram-app-id", 0, "telegram app id")
	flags.String("telegram-app-hash", "", "telegram app hash")
	flags.String("telegram-bot-username", "", "bot username used in deep links, resolved at login when empty")
	flags.Int("telegram-rpc-retry", 0, "telegram rpc retry times")
	flags.Bool("telegram-proxy-enable", false, "enable telegram proxy")
	flags.String("telegram-proxy-url", "", "telegram proxy URL")

	// channels
	flags.String("main-channel", "", "main channel username")
	flags.String("backup-channel", "", "backup channel username")
	flags.Int64("storage-channel", 0, "storage channel id")
	flags.String("publish-channel", "", "channel where owner posts are published, defaults to the main channel")

	// database
	flags.String("db-path", "", "database path")
	flags.String("db-session", "", "session database path")

	flags.String("relay-mode", "", "relay mode: copy or forward")
	flags.Bool("metrics-enable", false, "serve prometheus metrics")
	flags.String("metrics-addr", "", "metrics listen address")

	bindFlags(cmd)
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	viper.BindPFlag("lang", flags.Lookup("lang"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("proxy", flags.Lookup("proxy"))
	viper.BindPFlag("owners", flags.Lookup("owners"))

	viper.BindPFlag("telegram.token", flags.Lookup("telegram-token"))
	viper.BindPFlag("telegram.app_id", flags.Lookup("telegram-app-id"))
	viper.BindPFlag("telegram.app_hash", flags.Lookup("telegram-app-hash"))
	viper.BindPFlag("telegram.bot_username", flags.Lookup("telegram-bot-username"))
	viper.BindPFlag("telegram.rpc_retry", flags.Lookup("telegram-rpc-retry"))
	viper.BindPFlag("telegram.proxy.enable", flags.Lookup("telegram-proxy-enable"))
	viper.BindPFlag("telegram.proxy.url", flags.Lookup("telegram-proxy-url"))

	viper.BindPFlag("channels.main", flags.Lookup("main-channel"))
	viper.BindPFlag("channels.backup", flags.Lookup("backup-channel"))
	viper.BindPFlag("channels.storage", flags.Lookup("storage-channel"))
	viper.BindPFlag("channels.publish", flags.Lookup("publish-channel"))

	viper.BindPFlag("db.path", flags.Lookup("db-path"))
	viper.BindPFlag("db.session", flags.Lookup("db-session"))

	viper.BindPFlag("relay.mode", flags.Lookup("relay-mode"))
	viper.BindPFlag("metrics.enable", flags.Lookup("metrics-enable"))
	viper.BindPFlag("metrics.addr", flags.Lookup("metrics-addr"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}
