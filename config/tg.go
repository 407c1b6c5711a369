package config

type telegramConfig struct {
	Token       string      `toml:"token" mapstructure:"token"`
	AppID       int         `toml:"app_id" mapstructure:"app_id" json:"app_id"`
	AppHash     string      `toml:"app_hash" mapstructure:"app_hash" json:"app_hash"`
	BotUsername string      `toml:"bot_username" mapstructure:"bot_username" json:"bot_username"` // resolved from the session when empty
	Proxy       ProxyConfig `toml:"proxy" mapstructure:"proxy"`
	RpcRetry    int         `toml:"rpc_retry" mapstructure:"rpc_retry" json:"rpc_retry"`
	FloodRetry  uint        `toml:"flood_retry" mapstructure:"flood_retry" json:"flood_retry"`
	StartRetry  uint64      `toml:"start_retry" mapstructure:"start_retry" json:"start_retry"`
}

type ProxyConfig struct {
	Enable bool   `toml:"enable" mapstructure:"enable"`
	URL    string `toml:"url" mapstructure:"url"`
}
