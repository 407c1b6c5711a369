package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type Config struct {
	Lang   string  `toml:"lang" mapstructure:"lang" json:"lang"`
	Proxy  string  `toml:"proxy" mapstructure:"proxy" json:"proxy"`
	Owners []int64 `toml:"owners" mapstructure:"owners" json:"owners"`

	Log      logConfig      `toml:"log" mapstructure:"log"`
	DB       dbConfig       `toml:"db" mapstructure:"db"`
	Cache    cacheConfig    `toml:"cache" mapstructure:"cache"`
	Telegram telegramConfig `toml:"telegram" mapstructure:"telegram"`
	Relay    relayConfig    `toml:"relay" mapstructure:"relay"`
	Search   searchConfig   `toml:"search" mapstructure:"search"`
	Metrics  metricsConfig  `toml:"metrics" mapstructure:"metrics"`
	Channels ChannelsConfig `toml:"-" mapstructure:"-" json:"channels"`
}

type logConfig struct {
	Level string `toml:"level" mapstructure:"level"`
}

type relayConfig struct {
	Mode string `toml:"mode" mapstructure:"mode"` // copy or forward
}

type searchConfig struct {
	Cutoff   int `toml:"cutoff" mapstructure:"cutoff"`
	Limit    int `toml:"limit" mapstructure:"limit"`
	PageSize int `toml:"page_size" mapstructure:"page_size" json:"page_size"`
}

type metricsConfig struct {
	Enable bool   `toml:"enable" mapstructure:"enable"`
	Addr   string `toml:"addr" mapstructure:"addr"`
}

const (
	RelayModeCopy    = "copy"
	RelayModeForward = "forward"

	tokenPlaceholder = "PASTE_YOUR_BOT_TOKEN_HERE"
)

var cfg = &Config{}

func C() *Config {
	return cfg
}

// legacyEnv maps config keys to the environment variable names older deployments use.
var legacyEnv = map[string]string{
	"telegram.token":    "BOT_TOKEN",
	"telegram.app_id":   "API_ID",
	"telegram.app_hash": "API_HASH",
	"channels.main":     "MAIN_CHANNEL",
	"channels.backup":   "BACKUP_CH",
	"channels.storage":  "FILE_CH_ID",
	"owners":            "OWNER_IDS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lang", "en")

	v.SetDefault("telegram.app_id", 1025907)
	v.SetDefault("telegram.app_hash", "452b0359b988148995f22ff0f4229750")
	v.SetDefault("telegram.rpc_retry", 5)
	v.SetDefault("telegram.flood_retry", 5)
	v.SetDefault("telegram.start_retry", 5)

	v.SetDefault("log.level", "info")

	v.SetDefault("db.path", "data/asterix.db")
	v.SetDefault("db.session", "data/session.db")

	v.SetDefault("cache.ttl", 3600)
	v.SetDefault("cache.num_counters", 100000)
	v.SetDefault("cache.max_cost", 1000000)
	v.SetDefault("cache.membership_ttl", 60)

	v.SetDefault("relay.mode", RelayModeCopy)

	v.SetDefault("search.cutoff", 60)
	v.SetDefault("search.limit", 30)
	v.SetDefault("search.page_size", 6)

	v.SetDefault("metrics.addr", "127.0.0.1:9464")
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix("ASTERIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := "ASTERIX_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// Init loads the global config from file, environment and bound flags.
// A missing config file is not an error: the bot can be configured from the environment alone.
func Init(ctx context.Context, configFile ...string) error {
	v := viper.GetViper()
	if len(configFile) > 0 && configFile[0] != "" {
		v.SetConfigFile(configFile[0])
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/asterix/")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		log.FromContext(ctx).Warn("No config file found, using defaults and environment")
	}
	c, err := Load(v)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	chs, err := LoadChannels(v)
	if err != nil {
		return nil, err
	}
	c.Channels = *chs
	c.Relay.Mode = strings.ToLower(strings.TrimSpace(c.Relay.Mode))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate only checks presence and placeholders; credentials are verified by Telegram at login.
func (c *Config) Validate() error {
	var errs []error
	if c.Telegram.Token == "" || strings.HasPrefix(c.Telegram.Token, tokenPlaceholder) {
		errs = append(errs, errors.New("telegram.token is not set"))
	}
	if c.Telegram.AppID == 0 || c.Telegram.AppHash == "" {
		errs = append(errs, errors.New("telegram.app_id and telegram.app_hash are required"))
	}
	if c.Channels.Storage == 0 {
		errs = append(errs, errors.New("channels.storage is not set"))
	}
	if len(c.Channels.Required()) == 0 {
		errs = append(errs, errors.New("at least one of channels.main and channels.backup is required"))
	}
	if len(c.Owners) == 0 {
		errs = append(errs, errors.New("owners must contain at least one user id"))
	}
	if !slices.Contains([]string{RelayModeCopy, RelayModeForward}, c.Relay.Mode) {
		errs = append(errs, fmt.Errorf("relay.mode must be %q or %q, got %q", RelayModeCopy, RelayModeForward, c.Relay.Mode))
	}
	if c.Search.Cutoff < 0 || c.Search.Cutoff > 100 {
		errs = append(errs, fmt.Errorf("search.cutoff must be within 0..100, got %d", c.Search.Cutoff))
	}
	return errors.Join(errs...)
}
