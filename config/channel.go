package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ChannelsConfig holds the channels the bot works with.
// Storage is the numeric id of the private storage channel, with or without the -100 prefix.
type ChannelsConfig struct {
	Main    string `toml:"main" mapstructure:"main" json:"main"`
	Backup  string `toml:"backup" mapstructure:"backup" json:"backup"`
	Storage int64  `toml:"storage" mapstructure:"storage" json:"storage"`
	Publish string `toml:"publish" mapstructure:"publish" json:"publish"` // defaults to Main
}

const (
	RoleMain   = "main"
	RoleBackup = "backup"
)

type RequiredChannel struct {
	Role     string
	Username string
}

// Required returns the channels a user must join, main first.
func (c ChannelsConfig) Required() []RequiredChannel {
	chs := make([]RequiredChannel, 0, 2)
	if c.Main != "" {
		chs = append(chs, RequiredChannel{Role: RoleMain, Username: c.Main})
	}
	if c.Backup != "" {
		chs = append(chs, RequiredChannel{Role: RoleBackup, Username: c.Backup})
	}
	return chs
}

var channelKeys = []string{"main", "backup", "storage", "publish"}

// LoadChannels reads the [channels] section key by key so that env overrides apply,
// then decodes it weakly: FILE_CH_ID arrives as a string from the environment.
func LoadChannels(v *viper.Viper) (*ChannelsConfig, error) {
	raw := make(map[string]any, len(channelKeys))
	for _, key := range channelKeys {
		if val := v.Get("channels." + key); val != nil {
			raw[key] = val
		}
	}
	var chs ChannelsConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &chs,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode channels config: %w", err)
	}
	chs.Main = normalizeUsername(chs.Main)
	chs.Backup = normalizeUsername(chs.Backup)
	chs.Publish = normalizeUsername(chs.Publish)
	if chs.Publish == "" {
		chs.Publish = chs.Main
	}
	return &chs, nil
}

func normalizeUsername(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "https://t.me/")
	return strings.TrimPrefix(s, "@")
}
