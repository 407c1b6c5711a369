package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validViper() *viper.Viper {
	v := viper.New()
	v.Set("telegram.token", "123:abc")
	v.Set("owners", []int64{5711576992})
	v.Set("channels.main", "@FreeWebseriesBD")
	v.Set("channels.backup", "AsterixMovies")
	v.Set("channels.storage", -1003017034291)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(validViper())
	require.NoError(t, err)

	assert.Equal(t, "en", c.Lang)
	assert.Equal(t, RelayModeCopy, c.Relay.Mode)
	assert.Equal(t, 60, c.Search.Cutoff)
	assert.Equal(t, 1025907, c.Telegram.AppID)
	assert.Equal(t, "FreeWebseriesBD", c.Channels.Main)
	assert.Equal(t, "AsterixMovies", c.Channels.Backup)
	assert.Equal(t, "FreeWebseriesBD", c.Channels.Publish)
	assert.Equal(t, int64(-1003017034291), c.Channels.Storage)
	assert.Equal(t, []int64{5711576992}, c.Owners)
}

func TestLoad_RequiredChannelsOrder(t *testing.T) {
	c, err := Load(validViper())
	require.NoError(t, err)

	required := c.Channels.Required()
	require.Len(t, required, 2)
	assert.Equal(t, RequiredChannel{Role: RoleMain, Username: "FreeWebseriesBD"}, required[0])
	assert.Equal(t, RequiredChannel{Role: RoleBackup, Username: "AsterixMovies"}, required[1])
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "999:legacy")
	t.Setenv("FILE_CH_ID", "-1001234")
	t.Setenv("MAIN_CHANNEL", "@legacy_main")
	t.Setenv("OWNER_IDS", "1,2")

	v := viper.New()
	c, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "999:legacy", c.Telegram.Token)
	assert.Equal(t, int64(-1001234), c.Channels.Storage)
	assert.Equal(t, "legacy_main", c.Channels.Main)
	assert.Equal(t, []int64{1, 2}, c.Owners)
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	t.Setenv("BOT_TOKEN", "999:legacy")
	t.Setenv("ASTERIX_TELEGRAM_TOKEN", "111:new")

	v := viper.New()
	v.Set("owners", []int64{1})
	v.Set("channels.main", "main")
	v.Set("channels.storage", 42)
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "111:new", c.Telegram.Token)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{"placeholder token", func(v *viper.Viper) { v.Set("telegram.token", "PASTE_YOUR_BOT_TOKEN_HERE") }, "telegram.token"},
		{"no storage", func(v *viper.Viper) { v.Set("channels.storage", 0) }, "channels.storage"},
		{"no owners", func(v *viper.Viper) { v.Set("owners", []int64{}) }, "owners"},
		{"no channels", func(v *viper.Viper) {
			v.Set("channels.main", "")
			v.Set("channels.backup", "")
		}, "channels.main"},
		{"bad relay mode", func(v *viper.Viper) { v.Set("relay.mode", "teleport") }, "relay.mode"},
		{"bad cutoff", func(v *viper.Viper) { v.Set("search.cutoff", 101) }, "search.cutoff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validViper()
			tt.mutate(v)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
