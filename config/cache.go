package config

type cacheConfig struct {
	TTL           int64 `toml:"ttl" mapstructure:"ttl" json:"ttl"`
	NumCounters   int64 `toml:"num_counters" mapstructure:"num_counters" json:"num_counters"`
	MaxCost       int64 `toml:"max_cost" mapstructure:"max_cost" json:"max_cost"`
	MembershipTTL int64 `toml:"membership_ttl" mapstructure:"membership_ttl" json:"membership_ttl"` // seconds, 0 disables
}
