package config

// inject version by '-X' flag
// go build -ldflags "-X github.com/asterix-bot/storage-bot/config.Version=${VERSION}"
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)
