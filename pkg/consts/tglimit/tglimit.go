package tglimit

// Bot API limits the bot formats its messages and buttons against.
const (
	MaxMessageLength   = 4096
	MaxCallbackDataLen = 64
	MaxStartParamLen   = 64
	MaxCommandDescLen  = 256
)
