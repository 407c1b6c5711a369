// Package deeplink converts storage-channel message ids to /start payloads and back.
package deeplink

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const Prefix = "file_"

var ErrInvalidToken = errors.New("invalid deep-link token")

func Encode(messageID int) string {
	return Prefix + strconv.Itoa(messageID)
}

// Decode accepts "file_<id>" and the bare numeric form used by older links.
// The id must be a positive decimal that fits a Telegram message id.
func Decode(token string) (int, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(token), Prefix)
	if raw == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(raw, 10, 31)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	return int(id), nil
}

// URL returns the t.me link that opens the bot with the encoded payload.
func URL(botUsername string, messageID int) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", strings.TrimPrefix(botUsername, "@"), Encode(messageID))
}
