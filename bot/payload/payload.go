// Package payload builds and parses the callback data attached to the
// bot's inline buttons. Payloads are plain "key:value" strings sent to
// Telegram verbatim, so old buttons keep working across restarts.
package payload

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ReplyKey is the registry key for the admin reply callback.
const ReplyKey = "reply_to"

const replyPrefix = ReplyKey + ":"

var replyPattern = regexp.MustCompile(`^reply_to:\d+$`)

// Reply builds the callback data for an "answer this user" button.
func Reply(userID int64) string {
	return replyPrefix + strconv.FormatInt(userID, 10)
}

// ParseReply extracts the target user ID from reply callback data.
// The whole payload must match exactly; trailing garbage is rejected.
func ParseReply(data string) (int64, error) {
	if !replyPattern.MatchString(data) {
		return 0, fmt.Errorf("payload: malformed reply callback %q", data)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(data, replyPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("payload: reply target out of range in %q: %w", data, err)
	}
	return id, nil
}
