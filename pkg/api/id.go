package api

import (
	"strconv"
	"time"
)

const completionIDPrefix = "chatcmpl-"

// NewCompletionID returns "chatcmpl-" followed by the unix time in milliseconds.
func NewCompletionID(now time.Time) string {
	return completionIDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}
