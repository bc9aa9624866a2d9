// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"time"
)

// TimeAgo formats a timestamp relative to now: "Just now" under an
// hour, then whole hours, then whole days.
func TimeAgo(timestamp, now time.Time) string {
	hours := now.Sub(timestamp).Hours()
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", int(hours))
	default:
		return fmt.Sprintf("%dd ago", int(hours/24))
	}
}
