// Package inactivity decides which clan members have been away for too long.
package inactivity

import (
	"time"

	"github.com/edgard/clanwatch/internal/clan"
)

// Deadline returns the cutoff for a window: members last seen before it are inactive.
func Deadline(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}

// Filter returns the members whose last-seen time is strictly before deadline,
// in their original order. A member seen exactly at the deadline is kept out.
// The first malformed timestamp aborts the whole filter with a PARSE error;
// no member is ever skipped silently.
func Filter(members []clan.Member, deadline time.Time) ([]clan.Member, error) {
	var inactive []clan.Member
	for _, m := range members {
		lastSeen, err := m.LastSeenTime()
		if err != nil {
			return nil, err
		}
		if lastSeen.Before(deadline) {
			inactive = append(inactive, m)
		}
	}
	return inactive, nil
}
