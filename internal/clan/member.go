// Package clan talks to the game's clan API and models the member records it returns.
package clan

import (
	"fmt"
	"time"

	apperrors "github.com/edgard/clanwatch/internal/errors"
)

// LastSeenLayout is the compact UTC timestamp layout used by the API,
// e.g. 20230101T000000.000Z.
const LastSeenLayout = "20060102T150405.000Z"

// Member is one entry of a clan's member list, as returned by the API.
type Member struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	LastSeen string `json:"lastSeen"`
}

// LastSeenTime parses LastSeen. A malformed value is a PARSE error naming the member.
func (m Member) LastSeenTime() (time.Time, error) {
	t, err := ParseLastSeen(m.LastSeen)
	if err != nil {
		return time.Time{}, apperrors.NewParseError(
			fmt.Sprintf("member %q has malformed lastSeen %q", m.Name, m.LastSeen), err)
	}
	return t, nil
}

// ParseLastSeen parses a timestamp in LastSeenLayout. The result is always UTC.
func ParseLastSeen(s string) (time.Time, error) {
	return time.ParseInLocation(LastSeenLayout, s, time.UTC)
}
