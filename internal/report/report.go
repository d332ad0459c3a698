// Package report renders inactive members into the notification text.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/edgard/clanwatch/internal/clan"
)

// Detail selects what follows each member's name.
type Detail string

const (
	// DetailDate renders the last-seen day as YYYY-MM-DD.
	DetailDate Detail = "date"
	// DetailElapsed renders the time since last seen, e.g. "2 days, 3:04:05".
	DetailElapsed Detail = "elapsed"
)

const dateLayout = "2006-01-02"

// Formatter builds the message body sent to the notifier.
type Formatter struct {
	detail Detail
}

// NewFormatter returns a Formatter for detail, rejecting unknown values.
func NewFormatter(detail Detail) (*Formatter, error) {
	switch detail {
	case DetailDate, DetailElapsed:
		return &Formatter{detail: detail}, nil
	default:
		return nil, fmt.Errorf("unknown report detail %q", detail)
	}
}

// Format returns one "\n<name>: <detail>" line per member, so the message
// starts with a newline. now is only used by DetailElapsed.
func (f *Formatter) Format(members []clan.Member, now time.Time) (string, error) {
	var sb strings.Builder
	for _, m := range members {
		lastSeen, err := m.LastSeenTime()
		if err != nil {
			return "", err
		}

		sb.WriteString("\n")
		sb.WriteString(m.Name)
		sb.WriteString(": ")
		if f.detail == DetailElapsed {
			sb.WriteString(FormatElapsed(now.Sub(lastSeen)))
		} else {
			sb.WriteString(lastSeen.Format(dateLayout))
		}
	}
	return sb.String(), nil
}

// FormatElapsed renders d truncated to whole seconds as H:MM:SS, prefixed with
// "N day, " or "N days, " once it reaches a day. Negative durations render as 0:00:00.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)

	days := secs / 86400
	secs %= 86400
	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}
