package reminder

import (
	"strings"
	"time"
)

// Accepted time layouts, tried in order; the first that parses wins.
var timeLayouts = []string{
	"15:04",    // 24-hour, "14:30"
	"3:04 PM",  // 12-hour, "2:30 PM"
	"3:04PM",   // 12-hour without space, "2:30PM"
	"15:04:05", // 24-hour with seconds, "14:30:00"
}

const dateLayout = "2006-01-02"

// ParseReminderTime turns a user-entered time string (and optional
// YYYY-MM-DD date string) into a concrete reminder time. Seconds are
// always zeroed. With no explicit date, a time that has already passed
// today rolls over to tomorrow; an explicit date is trusted as-is even
// when the result lies in the past. Returns false when no layout
// matches or the date string is malformed.
func ParseReminderTime(timeStr, dateStr string) (time.Time, bool) {
	return parseReminderTimeAt(timeStr, dateStr, time.Now())
}

func parseReminderTimeAt(timeStr, dateStr string, now time.Time) (time.Time, bool) {
	day := now
	explicitDate := dateStr != ""
	if explicitDate {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(dateStr), now.Location())
		if err != nil {
			return time.Time{}, false
		}
		day = d
	}

	in := strings.ToUpper(strings.TrimSpace(timeStr))
	var clock time.Time
	matched := false
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, in); err == nil {
			clock = t
			matched = true
			break
		}
	}
	if !matched {
		return time.Time{}, false
	}

	target := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, now.Location())

	if !explicitDate && !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, true
}

// QuickOption is one entry of the fixed quick-reminder menu.
type QuickOption struct {
	Label string
	At    time.Time
}

// QuickOptions returns the quick-reminder menu: a few relative offsets
// plus two fixed anchors. Entries whose time is not strictly in the
// future are dropped ("Today at 17:00" disappears after 17:00); the
// remaining entries keep their menu order.
func QuickOptions() []QuickOption {
	return quickOptionsAt(time.Now())
}

func quickOptionsAt(now time.Time) []QuickOption {
	tomorrow := now.AddDate(0, 0, 1)
	all := []QuickOption{
		{Label: "In 5 minutes", At: now.Add(5 * time.Minute)},
		{Label: "In 15 minutes", At: now.Add(15 * time.Minute)},
		{Label: "In 30 minutes", At: now.Add(30 * time.Minute)},
		{Label: "In 1 hour", At: now.Add(time.Hour)},
		{Label: "Today at 17:00", At: time.Date(now.Year(), now.Month(), now.Day(), 17, 0, 0, 0, now.Location())},
		{Label: "Tomorrow at 09:00", At: time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, now.Location())},
	}

	options := make([]QuickOption, 0, len(all))
	for _, o := range all {
		if o.At.After(now) {
			options = append(options, o)
		}
	}
	return options
}
