package sparkify

import (
	"sort"
	"time"
)

// StartTime converts an epoch-millisecond event timestamp to the canonical
// start time: truncated to whole seconds and interpreted in UTC.
func StartTime(tsMillis int64) time.Time {
	return time.Unix(tsMillis/1000, 0).UTC()
}

// DeriveTime breaks an epoch-millisecond timestamp into its calendar fields.
// Week is the ISO 8601 week of year.
func DeriveTime(tsMillis int64) TimeRow {
	t := StartTime(tsMillis)
	_, week := t.ISOWeek()
	return TimeRow{
		StartTime: t,
		Hour:      int32(t.Hour()),
		Day:       int32(t.Day()),
		Week:      int32(week),
		Month:     int32(t.Month()),
		Year:      int32(t.Year()),
	}
}

// BuildTime builds the time dimension: one row per distinct start time among
// NextSong events, sorted ascending.
func BuildTime(events []EventRecord) []TimeRow {
	seen := make(map[int64]struct{})
	out := make([]TimeRow, 0, len(events))
	for _, e := range events {
		if e.Page != PageNextSong {
			continue
		}
		sec := e.TS / 1000
		if _, ok := seen[sec]; ok {
			continue
		}
		seen[sec] = struct{}{}
		out = append(out, DeriveTime(e.TS))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}
