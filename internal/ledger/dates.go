package ledger

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day truncates t to its calendar date and re-anchors it at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Timestamps are
// converted to UTC before the date is taken.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, InvalidInput("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Day(t.UTC()), nil
}

// DayCount is the inclusive number of calendar days from start to end.
func DayCount(start, end time.Time) int {
	return int((Day(end).Unix()-Day(start).Unix())/secondsPerDay) + 1
}

// DateRange returns every calendar date from start to end inclusive, each at
// UTC midnight. end before start is an InvalidInput error.
func DateRange(start, end time.Time) ([]time.Time, error) {
	from, to := Day(start), Day(end)
	if to.Before(from) {
		return nil, InvalidInput("end date %s is before start date %s", FormatDate(to), FormatDate(from))
	}

	dates := make([]time.Time, 0, DayCount(from, to))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}
