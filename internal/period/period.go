package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period is a named lookback window the dashboard can summarize.
type Period string

const (
	Minute Period = "minute"
	Hour   Period = "hour"
	Today  Period = "today"
	Day    Period = "day"
	Week   Period = "week"
	Month  Period = "month"
	Year   Period = "year"
)

// Periods lists all valid periods in display order.
func Periods() []Period {
	return []Period{Minute, Hour, Today, Day, Week, Month, Year}
}

// ErrUnknownPeriod is returned when a period name is not in the enumeration.
var ErrUnknownPeriod = errors.New("unknown period")

// Parse converts a period name into a Period.
func Parse(name string) (Period, error) {
	for _, p := range Periods() {
		if name == string(p) {
			return p, nil
		}
	}

	valid := make([]string, 0, len(Periods()))
	for _, p := range Periods() {
		valid = append(valid, string(p))
	}
	return "", fmt.Errorf("%w %q: choose from %s", ErrUnknownPeriod, name, strings.Join(valid, ", "))
}

// Granularity is the aggregation bucket granularity for a window.
type Granularity string

const (
	GranularityMicrosecond Granularity = "microsecond"
	GranularitySecond      Granularity = "second"
	GranularityHour        Granularity = "hour"
)

// Window is the concrete time range a period resolves to. All concurrent
// branches of one run share the same window because "now" is captured once
// by the orchestrator and threaded down.
type Window struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// DurationSeconds returns the window width in seconds, used as the metric
// aggregation bucket. Clamped to 1 to avoid degenerate queries.
func (w Window) DurationSeconds() int64 {
	secs := int64(w.End.Sub(w.Start) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve maps the period onto a concrete window anchored at now.
func (p Period) Resolve(now time.Time) Window {
	switch p {
	case Minute:
		return Window{Start: now.Add(-time.Minute), End: now, Granularity: GranularityMicrosecond}
	case Hour:
		return Window{Start: now.Add(-time.Hour), End: now, Granularity: GranularitySecond}
	case Today:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: now, Granularity: GranularitySecond}
	case Day:
		return Window{Start: now.AddDate(0, 0, -1), End: now, Granularity: GranularitySecond}
	case Week:
		return Window{Start: now.AddDate(0, 0, -7), End: now, Granularity: GranularityHour}
	case Month:
		return Window{Start: addMonthsClamped(now, -1), End: now, Granularity: GranularityHour}
	case Year:
		return Window{Start: addMonthsClamped(now, -12), End: now, Granularity: GranularityHour}
	}
	// Unreachable for periods produced by Parse.
	return Window{Start: now, End: now, Granularity: GranularitySecond}
}

// addMonthsClamped shifts t by the given number of months, clamping the day
// of month to the target month's length: one month before Mar 31 is Feb 28,
// not Mar 3. AddDate would normalize the overflow and silently shrink the
// window at month-end dates.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
