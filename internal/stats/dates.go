package stats

import (
	"fmt"
	"strings"
	"time"
)

// All calendar arithmetic in this package happens in UTC.

const (
	dayKeyLayout      = "2006-01-02"
	displayDateFormat = "Jan 2, 2006"
)

// Unit is the granularity of a lookback window
type Unit int

const (
	// UnitDays counts the window in calendar days
	UnitDays Unit = iota
	// UnitWeeks counts the window in 7-day weeks
	UnitWeeks
)

// DayKey formats t as YYYY-MM-DD using UTC calendar fields
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// WeekKey formats t as YYYY-Www using ISO-8601 week numbering.
// The year is the year of the week's Thursday, so Dec 29-31 can land in
// week 01 of the next year and Jan 1-3 in week 52/53 of the previous one.
func WeekKey(t time.Time) string {
	year, week := ISOWeek(t)
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ISOWeek returns the ISO-8601 year and week number of t.
//
// t is moved to the Thursday of its week (weeks start Monday), the first
// Thursday of that Thursday's year is located from Jan 4, and the week is the
// number of whole weeks between the two plus one.
func ISOWeek(t time.Time) (year, week int) {
	thursday := thursdayOf(midnightUTC(t))
	firstThursday := thursdayOf(time.Date(thursday.Year(), time.January, 4, 0, 0, 0, 0, time.UTC))

	days := int(thursday.Sub(firstThursday).Hours() / 24)
	return thursday.Year(), days/7 + 1
}

// thursdayOf shifts d to the Thursday of its Monday-based week
func thursdayOf(d time.Time) time.Time {
	// Monday=0 .. Sunday=6
	dayNumber := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, 3-dayNumber)
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// RangeStart returns the inclusive lower bound of a window of count units
// ending at now.
func RangeStart(now time.Time, count int, unit Unit) time.Time {
	switch unit {
	case UnitWeeks:
		return now.UTC().AddDate(0, 0, -count*7)
	default:
		return now.UTC().AddDate(0, 0, -count)
	}
}

// FormatDateForDisplay renders t as e.g. "Mar 5, 2024"
func FormatDateForDisplay(t time.Time) string {
	return t.UTC().Format(displayDateFormat)
}

// FormatWeekForDisplay turns a week key like "2024-W05" into "Week 05, 2024".
// Keys that are not in week-key form are returned unchanged.
func FormatWeekForDisplay(weekKey string) string {
	year, week, ok := strings.Cut(weekKey, "-W")
	if !ok {
		return weekKey
	}
	return fmt.Sprintf("Week %s, %s", week, year)
}
