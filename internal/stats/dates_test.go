package stats

import (
	"regexp"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestDayKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero padded", date(2024, time.March, 5), "2024-03-05"},
		{"end of year", date(2023, time.December, 31), "2023-12-31"},
		{"late utc", time.Date(2024, time.January, 1, 23, 59, 59, 0, time.UTC), "2024-01-01"},
		{"non utc input uses utc calendar", time.Date(2024, time.January, 2, 1, 0, 0, 0, time.FixedZone("CET", 2*3600)), "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayKey_FormatAndMonotonic(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	start := time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)
	prev := ""
	for h := 0; h < 24*40; h += 7 {
		key := DayKey(start.Add(time.Duration(h) * time.Hour))
		if len(key) != 10 || !pattern.MatchString(key) {
			t.Fatalf("DayKey() = %q, want YYYY-MM-DD", key)
		}
		if key < prev {
			t.Fatalf("DayKey() went backwards: %q after %q", key, prev)
		}
		prev = key
	}
}

func TestWeekKey_ReferenceDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"2023-01-01 sunday belongs to previous year", date(2023, time.January, 1), "2022-W52"},
		{"2024-01-01 monday is week 1", date(2024, time.January, 1), "2024-W01"},
		{"first thursday of 2024", date(2024, time.January, 4), "2024-W01"},
		{"2020-12-31 is week 53", date(2020, time.December, 31), "2020-W53"},
		{"2021-01-03 still 2020 week 53", date(2021, time.January, 3), "2020-W53"},
		{"2024-12-30 belongs to next year", date(2024, time.December, 30), "2025-W01"},
		{"2026-12-31 is week 53", date(2026, time.December, 31), "2026-W53"},
		{"mid year", date(2024, time.July, 15), "2024-W29"},
		{"sunday closes the week", date(2024, time.July, 21), "2024-W29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WeekKey(tt.in); got != tt.want {
				t.Errorf("WeekKey(%s) = %q, want %q", tt.in.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestISOWeek_MatchesStdlib(t *testing.T) {
	t.Parallel()

	day := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)
	for ; !day.After(end); day = day.AddDate(0, 0, 1) {
		gotYear, gotWeek := ISOWeek(day)
		wantYear, wantWeek := day.ISOWeek()
		if gotYear != wantYear || gotWeek != wantWeek {
			t.Fatalf("ISOWeek(%s) = %d-W%02d, want %d-W%02d",
				day.Format("2006-01-02"), gotYear, gotWeek, wantYear, wantWeek)
		}
	}
}

func TestISOWeek_TimeOfDayIgnored(t *testing.T) {
	t.Parallel()

	morning := time.Date(2023, time.January, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2023, time.January, 1, 23, 59, 59, 0, time.UTC)
	if WeekKey(morning) != WeekKey(night) {
		t.Errorf("WeekKey differs within one day: %q vs %q", WeekKey(morning), WeekKey(night))
	}
}

func TestRangeStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 31, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		count int
		unit  Unit
		want  time.Time
	}{
		{"30 days", 30, UnitDays, time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)},
		{"zero days", 0, UnitDays, now},
		{"12 weeks", 12, UnitWeeks, time.Date(2024, time.January, 7, 10, 30, 0, 0, time.UTC)},
		{"1 week", 1, UnitWeeks, time.Date(2024, time.March, 24, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RangeStart(now, tt.count, tt.unit); !got.Equal(tt.want) {
				t.Errorf("RangeStart() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDisplayFormatting(t *testing.T) {
	t.Parallel()

	if got := FormatDateForDisplay(date(2024, time.March, 5)); got != "Mar 5, 2024" {
		t.Errorf("FormatDateForDisplay() = %q, want %q", got, "Mar 5, 2024")
	}
	if got := FormatWeekForDisplay("2024-W05"); got != "Week 05, 2024" {
		t.Errorf("FormatWeekForDisplay() = %q, want %q", got, "Week 05, 2024")
	}
	if got := FormatWeekForDisplay("not-a-week"); got != "not-a-week" {
		t.Errorf("FormatWeekForDisplay() = %q, want input unchanged", got)
	}
}
