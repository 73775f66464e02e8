package stats

import (
	"time"

	"github.com/benvon/board-stats/internal/models"
)

// Window selects events at or after Start and names their bucket with Key
type Window struct {
	Start time.Time
	Key   func(time.Time) string
}

// DailyWindow covers the last days calendar days before now
func DailyWindow(now time.Time, days int) Window {
	return Window{Start: RangeStart(now, days, UnitDays), Key: DayKey}
}

// WeeklyWindow covers the last weeks*7 days before now
func WeeklyWindow(now time.Time, weeks int) Window {
	return Window{Start: RangeStart(now, weeks, UnitWeeks), Key: WeekKey}
}

// Fold accumulates events into a fresh Series. Events before w.Start are
// dropped. Each kept event adds one to its bucket's total and, when its owner
// is known, to that owner's counter.
func Fold(events []CompletionEvent, w Window) models.Series {
	series := make(models.Series)
	for _, e := range events {
		if e.At.Before(w.Start) {
			continue
		}
		key := w.Key(e.At)
		b := series[key]
		switch e.Owner {
		case OwnerEve:
			b.Eve++
		case OwnerDima:
			b.Dima++
		}
		b.Total++
		series[key] = b
	}
	return series
}

// DailySeries buckets events by day over the last days days
func DailySeries(events []CompletionEvent, now time.Time, days int) models.Series {
	return Fold(events, DailyWindow(now, days))
}

// WeeklySeries buckets events by ISO week over the last weeks weeks
func WeeklySeries(events []CompletionEvent, now time.Time, weeks int) models.Series {
	return Fold(events, WeeklyWindow(now, weeks))
}

// ListCount is the number of cards currently in a list
type ListCount struct {
	Label string
	Cards int
}

// Summarize computes done/pending/total per owner from list cardinalities.
// A list counts as done when its label says "done" and as pending when it
// says "today" or "week"; lists without a known owner are ignored.
func Summarize(counts []ListCount) models.TaskSummary {
	var eve, dima models.OwnerCounts

	for _, lc := range counts {
		c := Classify(lc.Label)

		var owner *models.OwnerCounts
		switch c.Owner {
		case OwnerEve:
			owner = &eve
		case OwnerDima:
			owner = &dima
		default:
			continue
		}

		if c.Done {
			owner.Done += lc.Cards
		}
		if c.Pending {
			owner.Pending += lc.Cards
		}
	}

	eve.Total = eve.Pending + eve.Done
	dima.Total = dima.Pending + dima.Done

	return models.TaskSummary{
		Eve:  eve,
		Dima: dima,
		Total: models.TotalCounts{
			Done:    eve.Done + dima.Done,
			Pending: max(0, eve.Pending+dima.Pending),
		},
	}
}
