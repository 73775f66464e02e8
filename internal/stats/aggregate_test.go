package stats

import (
	"maps"
	"testing"
	"time"

	"github.com/benvon/board-stats/internal/models"
)

var testNow = time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)

func TestDailySeries_WindowBoundary(t *testing.T) {
	t.Parallel()

	events := []CompletionEvent{
		{Owner: OwnerEve, At: testNow.AddDate(0, 0, -30)},                       // exactly on the boundary
		{Owner: OwnerEve, At: testNow.AddDate(0, 0, -30).Add(-time.Nanosecond)}, // just outside
		{Owner: OwnerDima, At: testNow.AddDate(0, 0, -31)},
	}

	got := DailySeries(events, testNow, 30)
	want := models.Series{
		"2024-03-01": {Eve: 1, Total: 1},
	}
	if !maps.Equal(got, want) {
		t.Errorf("DailySeries() = %v, want %v", got, want)
	}
}

func TestSeries_FutureEventsCounted(t *testing.T) {
	t.Parallel()

	events := []CompletionEvent{
		{Owner: OwnerDima, At: testNow.Add(48 * time.Hour)},
	}

	if got, want := DailySeries(events, testNow, 30), (models.Series{"2024-04-02": {Dima: 1, Total: 1}}); !maps.Equal(got, want) {
		t.Errorf("DailySeries() = %v, want %v", got, want)
	}
	if got, want := WeeklySeries(events, testNow, 12), (models.Series{"2024-W14": {Dima: 1, Total: 1}}); !maps.Equal(got, want) {
		t.Errorf("WeeklySeries() = %v, want %v", got, want)
	}
}

func TestFold_Counts(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)
	events := []CompletionEvent{
		{Owner: OwnerEve, At: day},
		{Owner: OwnerEve, At: day.Add(time.Hour)},
		{Owner: OwnerDima, At: day.Add(2 * time.Hour)},
		{Owner: OwnerUnknown, At: day.Add(3 * time.Hour)},
		{Owner: OwnerDima, At: day.AddDate(0, 0, 1)},
	}

	got := DailySeries(events, testNow, 30)
	want := models.Series{
		"2024-03-20": {Eve: 2, Dima: 1, Total: 4},
		"2024-03-21": {Dima: 1, Total: 1},
	}
	if !maps.Equal(got, want) {
		t.Errorf("DailySeries() = %v, want %v", got, want)
	}

	// unclassified events only show up in total
	for key, b := range got {
		if b.Total < b.Eve+b.Dima {
			t.Errorf("bucket %s: total %d < eve+dima %d", key, b.Total, b.Eve+b.Dima)
		}
	}
}

func TestWeeklySeries(t *testing.T) {
	t.Parallel()

	events := []CompletionEvent{
		{Owner: OwnerEve, At: time.Date(2024, time.March, 25, 8, 0, 0, 0, time.UTC)},  // Monday W13
		{Owner: OwnerDima, At: time.Date(2024, time.March, 31, 8, 0, 0, 0, time.UTC)}, // Sunday W13
		{Owner: OwnerDima, At: time.Date(2024, time.January, 7, 13, 0, 0, 0, time.UTC)},
		{Owner: OwnerEve, At: time.Date(2024, time.January, 7, 11, 0, 0, 0, time.UTC)}, // before window start
	}

	got := WeeklySeries(events, testNow, 12)
	want := models.Series{
		"2024-W13": {Eve: 1, Dima: 1, Total: 2},
		"2024-W01": {Dima: 1, Total: 1},
	}
	if !maps.Equal(got, want) {
		t.Errorf("WeeklySeries() = %v, want %v", got, want)
	}
}

func TestFold_EmptyAndIdempotent(t *testing.T) {
	t.Parallel()

	if got := DailySeries(nil, testNow, 30); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil series, got %v", got)
	}

	events := []CompletionEvent{
		{Owner: OwnerEve, At: testNow.AddDate(0, 0, -1)},
		{Owner: OwnerDima, At: testNow.AddDate(0, 0, -2)},
	}
	first := WeeklySeries(events, testNow, 12)
	second := WeeklySeries(events, testNow, 12)
	if !maps.Equal(first, second) {
		t.Errorf("Expected identical series for identical input, got %v and %v", first, second)
	}

	first["2024-W13"] = models.Bucket{Total: 99}
	if third := WeeklySeries(events, testNow, 12); third["2024-W13"].Total == 99 {
		t.Error("Expected each fold to return an independent map")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		counts []ListCount
		want   models.TaskSummary
	}{
		{
			name:   "done lists only",
			counts: []ListCount{{"Eve Done", 3}, {"Dima Done", 2}},
			want: models.TaskSummary{
				Eve:   models.OwnerCounts{Done: 3, Total: 3, Pending: 0},
				Dima:  models.OwnerCounts{Done: 2, Total: 2, Pending: 0},
				Total: models.TotalCounts{Done: 5, Pending: 0},
			},
		},
		{
			name: "today and week lists are pending",
			counts: []ListCount{
				{"Eve - Done", 4},
				{"Eve Today", 1},
				{"Eve This Week", 2},
				{"Dima Today", 5},
				{"Backlog", 10},
				{"Done", 7},
			},
			want: models.TaskSummary{
				Eve:   models.OwnerCounts{Done: 4, Total: 7, Pending: 3},
				Dima:  models.OwnerCounts{Done: 0, Total: 5, Pending: 5},
				Total: models.TotalCounts{Done: 4, Pending: 8},
			},
		},
		{
			name:   "list that is both done and pending counts twice",
			counts: []ListCount{{"Dima done this week", 2}},
			want: models.TaskSummary{
				Dima:  models.OwnerCounts{Done: 2, Total: 4, Pending: 2},
				Total: models.TotalCounts{Done: 2, Pending: 2},
			},
		},
		{
			name:   "both owners credits eve",
			counts: []ListCount{{"Eve+Dima Done", 6}},
			want: models.TaskSummary{
				Eve:   models.OwnerCounts{Done: 6, Total: 6},
				Total: models.TotalCounts{Done: 6},
			},
		},
		{
			name: "empty board",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Summarize(tt.counts); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
