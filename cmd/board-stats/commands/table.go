package commands

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/benvon/board-stats/internal/models"
	"github.com/benvon/board-stats/internal/stats"
)

func dayLabel(key string) string {
	t, err := time.Parse(time.DateOnly, key)
	if err != nil {
		return key
	}
	return stats.FormatDateForDisplay(t)
}

// printSeries writes one row per bucket, newest first
func printSeries(w io.Writer, series models.Series, label func(string) string) error {
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	slices.Reverse(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tEVE\tDIMA\tTOTAL")
	for _, k := range keys {
		b := series[k]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", label(k), b.Eve, b.Dima, b.Total)
	}
	return tw.Flush()
}
