// Package week partitions time into canonical Monday-start reporting weeks.
package week

import (
	"fmt"
	"strings"
	"time"
)

const labelLayout = "2006-01-02"

// ErrBadLabel is returned when a week label cannot be parsed or does not
// denote a Monday-to-Sunday range.
var ErrBadLabel = fmt.Errorf("malformed week label")

// Range is a single reporting week. Start is always a Monday at 00:00 and
// End the following Sunday at 00:00 in the same location. The range covers
// every instant from Start up to (but excluding) the next Monday.
type Range struct {
	Start time.Time
	End   time.Time
}

// Label renders the canonical external identifier, e.g.
// "2024-06-03 to 2024-06-09".
func (r Range) Label() string {
	return r.Start.Format(labelLayout) + " to " + r.End.Format(labelLayout)
}

// Contains reports whether ts falls inside the week. A timestamp exactly on
// Monday 00:00 belongs to the week it starts.
func (r Range) Contains(ts time.Time) bool {
	return !ts.Before(r.Start) && ts.Before(r.Start.AddDate(0, 0, 7))
}

// Containing maps ts to the unique week holding it.
func Containing(ts time.Time) Range {
	// ISO weekday: Monday = 1 ... Sunday = 7.
	isoWeekday := int(ts.Weekday())
	if isoWeekday == 0 {
		isoWeekday = 7
	}
	monday := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	monday = monday.AddDate(0, 0, -(isoWeekday - 1))
	return Range{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// Recent produces count consecutive weeks ending at or before asOf, oldest
// first. A week is included once its Sunday date has been reached, so during
// Monday through Saturday the newest returned week is the last completed one.
// The result depends only on asOf.
func Recent(asOf time.Time, count int) []Range {
	if count <= 0 {
		return nil
	}
	newest := Containing(asOf)
	if newest.End.After(asOf) {
		newest = Range{Start: newest.Start.AddDate(0, 0, -7), End: newest.End.AddDate(0, 0, -7)}
	}
	weeks := make([]Range, count)
	for i := count - 1; i >= 0; i-- {
		weeks[i] = newest
		newest = Range{Start: newest.Start.AddDate(0, 0, -7), End: newest.End.AddDate(0, 0, -7)}
	}
	return weeks
}

// ParseLabel inverts Range.Label. The start date must be a Monday and the end
// date exactly six days later.
func ParseLabel(label string) (Range, error) {
	parts := strings.Split(label, " to ")
	if len(parts) != 2 {
		return Range{}, ErrBadLabel
	}
	start, err := time.Parse(labelLayout, parts[0])
	if err != nil {
		return Range{}, ErrBadLabel
	}
	end, err := time.Parse(labelLayout, parts[1])
	if err != nil {
		return Range{}, ErrBadLabel
	}
	if start.Weekday() != time.Monday || !end.Equal(start.AddDate(0, 0, 6)) {
		return Range{}, ErrBadLabel
	}
	return Range{Start: start, End: end}, nil
}
