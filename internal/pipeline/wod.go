package pipeline

import (
	"time"

	"github.com/forgefit-hq/wodforge/internal/model"
)

// WODIndex picks the workout-of-the-day slot for a date: the UTC date as a
// YYYYMMDD integer, modulo the artifact length. Every consumer that applies
// the same rule to the same artifact sees the same workout.
func WODIndex(t time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	d := t.UTC()
	dateInt := d.Year()*10000 + int(d.Month())*100 + d.Day()
	return dateInt % n
}

// WorkoutOfTheDay returns the record WODIndex selects, or nil for an empty
// artifact.
func WorkoutOfTheDay(records []model.WorkoutRecord, t time.Time) *model.WorkoutRecord {
	if len(records) == 0 {
		return nil
	}
	return &records[WODIndex(t, len(records))]
}
