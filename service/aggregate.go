package service

import (
	"time"

	"github.com/Rivarora/hospital/models"
)

const (
	scoreMin = 0.0
	scoreMax = 100.0
)

// applyScoreDelta adds delta to a health score and clamps the result into
// [0, 100]. Whatever the delta magnitude or sign, the returned score stays
// inside the bounds.
func applyScoreDelta(score, delta float64) float64 {
	score += delta
	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}

// toCalendarDate truncates a timestamp to its UTC calendar date
func toCalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// computeStreak counts consecutive logged calendar days ending today or
// yesterday. Entries must be sorted by date descending. Any gap breaks the
// streak; a most-recent entry older than yesterday means no streak at all.
func computeStreak(entries []*models.HabitEntry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	today := toCalendarDate(now)
	expected := toCalendarDate(entries[0].EntryDate)
	if expected.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 0
	for _, entry := range entries {
		date := toCalendarDate(entry.EntryDate)
		if !date.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// HabitAnalytics summarizes a user's logged habits
type HabitAnalytics struct {
	TotalDaysLogged   int      `json:"total_days_logged"`
	AverageSleep      *float64 `json:"average_sleep,omitempty"`
	AverageExercise   *float64 `json:"average_exercise,omitempty"`
	TotalTokensEarned int64    `json:"total_tokens_earned"`
}

// computeAnalytics derives summary statistics from stored habit entries.
// Averages only cover entries where the metric was supplied; an entry
// without a value is missing, not zero.
func computeAnalytics(entries []*models.HabitEntry) HabitAnalytics {
	analytics := HabitAnalytics{TotalDaysLogged: len(entries)}

	var sleepSum float64
	var sleepCount int
	var exerciseSum int
	var exerciseCount int

	for _, entry := range entries {
		if entry.Metrics.SleepHours != nil {
			sleepSum += *entry.Metrics.SleepHours
			sleepCount++
		}
		if entry.Metrics.ExerciseMinutes != nil {
			exerciseSum += *entry.Metrics.ExerciseMinutes
			exerciseCount++
		}
		analytics.TotalTokensEarned += entry.TokensEarned
	}

	if sleepCount > 0 {
		avg := sleepSum / float64(sleepCount)
		analytics.AverageSleep = &avg
	}
	if exerciseCount > 0 {
		avg := float64(exerciseSum) / float64(exerciseCount)
		analytics.AverageExercise = &avg
	}

	return analytics
}
