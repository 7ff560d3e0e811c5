package service

import (
	"testing"
	"time"

	"github.com/Rivarora/hospital/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyScoreDelta(t *testing.T) {
	assert.InDelta(t, 87.0, applyScoreDelta(85.0, 2.0), 1e-9)
	assert.InDelta(t, 85.5, applyScoreDelta(85.0, 0.5), 1e-9)

	t.Run("clamps at the upper bound", func(t *testing.T) {
		assert.Equal(t, 100.0, applyScoreDelta(99.5, 5.0))
		assert.Equal(t, 100.0, applyScoreDelta(100.0, 0.1))
	})

	t.Run("clamps at the lower bound", func(t *testing.T) {
		assert.Equal(t, 0.0, applyScoreDelta(1.0, -10.0))
		assert.Equal(t, 0.0, applyScoreDelta(0.0, -0.1))
	})

	t.Run("stays within bounds over any sequence", func(t *testing.T) {
		deltas := []float64{50, 50, 50, -300, 2.5, -0.1, 1000, -1000, 0.3}
		score := models.DefaultHealthScore
		for _, d := range deltas {
			score = applyScoreDelta(score, d)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 100.0)
		}
	})
}

// entriesOn builds habit entries dated the given number of days before now,
// sorted most recent first as the repository returns them.
func entriesOn(now time.Time, daysAgo ...int) []*models.HabitEntry {
	entries := make([]*models.HabitEntry, 0, len(daysAgo))
	for _, d := range daysAgo {
		entries = append(entries, &models.HabitEntry{
			EntryDate: toCalendarDate(now).AddDate(0, 0, -d),
		})
	}
	return entries
}

func TestComputeStreak(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)

	t.Run("no entries means no streak", func(t *testing.T) {
		assert.Equal(t, 0, computeStreak(nil, now))
	})

	t.Run("three consecutive days ending today", func(t *testing.T) {
		assert.Equal(t, 3, computeStreak(entriesOn(now, 0, 1, 2), now))
	})

	t.Run("gap at yesterday breaks the streak", func(t *testing.T) {
		assert.Equal(t, 1, computeStreak(entriesOn(now, 0, 2), now))
	})

	t.Run("streak may end yesterday", func(t *testing.T) {
		assert.Equal(t, 2, computeStreak(entriesOn(now, 1, 2), now))
	})

	t.Run("most recent entry older than yesterday", func(t *testing.T) {
		assert.Equal(t, 0, computeStreak(entriesOn(now, 2, 3, 4), now))
	})

	t.Run("long run with an old gap", func(t *testing.T) {
		assert.Equal(t, 4, computeStreak(entriesOn(now, 0, 1, 2, 3, 5, 6), now))
	})
}

func TestComputeAnalytics(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		analytics := computeAnalytics(nil)
		assert.Equal(t, 0, analytics.TotalDaysLogged)
		assert.Nil(t, analytics.AverageSleep)
		assert.Nil(t, analytics.AverageExercise)
		assert.Equal(t, int64(0), analytics.TotalTokensEarned)
	})

	t.Run("averages ignore missing metrics", func(t *testing.T) {
		entries := []*models.HabitEntry{
			{Metrics: models.HabitMetrics{SleepHours: floatPtr(8), ExerciseMinutes: intPtr(30)}, TokensEarned: 40},
			{Metrics: models.HabitMetrics{SleepHours: floatPtr(6)}, TokensEarned: 10},
			{Metrics: models.HabitMetrics{ExerciseMinutes: intPtr(60)}, TokensEarned: 20},
			{Metrics: models.HabitMetrics{}, TokensEarned: 0},
		}

		analytics := computeAnalytics(entries)
		assert.Equal(t, 4, analytics.TotalDaysLogged)
		require.NotNil(t, analytics.AverageSleep)
		assert.InDelta(t, 7.0, *analytics.AverageSleep, 1e-9) // (8+6)/2, missing not counted as zero
		require.NotNil(t, analytics.AverageExercise)
		assert.InDelta(t, 45.0, *analytics.AverageExercise, 1e-9) // (30+60)/2
		assert.Equal(t, int64(70), analytics.TotalTokensEarned)
	})
}

func TestToCalendarDate(t *testing.T) {
	ts := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	date := toCalendarDate(ts)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), date)

	// non-UTC timestamps normalize onto the UTC calendar
	loc := time.FixedZone("UTC+5", 5*3600)
	ts = time.Date(2026, 9, 1, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), toCalendarDate(ts))
}
