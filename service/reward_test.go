package service

import (
	"testing"

	"github.com/Rivarora/hospital/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestEvaluateHabit(t *testing.T) {
	engine := NewRewardEngine(DefaultRewardConfig())

	t.Run("all four thresholds met", func(t *testing.T) {
		metrics := &models.HabitMetrics{
			SleepHours:      floatPtr(8),
			ExerciseMinutes: intPtr(30),
			WaterGlasses:    intPtr(8),
			MoodRating:      intPtr(4),
		}
		tokens, delta := engine.EvaluateHabit(metrics)
		assert.Equal(t, int64(40), tokens)
		assert.InDelta(t, 2.0, delta, 1e-9)
	})

	t.Run("no metrics supplied earns nothing", func(t *testing.T) {
		tokens, delta := engine.EvaluateHabit(&models.HabitMetrics{})
		assert.Equal(t, int64(0), tokens)
		assert.Equal(t, 0.0, delta)
	})

	t.Run("metrics below thresholds earn nothing", func(t *testing.T) {
		metrics := &models.HabitMetrics{
			SleepHours:      floatPtr(5),
			ExerciseMinutes: intPtr(10),
			WaterGlasses:    intPtr(2),
			MoodRating:      intPtr(2),
		}
		tokens, delta := engine.EvaluateHabit(metrics)
		assert.Equal(t, int64(0), tokens)
		assert.Equal(t, 0.0, delta)
	})

	t.Run("partial thresholds", func(t *testing.T) {
		metrics := &models.HabitMetrics{
			SleepHours: floatPtr(7), // boundary counts
			MoodRating: intPtr(3),   // boundary counts
		}
		tokens, delta := engine.EvaluateHabit(metrics)
		assert.Equal(t, int64(20), tokens)
		assert.InDelta(t, 1.0, delta, 1e-9)
	})

	t.Run("daily cap applies", func(t *testing.T) {
		cfg := DefaultRewardConfig()
		cfg.HabitThresholdAward = 40
		capped := NewRewardEngine(cfg)

		metrics := &models.HabitMetrics{
			SleepHours:      floatPtr(9),
			ExerciseMinutes: intPtr(60),
			WaterGlasses:    intPtr(10),
			MoodRating:      intPtr(5),
		}
		tokens, _ := capped.EvaluateHabit(metrics)
		assert.Equal(t, cfg.HabitDailyCap, tokens)
	})

	t.Run("score delta never exceeds the bound", func(t *testing.T) {
		cfg := DefaultRewardConfig()
		cfg.ScoreDeltaPerThreshold = 5
		engine := NewRewardEngine(cfg)

		metrics := &models.HabitMetrics{
			SleepHours:      floatPtr(9),
			ExerciseMinutes: intPtr(60),
			WaterGlasses:    intPtr(10),
			MoodRating:      intPtr(5),
		}
		_, delta := engine.EvaluateHabit(metrics)
		assert.Equal(t, cfg.ScoreDeltaMax, delta)
	})

	t.Run("evaluation is deterministic", func(t *testing.T) {
		metrics := &models.HabitMetrics{
			SleepHours:   floatPtr(7.5),
			WaterGlasses: intPtr(6),
		}
		t1, d1 := engine.EvaluateHabit(metrics)
		t2, d2 := engine.EvaluateHabit(metrics)
		assert.Equal(t, t1, t2)
		assert.Equal(t, d1, d2)
	})
}

func TestEvaluateFixedAwards(t *testing.T) {
	engine := NewRewardEngine(DefaultRewardConfig())

	tokens, delta := engine.EvaluateUpload()
	assert.Equal(t, int64(50), tokens)
	assert.Equal(t, 0.0, delta)

	tokens, delta = engine.EvaluatePaperwork()
	assert.Equal(t, int64(25), tokens)
	assert.Equal(t, 0.0, delta)
}

func TestRewardConfigFromEnv(t *testing.T) {
	t.Run("defaults without overrides", func(t *testing.T) {
		cfg := RewardConfigFromEnv()
		assert.Equal(t, DefaultRewardConfig(), cfg)
	})

	t.Run("env overrides applied", func(t *testing.T) {
		t.Setenv("REWARD_HABIT_THRESHOLD_AWARD", "15")
		t.Setenv("REWARD_UPLOAD_AWARD", "75")
		t.Setenv("REWARD_SLEEP_THRESHOLD_HOURS", "6.5")

		cfg := RewardConfigFromEnv()
		assert.Equal(t, int64(15), cfg.HabitThresholdAward)
		assert.Equal(t, int64(75), cfg.UploadAward)
		assert.Equal(t, 6.5, cfg.SleepThresholdHours)
		// untouched values keep their defaults
		assert.Equal(t, int64(25), cfg.PaperworkAward)
	})

	t.Run("garbage values fall back to defaults", func(t *testing.T) {
		t.Setenv("REWARD_HABIT_DAILY_CAP", "not-a-number")
		cfg := RewardConfigFromEnv()
		require.Equal(t, DefaultRewardConfig().HabitDailyCap, cfg.HabitDailyCap)
	})
}
