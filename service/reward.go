package service

import (
	"os"
	"strconv"

	"github.com/Rivarora/hospital/models"
)

// RewardConfig holds the tunable award amounts and healthy-behavior
// thresholds. The exact production formula is a product decision, so nothing
// here is hard-coded: every value can be overridden through REWARD_* env vars.
type RewardConfig struct {
	// Tokens granted per healthy threshold met on a habit entry
	HabitThresholdAward int64
	// Upper bound on tokens a single habit entry can earn
	HabitDailyCap int64
	// Fixed award for uploading a medical record
	UploadAward int64
	// Fixed award for generating paperwork
	PaperworkAward int64

	// Healthy-behavior thresholds
	SleepThresholdHours      float64
	ExerciseThresholdMinutes int
	WaterThresholdGlasses    int
	MoodThreshold            int

	// Health-score increment per threshold met, and its upper bound
	ScoreDeltaPerThreshold float64
	ScoreDeltaMax          float64
}

// DefaultRewardConfig returns the stock reward tuning
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		HabitThresholdAward:      10,
		HabitDailyCap:            100,
		UploadAward:              50,
		PaperworkAward:           25,
		SleepThresholdHours:      7,
		ExerciseThresholdMinutes: 20,
		WaterThresholdGlasses:    6,
		MoodThreshold:            3,
		ScoreDeltaPerThreshold:   0.5,
		ScoreDeltaMax:            2.0,
	}
}

// RewardConfigFromEnv returns the default config with any REWARD_* env
// overrides applied
func RewardConfigFromEnv() RewardConfig {
	cfg := DefaultRewardConfig()
	cfg.HabitThresholdAward = envInt64("REWARD_HABIT_THRESHOLD_AWARD", cfg.HabitThresholdAward)
	cfg.HabitDailyCap = envInt64("REWARD_HABIT_DAILY_CAP", cfg.HabitDailyCap)
	cfg.UploadAward = envInt64("REWARD_UPLOAD_AWARD", cfg.UploadAward)
	cfg.PaperworkAward = envInt64("REWARD_PAPERWORK_AWARD", cfg.PaperworkAward)
	cfg.SleepThresholdHours = envFloat("REWARD_SLEEP_THRESHOLD_HOURS", cfg.SleepThresholdHours)
	cfg.ExerciseThresholdMinutes = envIntVal("REWARD_EXERCISE_THRESHOLD_MINUTES", cfg.ExerciseThresholdMinutes)
	cfg.WaterThresholdGlasses = envIntVal("REWARD_WATER_THRESHOLD_GLASSES", cfg.WaterThresholdGlasses)
	cfg.MoodThreshold = envIntVal("REWARD_MOOD_THRESHOLD", cfg.MoodThreshold)
	cfg.ScoreDeltaPerThreshold = envFloat("REWARD_SCORE_DELTA_PER_THRESHOLD", cfg.ScoreDeltaPerThreshold)
	cfg.ScoreDeltaMax = envFloat("REWARD_SCORE_DELTA_MAX", cfg.ScoreDeltaMax)
	return cfg
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envIntVal(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// RewardEngine computes token awards and health-score deltas for reward
// events. Evaluation is pure and deterministic: same input, same award. The
// engine never touches storage or the network.
type RewardEngine struct {
	cfg RewardConfig
}

// NewRewardEngine creates a reward engine with the given tuning
func NewRewardEngine(cfg RewardConfig) *RewardEngine {
	return &RewardEngine{cfg: cfg}
}

// Config returns the engine's tuning
func (e *RewardEngine) Config() RewardConfig {
	return e.cfg
}

// EvaluateHabit computes the token award and health-score delta for one
// day's habit metrics. Each healthy threshold met earns a fixed award; the
// total is capped per day. The score delta grows with the number of
// thresholds met and never exceeds the configured bound.
func (e *RewardEngine) EvaluateHabit(m *models.HabitMetrics) (int64, float64) {
	met := 0
	if m.SleepHours != nil && *m.SleepHours >= e.cfg.SleepThresholdHours {
		met++
	}
	if m.ExerciseMinutes != nil && *m.ExerciseMinutes >= e.cfg.ExerciseThresholdMinutes {
		met++
	}
	if m.WaterGlasses != nil && *m.WaterGlasses >= e.cfg.WaterThresholdGlasses {
		met++
	}
	if m.MoodRating != nil && *m.MoodRating >= e.cfg.MoodThreshold {
		met++
	}

	tokens := int64(met) * e.cfg.HabitThresholdAward
	if tokens > e.cfg.HabitDailyCap {
		tokens = e.cfg.HabitDailyCap
	}

	delta := float64(met) * e.cfg.ScoreDeltaPerThreshold
	if delta > e.cfg.ScoreDeltaMax {
		delta = e.cfg.ScoreDeltaMax
	}

	return tokens, delta
}

// EvaluateUpload returns the award for a medical record upload. Uploading is
// not itself a health behavior, so the score delta is zero.
func (e *RewardEngine) EvaluateUpload() (int64, float64) {
	return e.cfg.UploadAward, 0
}

// EvaluatePaperwork returns the award for generating paperwork
func (e *RewardEngine) EvaluatePaperwork() (int64, float64) {
	return e.cfg.PaperworkAward, 0
}
