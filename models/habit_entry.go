package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrValidation is returned when a habit metric falls outside its declared range.
var ErrValidation = errors.New("validation error")

// BloodPressure represents a systolic/diastolic reading pair
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// HabitMetrics holds one day's self-reported wellness metrics. Every field is
// optional; a nil field means the metric was not supplied and is excluded from
// averages, not treated as zero.
type HabitMetrics struct {
	SleepHours      *float64       `json:"sleep_hours,omitempty"`
	ExerciseMinutes *int           `json:"exercise_minutes,omitempty"`
	Steps           *int           `json:"steps,omitempty"`
	WaterGlasses    *int           `json:"water_glasses,omitempty"`
	MoodRating      *int           `json:"mood_rating,omitempty"` // 1-5 scale
	StressLevel     *int           `json:"stress_level,omitempty"` // 1-5 scale
	WeightKg        *float64       `json:"weight_kg,omitempty"`
	BloodPressure   *BloodPressure `json:"blood_pressure,omitempty"`
	HeartRate       *int           `json:"heart_rate,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
}

// Validate checks every supplied metric against its declared range.
// Missing metrics are always valid.
func (m *HabitMetrics) Validate() error {
	if m.SleepHours != nil && (*m.SleepHours < 0 || *m.SleepHours > 24) {
		return fmt.Errorf("%w: sleep_hours must be between 0 and 24", ErrValidation)
	}
	if m.ExerciseMinutes != nil && (*m.ExerciseMinutes < 0 || *m.ExerciseMinutes > 1440) {
		return fmt.Errorf("%w: exercise_minutes must be between 0 and 1440", ErrValidation)
	}
	if m.Steps != nil && (*m.Steps < 0 || *m.Steps > 200000) {
		return fmt.Errorf("%w: steps must be between 0 and 200000", ErrValidation)
	}
	if m.WaterGlasses != nil && (*m.WaterGlasses < 0 || *m.WaterGlasses > 50) {
		return fmt.Errorf("%w: water_glasses must be between 0 and 50", ErrValidation)
	}
	if m.MoodRating != nil && (*m.MoodRating < 1 || *m.MoodRating > 5) {
		return fmt.Errorf("%w: mood_rating must be between 1 and 5", ErrValidation)
	}
	if m.StressLevel != nil && (*m.StressLevel < 1 || *m.StressLevel > 5) {
		return fmt.Errorf("%w: stress_level must be between 1 and 5", ErrValidation)
	}
	if m.WeightKg != nil && (*m.WeightKg <= 0 || *m.WeightKg > 500) {
		return fmt.Errorf("%w: weight_kg must be between 0 and 500", ErrValidation)
	}
	if m.BloodPressure != nil {
		if m.BloodPressure.Systolic < 50 || m.BloodPressure.Systolic > 260 {
			return fmt.Errorf("%w: blood_pressure.systolic must be between 50 and 260", ErrValidation)
		}
		if m.BloodPressure.Diastolic < 30 || m.BloodPressure.Diastolic > 200 {
			return fmt.Errorf("%w: blood_pressure.diastolic must be between 30 and 200", ErrValidation)
		}
	}
	if m.HeartRate != nil && (*m.HeartRate < 20 || *m.HeartRate > 250) {
		return fmt.Errorf("%w: heart_rate must be between 20 and 250", ErrValidation)
	}
	return nil
}

// HabitEntry represents one calendar day's logged habits for a user.
// At most one entry exists per (user, date); the habit_entries table
// enforces this with a composite unique index.
type HabitEntry struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	EntryDate    time.Time    `json:"date"` // calendar date, time component zero
	Metrics      HabitMetrics `json:"metrics"`
	TokensEarned int64        `json:"tokens_earned"`
	ScoreDelta   float64      `json:"score_delta"`
	CreatedAt    time.Time    `json:"created_at"`
}
