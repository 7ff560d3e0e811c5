package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestHabitMetricsValidate(t *testing.T) {
	t.Run("empty metrics are valid", func(t *testing.T) {
		m := &HabitMetrics{}
		require.NoError(t, m.Validate())
	})

	t.Run("full valid metrics", func(t *testing.T) {
		m := &HabitMetrics{
			SleepHours:      floatPtr(7.5),
			ExerciseMinutes: intPtr(45),
			Steps:           intPtr(9000),
			WaterGlasses:    intPtr(8),
			MoodRating:      intPtr(4),
			StressLevel:     intPtr(2),
			WeightKg:        floatPtr(72.4),
			BloodPressure:   &BloodPressure{Systolic: 120, Diastolic: 80},
			HeartRate:       intPtr(62),
		}
		require.NoError(t, m.Validate())
	})

	t.Run("mood outside 1-5 rejected", func(t *testing.T) {
		m := &HabitMetrics{MoodRating: intPtr(6)}
		err := m.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		m.MoodRating = intPtr(0)
		assert.ErrorIs(t, m.Validate(), ErrValidation)
	})

	t.Run("stress outside 1-5 rejected", func(t *testing.T) {
		m := &HabitMetrics{StressLevel: intPtr(9)}
		assert.ErrorIs(t, m.Validate(), ErrValidation)
	})

	t.Run("negative sleep rejected", func(t *testing.T) {
		m := &HabitMetrics{SleepHours: floatPtr(-1)}
		assert.ErrorIs(t, m.Validate(), ErrValidation)
	})

	t.Run("sleep above 24h rejected", func(t *testing.T) {
		m := &HabitMetrics{SleepHours: floatPtr(25)}
		assert.ErrorIs(t, m.Validate(), ErrValidation)
	})

	t.Run("implausible blood pressure rejected", func(t *testing.T) {
		m := &HabitMetrics{BloodPressure: &BloodPressure{Systolic: 40, Diastolic: 80}}
		assert.ErrorIs(t, m.Validate(), ErrValidation)

		m = &HabitMetrics{BloodPressure: &BloodPressure{Systolic: 120, Diastolic: 10}}
		assert.ErrorIs(t, m.Validate(), ErrValidation)
	})
}

func TestValidFormKind(t *testing.T) {
	for _, k := range []FormKind{FormAdmission, FormDischarge, FormReferral, FormInsurance, FormConsent, FormHistory} {
		assert.True(t, ValidFormKind(k), string(k))
	}
	assert.False(t, ValidFormKind("prescription"))
	assert.False(t, ValidFormKind(""))
}
