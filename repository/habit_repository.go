package repository

import (
	"context"

	"github.com/Rivarora/hospital/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HabitRepository handles database operations for habit entries
type HabitRepository struct {
	db Querier
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db Querier) *HabitRepository {
	return &HabitRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *HabitRepository) WithTx(tx pgx.Tx) *HabitRepository {
	return &HabitRepository{db: tx}
}

const habitColumns = `
	id, user_id, entry_date,
	sleep_hours, exercise_minutes, steps, water_glasses,
	mood_rating, stress_level, weight_kg,
	bp_systolic, bp_diastolic, heart_rate, notes,
	tokens_earned, score_delta, created_at`

// Insert stores a habit entry. The habit_entries_user_date unique index
// turns a second entry for the same (user, date) into ErrDuplicate, so
// check-and-insert is a single atomic statement.
func (r *HabitRepository) Insert(ctx context.Context, entry *models.HabitEntry) error {
	query := `
		INSERT INTO habit_entries (
			user_id, entry_date,
			sleep_hours, exercise_minutes, steps, water_glasses,
			mood_rating, stress_level, weight_kg,
			bp_systolic, bp_diastolic, heart_rate, notes,
			tokens_earned, score_delta
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id, created_at`

	var systolic, diastolic *int
	if entry.Metrics.BloodPressure != nil {
		systolic = &entry.Metrics.BloodPressure.Systolic
		diastolic = &entry.Metrics.BloodPressure.Diastolic
	}

	err := r.db.QueryRow(
		ctx, query,
		entry.UserID,
		entry.EntryDate,
		entry.Metrics.SleepHours,
		entry.Metrics.ExerciseMinutes,
		entry.Metrics.Steps,
		entry.Metrics.WaterGlasses,
		entry.Metrics.MoodRating,
		entry.Metrics.StressLevel,
		entry.Metrics.WeightKg,
		systolic,
		diastolic,
		entry.Metrics.HeartRate,
		entry.Metrics.Notes,
		entry.TokensEarned,
		entry.ScoreDelta,
	).Scan(&entry.ID, &entry.CreatedAt)

	return mapError(err)
}

// ListRecent retrieves a user's habit entries, most recent date first
func (r *HabitRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.HabitEntry, error) {
	if limit <= 0 {
		limit = 30
	}
	query := `
		SELECT ` + habitColumns + `
		FROM habit_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHabitEntries(rows)
}

// ListAll retrieves every habit entry for a user, most recent date first
func (r *HabitRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*models.HabitEntry, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habit_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHabitEntries(rows)
}

func scanHabitEntries(rows pgx.Rows) ([]*models.HabitEntry, error) {
	var entries []*models.HabitEntry
	for rows.Next() {
		entry := &models.HabitEntry{}
		var systolic, diastolic *int
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.EntryDate,
			&entry.Metrics.SleepHours,
			&entry.Metrics.ExerciseMinutes,
			&entry.Metrics.Steps,
			&entry.Metrics.WaterGlasses,
			&entry.Metrics.MoodRating,
			&entry.Metrics.StressLevel,
			&entry.Metrics.WeightKg,
			&systolic,
			&diastolic,
			&entry.Metrics.HeartRate,
			&entry.Metrics.Notes,
			&entry.TokensEarned,
			&entry.ScoreDelta,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if systolic != nil && diastolic != nil {
			entry.Metrics.BloodPressure = &models.BloodPressure{
				Systolic:  *systolic,
				Diastolic: *diastolic,
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
