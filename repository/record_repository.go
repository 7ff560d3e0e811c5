package repository

import (
	"context"

	"github.com/Rivarora/hospital/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RecordRepository handles database operations for medical records
type RecordRepository struct {
	db Querier
}

// NewRecordRepository creates a new medical record repository
func NewRecordRepository(db Querier) *RecordRepository {
	return &RecordRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *RecordRepository) WithTx(tx pgx.Tx) *RecordRepository {
	return &RecordRepository{db: tx}
}

// Create stores a medical record. Records are never updated afterwards.
func (r *RecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			user_id, filename, storage_path, ai_summary, risk_assessment, metrics
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at`

	err := r.db.QueryRow(
		ctx, query,
		record.UserID,
		record.Filename,
		record.StoragePath,
		record.AISummary,
		record.RiskAssessment,
		record.Metrics,
	).Scan(&record.ID, &record.UploadedAt)

	return mapError(err)
}

// GetByID retrieves a medical record by ID
func (r *RecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MedicalRecord, error) {
	record := &models.MedicalRecord{}
	query := `
		SELECT id, user_id, filename, storage_path, ai_summary, risk_assessment, metrics, uploaded_at
		FROM medical_records
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.UserID,
		&record.Filename,
		&record.StoragePath,
		&record.AISummary,
		&record.RiskAssessment,
		&record.Metrics,
		&record.UploadedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return record, nil
}

// ListByUserID retrieves a user's medical records, newest first
func (r *RecordRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.MedicalRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, user_id, filename, storage_path, ai_summary, risk_assessment, metrics, uploaded_at
		FROM medical_records
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.MedicalRecord
	for rows.Next() {
		record := &models.MedicalRecord{}
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Filename,
			&record.StoragePath,
			&record.AISummary,
			&record.RiskAssessment,
			&record.Metrics,
			&record.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Delete removes a medical record owned by the given user
func (r *RecordRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM medical_records WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
