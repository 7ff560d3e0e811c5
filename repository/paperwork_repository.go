package repository

import (
	"context"

	"github.com/Rivarora/hospital/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaperworkRepository handles database operations for paperwork templates
type PaperworkRepository struct {
	db Querier
}

// NewPaperworkRepository creates a new paperwork repository
func NewPaperworkRepository(db Querier) *PaperworkRepository {
	return &PaperworkRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *PaperworkRepository) WithTx(tx pgx.Tx) *PaperworkRepository {
	return &PaperworkRepository{db: tx}
}

// Create stores a generated paperwork template
func (r *PaperworkRepository) Create(ctx context.Context, template *models.PaperworkTemplate) error {
	query := `
		INSERT INTO paperwork_templates (user_id, form_kind, content, favorite)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		template.UserID,
		template.FormKind,
		template.Content,
		template.Favorite,
	).Scan(&template.ID, &template.CreatedAt)

	return mapError(err)
}

// ListByUserID retrieves a user's paperwork templates, newest first
func (r *PaperworkRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.PaperworkTemplate, error) {
	query := `
		SELECT id, user_id, form_kind, content, favorite, created_at
		FROM paperwork_templates
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.PaperworkTemplate
	for rows.Next() {
		template := &models.PaperworkTemplate{}
		err := rows.Scan(
			&template.ID,
			&template.UserID,
			&template.FormKind,
			&template.Content,
			&template.Favorite,
			&template.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}

// SetFavorite updates the favorite flag on a template owned by the given user
func (r *PaperworkRepository) SetFavorite(ctx context.Context, id, userID uuid.UUID, favorite bool) error {
	query := `
		UPDATE paperwork_templates SET favorite = $3
		WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, id, userID, favorite)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
