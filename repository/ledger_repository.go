package repository

import (
	"context"

	"github.com/Rivarora/hospital/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository handles database operations for token transactions.
// The ledger is append-only: Append is the only mutation.
type LedgerRepository struct {
	db Querier
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db Querier) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *LedgerRepository) WithTx(tx pgx.Tx) *LedgerRepository {
	return &LedgerRepository{db: tx}
}

// Append inserts a new transaction
func (r *LedgerRepository) Append(ctx context.Context, t *models.LedgerTransaction) error {
	query := `
		INSERT INTO ledger_transactions (user_id, amount, source, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		t.UserID,
		t.Amount,
		t.Source,
		t.Note,
	).Scan(&t.ID, &t.CreatedAt)

	return mapError(err)
}

// History retrieves a user's transactions, most recent first. Offset makes
// paging restartable.
func (r *LedgerRepository) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.LedgerTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, amount, source, note, created_at
		FROM ledger_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.LedgerTransaction
	for rows.Next() {
		t := &models.LedgerTransaction{}
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Amount,
			&t.Source,
			&t.Note,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// Balance computes a user's balance by summing the ledger
func (r *LedgerRepository) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_transactions
		WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(&balance)
	return balance, err
}

// TotalEarned sums positive transaction amounts for a user
func (r *LedgerRepository) TotalEarned(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_transactions
		WHERE user_id = $1 AND amount > 0`

	err := r.db.QueryRow(ctx, query, userID).Scan(&total)
	return total, err
}

// SyncBalance rebuilds the cached users.token_balance from the transaction
// log for one user. The cache is reconstructible state; this is the repair
// path if it is ever found inconsistent.
func (r *LedgerRepository) SyncBalance(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users SET
			token_balance = COALESCE((
				SELECT SUM(amount) FROM ledger_transactions WHERE user_id = users.id
			), 0),
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SyncAllBalances rebuilds the cached balance for every user and returns the
// number of rows whose balance changed.
func (r *LedgerRepository) SyncAllBalances(ctx context.Context) (int64, error) {
	query := `
		UPDATE users SET
			token_balance = COALESCE((
				SELECT SUM(amount) FROM ledger_transactions WHERE user_id = users.id
			), 0),
			updated_at = NOW()
		WHERE token_balance IS DISTINCT FROM COALESCE((
			SELECT SUM(amount) FROM ledger_transactions WHERE user_id = users.id
		), 0)`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
