package service

import (
	"context"
	"errors"
	"time"

	"github.com/Rivarora/hospital/models"
	"github.com/Rivarora/hospital/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	snapshotRecordLimit = 5
	snapshotHabitLimit  = 7
)

// DashboardService is the read side: it joins ledger, habit log and score
// state into presentation aggregates. It never mutates anything and is safe
// to call concurrently.
type DashboardService struct {
	db            *pgxpool.Pool
	userRepo      *repository.UserRepository
	habitRepo     *repository.HabitRepository
	ledgerRepo    *repository.LedgerRepository
	recordRepo    *repository.RecordRepository
	paperworkRepo *repository.PaperworkRepository
	now           func() time.Time
}

// DashboardServiceOption is a functional option for DashboardService
type DashboardServiceOption func(*DashboardService)

// DashboardWithDatabase sets the database pool
func DashboardWithDatabase(db *pgxpool.Pool) DashboardServiceOption {
	return func(s *DashboardService) {
		s.db = db
	}
}

// DashboardWithUserRepository sets the user repository
func DashboardWithUserRepository(repo *repository.UserRepository) DashboardServiceOption {
	return func(s *DashboardService) {
		s.userRepo = repo
	}
}

// DashboardWithHabitRepository sets the habit repository
func DashboardWithHabitRepository(repo *repository.HabitRepository) DashboardServiceOption {
	return func(s *DashboardService) {
		s.habitRepo = repo
	}
}

// DashboardWithLedgerRepository sets the ledger repository
func DashboardWithLedgerRepository(repo *repository.LedgerRepository) DashboardServiceOption {
	return func(s *DashboardService) {
		s.ledgerRepo = repo
	}
}

// DashboardWithRecordRepository sets the medical record repository
func DashboardWithRecordRepository(repo *repository.RecordRepository) DashboardServiceOption {
	return func(s *DashboardService) {
		s.recordRepo = repo
	}
}

// DashboardWithPaperworkRepository sets the paperwork repository
func DashboardWithPaperworkRepository(repo *repository.PaperworkRepository) DashboardServiceOption {
	return func(s *DashboardService) {
		s.paperworkRepo = repo
	}
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(opts ...DashboardServiceOption) *DashboardService {
	s := &DashboardService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenTotals summarizes a user's token position
type TokenTotals struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
}

// DashboardSnapshot is the aggregate the dashboard page renders
type DashboardSnapshot struct {
	User          *models.User            `json:"user"`
	RecentRecords []*models.MedicalRecord `json:"recent_records"`
	RecentHabits  []*models.HabitEntry    `json:"recent_habits"`
	TokenTotals   TokenTotals             `json:"token_totals"`
	HealthScore   float64                 `json:"health_score"`
	HabitStreak   int                     `json:"habit_streak"`
}

// Snapshot assembles the dashboard view for one user. All reads run in a
// single repeatable-read, read-only transaction so the caller observes a
// consistent snapshot of the user's state even while writes land for other
// users. With no intervening writes, repeated calls return identical data.
func (s *DashboardService) Snapshot(ctx context.Context, userID uuid.UUID) (*DashboardSnapshot, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := s.userRepo.WithTx(tx).GetByID(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	records, err := s.recordRepo.WithTx(tx).ListByUserID(ctx, userID, snapshotRecordLimit)
	if err != nil {
		return nil, err
	}

	allHabits, err := s.habitRepo.WithTx(tx).ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	recentHabits := allHabits
	if len(recentHabits) > snapshotHabitLimit {
		recentHabits = recentHabits[:snapshotHabitLimit]
	}

	totalEarned, err := s.ledgerRepo.WithTx(tx).TotalEarned(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &DashboardSnapshot{
		User:          user,
		RecentRecords: records,
		RecentHabits:  recentHabits,
		TokenTotals: TokenTotals{
			Balance:     user.TokenBalance,
			TotalEarned: totalEarned,
		},
		HealthScore: user.HealthScore,
		HabitStreak: computeStreak(allHabits, s.now()),
	}, nil
}

// LedgerHistoryRequest represents a request for a user's transaction history
type LedgerHistoryRequest struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// LedgerHistoryResult holds the balance and a page of transactions
type LedgerHistoryResult struct {
	Balance      int64
	Transactions []*models.LedgerTransaction
}

// LedgerHistory returns a user's cached balance and a page of transactions,
// most recent first
func (s *DashboardService) LedgerHistory(ctx context.Context, req LedgerHistoryRequest) (*LedgerHistoryResult, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := s.userRepo.WithTx(tx).GetByID(ctx, req.UserID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	transactions, err := s.ledgerRepo.WithTx(tx).History(ctx, req.UserID, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &LedgerHistoryResult{
		Balance:      user.TokenBalance,
		Transactions: transactions,
	}, nil
}

// Analytics summarizes a user's habit history
func (s *DashboardService) Analytics(ctx context.Context, userID uuid.UUID) (*HabitAnalytics, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	entries, err := s.habitRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	analytics := computeAnalytics(entries)
	return &analytics, nil
}

// RecentHabits returns a user's latest habit entries
func (s *DashboardService) RecentHabits(ctx context.Context, userID uuid.UUID, limit int) ([]*models.HabitEntry, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}
	return s.habitRepo.ListRecent(ctx, userID, limit)
}
