package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rivarora/hospital/logger"
	"github.com/Rivarora/hospital/models"
	"github.com/Rivarora/hospital/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WellnessService runs the reward engine against durable state. Every write
// happens inside a transaction that first locks the user row, so all
// mutations of one user's balance, score and habit log are serialized while
// different users proceed in parallel.
type WellnessService struct {
	db            *pgxpool.Pool
	userRepo      *repository.UserRepository
	habitRepo     *repository.HabitRepository
	ledgerRepo    *repository.LedgerRepository
	recordRepo    *repository.RecordRepository
	paperworkRepo *repository.PaperworkRepository
	engine        *RewardEngine
	log           *logger.Logger
	now           func() time.Time
}

// WellnessServiceOption is a functional option for WellnessService
type WellnessServiceOption func(*WellnessService)

// WellnessWithDatabase sets the database pool
func WellnessWithDatabase(db *pgxpool.Pool) WellnessServiceOption {
	return func(s *WellnessService) {
		s.db = db
	}
}

// WellnessWithUserRepository sets the user repository
func WellnessWithUserRepository(repo *repository.UserRepository) WellnessServiceOption {
	return func(s *WellnessService) {
		s.userRepo = repo
	}
}

// WellnessWithHabitRepository sets the habit repository
func WellnessWithHabitRepository(repo *repository.HabitRepository) WellnessServiceOption {
	return func(s *WellnessService) {
		s.habitRepo = repo
	}
}

// WellnessWithLedgerRepository sets the ledger repository
func WellnessWithLedgerRepository(repo *repository.LedgerRepository) WellnessServiceOption {
	return func(s *WellnessService) {
		s.ledgerRepo = repo
	}
}

// WellnessWithRecordRepository sets the medical record repository
func WellnessWithRecordRepository(repo *repository.RecordRepository) WellnessServiceOption {
	return func(s *WellnessService) {
		s.recordRepo = repo
	}
}

// WellnessWithPaperworkRepository sets the paperwork repository
func WellnessWithPaperworkRepository(repo *repository.PaperworkRepository) WellnessServiceOption {
	return func(s *WellnessService) {
		s.paperworkRepo = repo
	}
}

// WellnessWithRewardEngine sets the reward engine
func WellnessWithRewardEngine(engine *RewardEngine) WellnessServiceOption {
	return func(s *WellnessService) {
		s.engine = engine
	}
}

// WellnessWithLogger sets the logger
func WellnessWithLogger(log *logger.Logger) WellnessServiceOption {
	return func(s *WellnessService) {
		s.log = log
	}
}

// NewWellnessService creates a new wellness service
func NewWellnessService(opts ...WellnessServiceOption) *WellnessService {
	s := &WellnessService{
		engine: NewRewardEngine(DefaultRewardConfig()),
		log:    logger.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordHabitRequest represents a request to log one day's habits
type RecordHabitRequest struct {
	UserID  uuid.UUID
	Date    time.Time // zero means today
	Metrics models.HabitMetrics
}

// RecordHabitResult represents the outcome of logging a habit
type RecordHabitResult struct {
	Entry         *models.HabitEntry
	TokensAwarded int64
	NewBalance    int64
	NewScore      float64
}

// RecordHabit validates the metrics, evaluates the award and persists the
// entry, ledger transaction and updated user totals atomically. A second
// entry for the same (user, date) fails with ErrDuplicateEntry and leaves
// everything unchanged.
func (s *WellnessService) RecordHabit(ctx context.Context, req RecordHabitRequest) (*RecordHabitResult, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}
	if err := req.Metrics.Validate(); err != nil {
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	date = toCalendarDate(date)

	tokens, scoreDelta := s.engine.EvaluateHabit(&req.Metrics)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := s.userRepo.WithTx(tx).GetForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	entry := &models.HabitEntry{
		UserID:       req.UserID,
		EntryDate:    date,
		Metrics:      req.Metrics,
		TokensEarned: tokens,
		ScoreDelta:   scoreDelta,
	}
	if err := s.habitRepo.WithTx(tx).Insert(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEntry
		}
		return nil, mapStoreError(err, nil)
	}

	if tokens > 0 {
		note := fmt.Sprintf("Healthy habits %s", date.Format("2006-01-02"))
		ledgerTx := &models.LedgerTransaction{
			UserID: req.UserID,
			Amount: tokens,
			Source: models.SourceHabit,
			Note:   &note,
		}
		if err := s.ledgerRepo.WithTx(tx).Append(ctx, ledgerTx); err != nil {
			return nil, mapStoreError(err, nil)
		}
	}

	newBalance := user.TokenBalance + tokens
	newScore := applyScoreDelta(user.HealthScore, scoreDelta)
	if err := s.userRepo.WithTx(tx).UpdateTotals(ctx, req.UserID, newBalance, newScore); err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	s.log.Info("habit logged",
		"user_id", req.UserID,
		"date", date.Format("2006-01-02"),
		"tokens", tokens,
		"score", newScore,
	)

	return &RecordHabitResult{
		Entry:         entry,
		TokensAwarded: tokens,
		NewBalance:    newBalance,
		NewScore:      newScore,
	}, nil
}

// RecordUploadRequest represents a request to record a medical record upload
type RecordUploadRequest struct {
	UserID         uuid.UUID
	Filename       string
	StoragePath    string
	AISummary      string
	RiskAssessment string
	Metrics        models.RecordMetrics
}

// RecordUploadResult represents the outcome of recording an upload
type RecordUploadResult struct {
	Record        *models.MedicalRecord
	TokensAwarded int64
	NewBalance    int64
}

// RecordUpload persists an uploaded record and awards the fixed upload
// bonus. The AI summary and risk assessment were produced by the caller
// beforehand; the engine treats them as opaque strings and never blocks on
// the AI collaborator.
func (s *WellnessService) RecordUpload(ctx context.Context, req RecordUploadRequest) (*RecordUploadResult, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}
	if req.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", models.ErrValidation)
	}

	tokens, _ := s.engine.EvaluateUpload()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := s.userRepo.WithTx(tx).GetForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	record := &models.MedicalRecord{
		UserID:         req.UserID,
		Filename:       req.Filename,
		StoragePath:    req.StoragePath,
		AISummary:      req.AISummary,
		RiskAssessment: req.RiskAssessment,
		Metrics:        req.Metrics,
	}
	if err := s.recordRepo.WithTx(tx).Create(ctx, record); err != nil {
		return nil, mapStoreError(err, nil)
	}

	note := "Medical record upload: " + req.Filename
	ledgerTx := &models.LedgerTransaction{
		UserID: req.UserID,
		Amount: tokens,
		Source: models.SourceRecordUpload,
		Note:   &note,
	}
	if err := s.ledgerRepo.WithTx(tx).Append(ctx, ledgerTx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	newBalance := user.TokenBalance + tokens
	if err := s.userRepo.WithTx(tx).UpdateTotals(ctx, req.UserID, newBalance, user.HealthScore); err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	s.log.Info("record upload awarded", "user_id", req.UserID, "filename", req.Filename, "tokens", tokens)

	return &RecordUploadResult{
		Record:        record,
		TokensAwarded: tokens,
		NewBalance:    newBalance,
	}, nil
}

// RecordPaperworkRequest represents a request to record generated paperwork
type RecordPaperworkRequest struct {
	UserID   uuid.UUID
	FormKind models.FormKind
	Content  string
}

// RecordPaperworkResult represents the outcome of recording paperwork
type RecordPaperworkResult struct {
	Template      *models.PaperworkTemplate
	TokensAwarded int64
	NewBalance    int64
}

// RecordPaperwork stores a generated form and awards the fixed paperwork
// bonus. Content is opaque; it was produced by the AI collaborator before
// this call.
func (s *WellnessService) RecordPaperwork(ctx context.Context, req RecordPaperworkRequest) (*RecordPaperworkResult, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}
	if !models.ValidFormKind(req.FormKind) {
		return nil, fmt.Errorf("%w: unknown form kind %q", models.ErrValidation, req.FormKind)
	}

	tokens, _ := s.engine.EvaluatePaperwork()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := s.userRepo.WithTx(tx).GetForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	template := &models.PaperworkTemplate{
		UserID:   req.UserID,
		FormKind: req.FormKind,
		Content:  req.Content,
	}
	if err := s.paperworkRepo.WithTx(tx).Create(ctx, template); err != nil {
		return nil, mapStoreError(err, nil)
	}

	note := "Smart paperwork generation: " + string(req.FormKind)
	ledgerTx := &models.LedgerTransaction{
		UserID: req.UserID,
		Amount: tokens,
		Source: models.SourcePaperwork,
		Note:   &note,
	}
	if err := s.ledgerRepo.WithTx(tx).Append(ctx, ledgerTx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	newBalance := user.TokenBalance + tokens
	if err := s.userRepo.WithTx(tx).UpdateTotals(ctx, req.UserID, newBalance, user.HealthScore); err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	s.log.Info("paperwork awarded", "user_id", req.UserID, "form_kind", req.FormKind, "tokens", tokens)

	return &RecordPaperworkResult{
		Template:      template,
		TokensAwarded: tokens,
		NewBalance:    newBalance,
	}, nil
}

// AdjustTokensRequest represents a manual balance adjustment
type AdjustTokensRequest struct {
	UserID uuid.UUID
	Amount int64
	Note   string
}

// AdjustTokensResult represents the outcome of a manual adjustment
type AdjustTokensResult struct {
	Transaction *models.LedgerTransaction
	NewBalance  int64
}

// AdjustTokens appends a signed adjustment transaction, for support
// corrections. The amount may be negative; the score is untouched.
func (s *WellnessService) AdjustTokens(ctx context.Context, req AdjustTokensRequest) (*AdjustTokensResult, error) {
	if s.db == nil {
		return nil, errors.New("database not set")
	}
	if req.Amount == 0 {
		return nil, fmt.Errorf("%w: adjustment amount must be non-zero", models.ErrValidation)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := s.userRepo.WithTx(tx).GetForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	var note *string
	if req.Note != "" {
		note = &req.Note
	}
	ledgerTx := &models.LedgerTransaction{
		UserID: req.UserID,
		Amount: req.Amount,
		Source: models.SourceAdjustment,
		Note:   note,
	}
	if err := s.ledgerRepo.WithTx(tx).Append(ctx, ledgerTx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	newBalance := user.TokenBalance + req.Amount
	if err := s.userRepo.WithTx(tx).UpdateTotals(ctx, req.UserID, newBalance, user.HealthScore); err != nil {
		return nil, mapStoreError(err, ErrUserNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreError(err, nil)
	}

	s.log.Info("balance adjusted", "user_id", req.UserID, "amount", req.Amount)

	return &AdjustTokensResult{
		Transaction: ledgerTx,
		NewBalance:  newBalance,
	}, nil
}

// mapStoreError translates repository sentinels into service errors.
// notFound substitutes for repository.ErrNotFound when non-nil.
func mapStoreError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repository.ErrSerialization):
		return ErrConcurrencyConflict
	default:
		return err
	}
}
