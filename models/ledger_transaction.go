package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionSource identifies what kind of event produced a ledger transaction
type TransactionSource string

const (
	SourceHabit        TransactionSource = "habit"
	SourceRecordUpload TransactionSource = "record_upload"
	SourcePaperwork    TransactionSource = "paperwork"
	SourceAdjustment   TransactionSource = "adjustment"
)

// LedgerTransaction represents a single signed token movement for a user.
// Transactions are append-only; a user's balance is always the sum of their
// transaction amounts.
type LedgerTransaction struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Amount    int64             `json:"amount"`
	Source    TransactionSource `json:"source"`
	Note      *string           `json:"note,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
