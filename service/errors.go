package service

import "errors"

// Service-level error kinds. All are recoverable at the caller; none are
// fatal to the process.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrRecordNotFound   = errors.New("medical record not found")
	ErrTemplateNotFound = errors.New("paperwork template not found")
	ErrEmailTaken       = errors.New("email already registered")

	// ErrDuplicateEntry means a habit was already logged for that user and
	// date. The stored entry is unchanged and no tokens were awarded.
	ErrDuplicateEntry = errors.New("habit already logged for this date")

	// ErrConcurrencyConflict surfaces a lost race on a per-user write that
	// the store could not serialize internally. Callers may retry once.
	ErrConcurrencyConflict = errors.New("concurrent update conflict")
)
