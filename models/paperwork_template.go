package models

import (
	"time"

	"github.com/google/uuid"
)

// FormKind represents the kind of medical form a paperwork template holds
type FormKind string

const (
	FormAdmission FormKind = "admission"
	FormDischarge FormKind = "discharge"
	FormReferral  FormKind = "referral"
	FormInsurance FormKind = "insurance"
	FormConsent   FormKind = "consent"
	FormHistory   FormKind = "history"
)

// ValidFormKind reports whether k is one of the supported form kinds.
func ValidFormKind(k FormKind) bool {
	switch k {
	case FormAdmission, FormDischarge, FormReferral, FormInsurance, FormConsent, FormHistory:
		return true
	}
	return false
}

// PaperworkTemplate represents a generated medical form owned by a user
type PaperworkTemplate struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FormKind  FormKind  `json:"form_kind"`
	Content   string    `json:"content"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
}
