package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecordMetrics holds optional structured health metrics extracted from an
// uploaded record (lab values, vitals, etc.)
type RecordMetrics map[string]interface{}

// Value implements driver.Valuer for JSONB
func (r RecordMetrics) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB
func (r *RecordMetrics) Scan(value interface{}) error {
	if value == nil {
		*r = make(RecordMetrics)
		return nil
	}

	// Handle different types that pgx might return for JSONB
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*r = make(RecordMetrics)
		return nil
	}

	if len(bytes) == 0 {
		*r = make(RecordMetrics)
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// MedicalRecord represents an uploaded medical document and its AI analysis.
// Records are immutable once written; the owner may delete them.
type MedicalRecord struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	Filename       string        `json:"filename"`
	StoragePath    string        `json:"-"`
	AISummary      string        `json:"ai_summary"`
	RiskAssessment string        `json:"risk_assessment"`
	Metrics        RecordMetrics `json:"metrics,omitempty"`
	UploadedAt     time.Time     `json:"uploaded_at"`
}
