package service

import (
	"context"
	"testing"

	"github.com/Rivarora/hospital/models"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRecordWithoutClient(t *testing.T) {
	s := NewAnalysisService()

	analysis := s.AnalyzeRecord(context.Background(), "labs.pdf", "glucose 92 mg/dL")
	assert.Equal(t, fallbackAnalysis(), analysis)
	assert.NotEmpty(t, analysis.Summary)
	assert.NotEmpty(t, analysis.RiskAssessment)
}

func TestGeneratePaperworkWithoutClient(t *testing.T) {
	s := NewAnalysisService()
	user := &models.User{Name: "Jo"}

	content := s.GeneratePaperwork(context.Background(), user, models.FormAdmission, "General Hospital", "")
	assert.Contains(t, content, "admission")
	assert.Contains(t, content, "Jo")
	assert.Contains(t, content, "General Hospital")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdefgh", 3))
}
