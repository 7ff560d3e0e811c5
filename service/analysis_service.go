package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rivarora/hospital/logger"
	"github.com/Rivarora/hospital/models"

	"github.com/google/generative-ai-go/genai"
)

const analysisModel = "gemini-2.0-flash"

// AnalysisService talks to the Gemini text-generation collaborator. It is
// invoked before the reward engine so that no engine transaction ever blocks
// on an AI call, and every method degrades to a static fallback instead of
// failing the surrounding request.
type AnalysisService struct {
	client    *genai.Client
	modelName string
	log       *logger.Logger
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// AnalysisWithGeminiClient sets the Gemini client
func AnalysisWithGeminiClient(client *genai.Client) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.client = client
	}
}

// AnalysisWithModel overrides the generation model name
func AnalysisWithModel(name string) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.modelName = name
	}
}

// AnalysisWithLogger sets the logger
func AnalysisWithLogger(log *logger.Logger) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.log = log
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		modelName: analysisModel,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordAnalysis holds the AI-derived text for an uploaded record
type RecordAnalysis struct {
	Summary        string `json:"summary"`
	RiskAssessment string `json:"risk_assessment"`
}

// fallbackAnalysis is stored when the AI collaborator is unavailable
func fallbackAnalysis() RecordAnalysis {
	return RecordAnalysis{
		Summary:        "Medical record uploaded successfully. AI analysis temporarily unavailable.",
		RiskAssessment: "Please consult your healthcare provider for a detailed assessment.",
	}
}

// AnalyzeRecord produces a patient-friendly summary and risk assessment for
// an uploaded medical record. The result is opaque text as far as the
// reward engine is concerned.
func (s *AnalysisService) AnalyzeRecord(ctx context.Context, filename, content string) RecordAnalysis {
	if s.client == nil {
		return fallbackAnalysis()
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are a medical AI assistant. Analyze medical records and provide " +
				"health summaries and risk assessments in a professional manner.",
		)},
	}

	prompt := fmt.Sprintf(`Analyze this medical record and provide:
1. A clear, patient-friendly summary (2-3 sentences)
2. Risk assessment for common conditions (diabetes, heart disease, hypertension)

File: %s

Medical Record Content:
%s

Format your response as JSON with keys: summary, risk_assessment`, filename, content)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.log.Warn("record analysis failed, using fallback", "filename", filename, "error", err)
		return fallbackAnalysis()
	}

	text := responseText(resp)
	if text == "" {
		return fallbackAnalysis()
	}

	var analysis RecordAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &analysis); err != nil || analysis.Summary == "" {
		// Model answered in prose instead of JSON; keep a trimmed version.
		analysis = RecordAnalysis{
			Summary:        truncate(text, 400),
			RiskAssessment: "AI analysis completed. Please consult your healthcare provider for a detailed assessment.",
		}
	}
	return analysis
}

// GeneratePaperwork produces a pre-filled medical form for the user. On any
// AI failure it returns a minimal placeholder form, mirroring the upload
// path: paperwork generation never fails the request.
func (s *AnalysisService) GeneratePaperwork(ctx context.Context, user *models.User, kind models.FormKind, hospitalName, doctorName string) string {
	if doctorName == "" {
		doctorName = "Staff Doctor"
	}

	fallback := fmt.Sprintf(
		"Generated %s form for %s at %s. Please complete additional details as needed.",
		kind, user.Name, hospitalName,
	)

	if s.client == nil {
		return fallback
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are a medical administrative assistant. Generate professional medical forms and documents.",
		)},
	}

	age := "Not specified"
	if user.Age != nil {
		age = fmt.Sprintf("%d", *user.Age)
	}

	prompt := fmt.Sprintf(`Generate a %s form for:
Hospital: %s
Doctor: %s
Patient: %s
Age: %s

Create a professional medical %s form with standard fields and patient information pre-filled where available.`,
		kind, hospitalName, doctorName, user.Name, age, kind)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.log.Warn("paperwork generation failed, using fallback", "form_kind", kind, "error", err)
		return fallback
	}

	text := responseText(resp)
	if text == "" {
		return fallback
	}
	return text
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// stripCodeFence removes a surrounding markdown code fence if present
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
