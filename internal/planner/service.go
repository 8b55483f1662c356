// Package planner builds treatment-plan prompts from clinical data, calls the
// external text generator, and sanitizes the output into plain clinical text.
// The pipeline never returns an error: generator outages and failures degrade
// to displayable text so the clinical workflow is never blocked on the
// external dependency.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
	"github.com/rs/zerolog"
)

// UnavailableText is returned for every generation call while no API key is
// configured. Callers must treat it as a valid but unusable plan body.
const UnavailableText = "AI service is not configured. Please set OPENAI_API_KEY environment variable."

// Token budgets and sampling temperatures per call kind. Generation stays
// short and near-deterministic; refinement gets room to rewrite a full plan.
const (
	generateMaxTokens   = 600
	generateTemperature = 0.1
	refineMaxTokens     = 1500
	refineTemperature   = 0.3
)

// Service is the plan generation pipeline. gen may be nil when the external
// generator is unconfigured.
type Service struct {
	gen    TextGenerator
	logger zerolog.Logger
}

// NewService returns a Service using gen. Pass nil to run with generation
// disabled.
func NewService(gen TextGenerator, logger zerolog.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// Enabled reports whether an external generator is configured.
func (s *Service) Enabled() bool {
	return s.gen != nil
}

// GenerateTreatmentPlan builds the eligibility-specific prompt, performs one
// generation call, and returns sanitized plain text. A single attempt, no
// retries: any failure is rendered as error text.
func (s *Service) GenerateTreatmentPlan(ctx context.Context, patient models.Patient, scan models.StrokeScan, eligibilityResult string, isEligible bool) string {
	if s.gen == nil {
		return UnavailableText
	}

	var prompt string
	if isEligible {
		prompt = tpaEligiblePrompt(patient, scan, eligibilityResult)
	} else {
		prompt = notEligiblePrompt(patient, scan, eligibilityResult)
	}

	raw, err := s.gen.Generate(ctx, Request{
		SystemPrompt: generateSystemPrompt,
		Prompt:       prompt,
		MaxTokens:    generateMaxTokens,
		Temperature:  generateTemperature,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("scan_id", scan.ID).Msg("treatment plan generation failed")
		return fmt.Sprintf("Error generating treatment plan: %v", err)
	}

	return StripMarkdown(strings.TrimSpace(raw))
}

// RefineTreatmentPlan rewrites an existing plan around the physician's notes,
// with the same call-and-sanitize discipline as generation.
func (s *Service) RefineTreatmentPlan(ctx context.Context, existingPlan, physicianNotes string) string {
	if s.gen == nil {
		return UnavailableText
	}

	raw, err := s.gen.Generate(ctx, Request{
		SystemPrompt: refineSystemPrompt,
		Prompt:       refinePrompt(existingPlan, physicianNotes),
		MaxTokens:    refineMaxTokens,
		Temperature:  refineTemperature,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("treatment plan refinement failed")
		return fmt.Sprintf("Error refining treatment plan: %v", err)
	}

	return StripMarkdown(strings.TrimSpace(raw))
}
