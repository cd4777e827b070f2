// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/recipeql/v1/internal/domain/query"
)

// QueryAssistant is the single use case of the system: answer a
// natural-language question about the recipe dataset. Every call produces an
// Answer; failures degrade to statuses and messages, never hard errors.
type QueryAssistant interface {
	Ask(ctx context.Context, question string) *Answer
}

// AnswerStatus tells the caller which outcome path was taken.
type AnswerStatus string

const (
	// StatusRows means the generated plan matched rows; Result and
	// usually Summary are populated.
	StatusRows AnswerStatus = "rows"

	// StatusFallback means no rows were found after all attempts and a
	// free-text recipe was generated instead.
	StatusFallback AnswerStatus = "fallback"

	// StatusTranslateFailed means the initial translation call produced
	// nothing; no execution was attempted.
	StatusTranslateFailed AnswerStatus = "translate_failed"
)

// Answer is the full outcome of one question.
type Answer struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Status   AnswerStatus     `json:"status"`
	PlanText string           `json:"plan_text,omitempty"`
	Result   *query.ResultSet `json:"result,omitempty"`
	Summary  string           `json:"summary,omitempty"`
	Fallback string           `json:"fallback,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Attempts int              `json:"attempts"`
}
