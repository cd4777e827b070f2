// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"
)

// CompletionService is the text-completion side of the system: a
// conversation-style prompt goes out, generated text comes back. It is the
// only external protocol dependency and is treated as opaque.
type CompletionService interface {
	// TranslateQuery asks the model to turn a natural-language question
	// into a query-plan reply. The schema description is included so the
	// model knows the available columns. Returns the raw reply text.
	TranslateQuery(ctx context.Context, question, schema string) (string, error)

	// SummarizeRows asks the model for key insights over a textual
	// rendering of result rows.
	SummarizeRows(ctx context.Context, rendered string) (string, error)

	// GenerateRecipe asks the model for a full free-text recipe. Used
	// when the dataset has no matching rows.
	GenerateRecipe(ctx context.Context, question string) (string, error)

	// HealthCheck reports whether the completion service is reachable.
	HealthCheck(ctx context.Context) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
