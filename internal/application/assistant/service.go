// Package assistant provides the application layer for the query orchestrator:
// translate a question into a plan, run it, retry within the configured
// budget, and route the outcome to summarization or free-text fallback.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recipeql/v1/internal/domain/query"
	"github.com/recipeql/v1/internal/domain/recipe"
	"github.com/recipeql/v1/internal/infrastructure/config"
	"github.com/recipeql/v1/internal/ports/inbound"
	"github.com/recipeql/v1/internal/ports/outbound"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// FallbackApology is shown when even the free-text recipe call fails.
const FallbackApology = "Sorry, we couldn't find the recipe, and the AI couldn't generate a response at this time."

const translateCachePrefix = "translate:"

// Service implements the QueryAssistant use case.
type Service struct {
	dataset     *recipe.Dataset
	completions outbound.CompletionService
	cache       outbound.CacheRepository
	cfg         config.AIConfig
	logger      *zap.Logger
}

// NewService creates the query orchestrator.
func NewService(
	dataset *recipe.Dataset,
	completions outbound.CompletionService,
	cache outbound.CacheRepository,
	cfg config.AIConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		dataset:     dataset,
		completions: completions,
		cache:       cache,
		cfg:         cfg,
		logger:      logger.Named("assistant"),
	}
}

// Ask answers one natural-language question. It always returns an Answer;
// every failure degrades to a status or warning and is logged, never
// propagated as a hard error.
func (s *Service) Ask(ctx context.Context, question string) *inbound.Answer {
	question = strings.TrimSpace(question)
	answer := &inbound.Answer{
		ID:       uuid.New().String(),
		Question: question,
	}
	log := s.logger.With(zap.String("ask_id", answer.ID))

	planText := s.translate(ctx, question, log)
	if planText == "" {
		log.Warn("Failed to generate query plan")
		answer.Status = inbound.StatusTranslateFailed
		return answer
	}
	answer.PlanText = planText
	log.Info("Query plan generated", zap.String("plan", planText))

	result := s.runWithRetry(ctx, question, answer, log)

	if result != nil && !result.Empty() {
		answer.Status = inbound.StatusRows
		answer.Result = result
		s.cachePlan(ctx, question, answer.PlanText, log)
		s.summarize(ctx, answer, log)
		return answer
	}

	if result != nil {
		log.Info("Plan matched no rows, falling back to generated recipe")
	} else {
		log.Warn("All query attempts failed, falling back to generated recipe")
	}
	answer.Status = inbound.StatusFallback
	answer.Fallback = s.fallback(ctx, question, log)
	return answer
}

// runWithRetry executes the current plan and, while execution keeps failing,
// regenerates and re-runs it until the attempt budget is spent. A plan that
// runs cleanly but matches nothing does not consume further attempts.
func (s *Service) runWithRetry(ctx context.Context, question string, answer *inbound.Answer, log *zap.Logger) *query.ResultSet {
	backoff := s.cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Nanosecond
	}
	budget := retry.WithMaxRetries(uint64(s.cfg.QueryAttempts-1), retry.NewConstant(backoff))

	var result *query.ResultSet
	err := retry.Do(ctx, budget, func(ctx context.Context) error {
		answer.Attempts++
		if answer.Attempts > 1 {
			log.Info("Retrying query generation due to failure", zap.Int("attempt", answer.Attempts))
			s.invalidatePlan(ctx, question)
			planText := s.translate(ctx, question, log)
			if planText == "" {
				return retry.RetryableError(errTranslateEmpty)
			}
			answer.PlanText = planText
		}

		rs, err := s.run(answer.PlanText, log)
		if err != nil {
			return retry.RetryableError(err)
		}
		result = rs
		return nil
	})
	if err != nil {
		return nil
	}
	return result
}

// run maps the model reply onto the closed plan language and executes it.
// Any parse, validation, or execution failure yields an error the caller
// treats as "absent".
func (s *Service) run(planText string, log *zap.Logger) (*query.ResultSet, error) {
	plan, err := query.Parse(planText)
	if err != nil {
		log.Warn("Generated plan rejected", zap.Error(err))
		return nil, err
	}

	result, err := query.Execute(plan, s.dataset)
	if err != nil {
		log.Warn("Plan execution failed", zap.Error(err))
		return nil, err
	}

	log.Info("Plan executed",
		zap.Int("rows", len(result.Rows)),
		zap.Int("matched", result.Total))
	return result, nil
}

// translate obtains a plan reply for the question, consulting the cache
// first. Returns "" on any communication failure.
func (s *Service) translate(ctx context.Context, question string, log *zap.Logger) string {
	key := cacheKey(question)
	if s.cfg.EnableCache {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			log.Debug("Translation served from cache")
			return string(cached)
		}
	}

	reply, err := s.completions.TranslateQuery(ctx, question, recipe.SchemaDescription())
	if err != nil {
		log.Error("Error in generating query", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(reply)
}

// cachePlan stores a plan text that produced rows, so repeated questions
// skip a model call.
func (s *Service) cachePlan(ctx context.Context, question, planText string, log *zap.Logger) {
	if !s.cfg.EnableCache {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(question), []byte(planText), s.cfg.CacheTTL); err != nil {
		log.Debug("Failed to cache translation", zap.Error(err))
	}
}

func (s *Service) invalidatePlan(ctx context.Context, question string) {
	if s.cfg.EnableCache {
		_ = s.cache.Delete(ctx, cacheKey(question))
	}
}

// summarize attaches model-generated insights to a row answer. Failures
// become warnings on the answer.
func (s *Service) summarize(ctx context.Context, answer *inbound.Answer, log *zap.Logger) {
	text, err := s.completions.SummarizeRows(ctx, answer.Result.Render())
	if err != nil {
		log.Error("Error extracting insights", zap.Error(err))
		answer.Warnings = append(answer.Warnings, "Unable to extract insights at the moment.")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		answer.Warnings = append(answer.Warnings, "No insights generated.")
		return
	}
	answer.Summary = text
}

// fallback asks the model for a full recipe; a fixed apology covers the case
// where even that call fails.
func (s *Service) fallback(ctx context.Context, question string, log *zap.Logger) string {
	text, err := s.completions.GenerateRecipe(ctx, question)
	if err != nil {
		log.Error("Error in getting fallback response", zap.Error(err))
		return FallbackApology
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackApology
	}
	return text
}

func cacheKey(question string) string {
	return translateCachePrefix + strings.ToLower(strings.TrimSpace(question))
}
