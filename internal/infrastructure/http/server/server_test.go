package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recipeql/v1/internal/domain/query"
	"github.com/recipeql/v1/internal/domain/recipe"
	"github.com/recipeql/v1/internal/infrastructure/config"
	"github.com/recipeql/v1/internal/ports/inbound"
	"github.com/recipeql/v1/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAssistant returns a canned answer for every question.
type stubAssistant struct {
	answer *inbound.Answer
}

func (s *stubAssistant) Ask(ctx context.Context, question string) *inbound.Answer {
	a := *s.answer
	a.Question = question
	return &a
}

func newTestServer(answer *inbound.Answer, completions *testutil.MockCompletionService) *Server {
	cfg := &config.Config{}
	cfg.App.Name = "RecipeQL"
	cfg.App.Version = "test"
	cfg.Server.Port = 8080

	ds := recipe.NewDataset([]recipe.Record{{RecipeID: 1, Name: "Toast"}})

	return NewServer(cfg, zap.NewNop(), &stubAssistant{answer: answer}, ds, completions)
}

func rowsAnswer() *inbound.Answer {
	return &inbound.Answer{
		ID:       "a-1",
		Status:   inbound.StatusRows,
		PlanText: `{"result": {}}`,
		Result: &query.ResultSet{
			Columns: []string{"Name", "Calories"},
			Rows:    [][]string{{"Chicken Noodle Soup", "220"}},
			Total:   1,
		},
		Summary:  "One light soup found.",
		Attempts: 1,
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(rowsAnswer(), new(testutil.MockCompletionService))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "RecipeQL")
	assert.Contains(t, rec.Body.String(), "<form")
}

func TestQueryPage_RowsOutcome(t *testing.T) {
	srv := newTestServer(rowsAnswer(), new(testutil.MockCompletionService))

	form := strings.NewReader("q=light+meals")
	req := httptest.NewRequest(http.MethodPost, "/query", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Chicken Noodle Soup")
	assert.Contains(t, body, "One light soup found.")
	assert.Contains(t, body, "Generated Query Plan")
}

func TestQueryPage_FallbackOutcome(t *testing.T) {
	answer := &inbound.Answer{
		Status:   inbound.StatusFallback,
		PlanText: `{"result": {}}`,
		Fallback: "Moonshine soup: start with a clear broth.",
		Attempts: 2,
	}
	srv := newTestServer(answer, new(testutil.MockCompletionService))

	form := strings.NewReader("q=recipe+for+moonshine+soup")
	req := httptest.NewRequest(http.MethodPost, "/query", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "AI-Generated Recipe")
	assert.Contains(t, body, "Moonshine soup")
}

func TestQueryPage_TranslateFailedOutcome(t *testing.T) {
	answer := &inbound.Answer{Status: inbound.StatusTranslateFailed}
	srv := newTestServer(answer, new(testutil.MockCompletionService))

	form := strings.NewReader("q=anything")
	req := httptest.NewRequest(http.MethodPost, "/query", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "Failed to generate query")
}

func TestQueryAPI(t *testing.T) {
	t.Run("ReturnsAnswer", func(t *testing.T) {
		srv := newTestServer(rowsAnswer(), new(testutil.MockCompletionService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query",
			strings.NewReader(`{"question": "light meals"}`))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got inbound.Answer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, inbound.StatusRows, got.Status)
		assert.Equal(t, "light meals", got.Question)
		require.NotNil(t, got.Result)
		assert.Equal(t, 1, got.Result.Total)
	})

	t.Run("RejectsInvalidBody", func(t *testing.T) {
		srv := newTestServer(rowsAnswer(), new(testutil.MockCompletionService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RejectsEmptyQuestion", func(t *testing.T) {
		srv := newTestServer(rowsAnswer(), new(testutil.MockCompletionService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/query",
			strings.NewReader(`{"question": "  "}`))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		completions := new(testutil.MockCompletionService)
		completions.On("HealthCheck", mock.Anything).Return(nil)
		srv := newTestServer(rowsAnswer(), completions)

		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, float64(1), body["dataset_rows"])
	})

	t.Run("DegradedWhenModelUnreachable", func(t *testing.T) {
		completions := new(testutil.MockCompletionService)
		completions.On("HealthCheck", mock.Anything).Return(errors.New("connection refused"))
		srv := newTestServer(rowsAnswer(), completions)

		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
	})
}
