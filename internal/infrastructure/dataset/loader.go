// Package dataset loads the recipe table from its CSV source at startup.
// A missing file is a fatal condition reported to the user.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/recipeql/v1/internal/domain/recipe"
	apperrors "github.com/recipeql/v1/pkg/errors"
	"go.uber.org/zap"
)

// Load reads the CSV file at path into an immutable dataset. The header row
// must carry every schema column; extra columns are ignored.
func Load(path string, logger *zap.Logger) (*recipe.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewDatasetNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	ds, err := read(f)
	if err != nil {
		return nil, err
	}

	logger.Info("Recipe dataset loaded",
		zap.String("path", path),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(recipe.Schema)))

	return ds, nil
}

func read(r io.Reader) (*recipe.Dataset, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.CodeDatasetMalformed,
			"Dataset has no header row", "").WithCause(err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range recipe.Schema {
		if _, ok := index[strings.ToLower(col.Name)]; !ok {
			return nil, apperrors.NewAppError(apperrors.CodeDatasetMalformed,
				"Dataset is missing a required column", col.Name)
		}
	}

	field := func(row []string, name string) string {
		i := index[strings.ToLower(name)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rows []recipe.Record
	line := 1
	for {
		raw, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.CodeDatasetMalformed,
				"Dataset row could not be parsed", fmt.Sprintf("line %d", line+1)).WithCause(err)
		}
		line++

		rows = append(rows, recipe.Record{
			RecipeID:             parseInt(field(raw, "RecipeId")),
			Barcode:              field(raw, "Barcode"),
			Name:                 field(raw, "Name"),
			AuthorID:             parseInt(field(raw, "AuthorId")),
			AuthorName:           field(raw, "AuthorName"),
			CookTime:             parseNumber(field(raw, "CookTime")),
			PrepTime:             parseNumber(field(raw, "PrepTime")),
			TotalTime:            parseNumber(field(raw, "TotalTime")),
			DatePublished:        field(raw, "DatePublished"),
			Description:          field(raw, "Description"),
			Images:               field(raw, "Images"),
			RecipeCategory:       field(raw, "RecipeCategory"),
			Keywords:             field(raw, "Keywords"),
			IngredientQuantities: field(raw, "RecipeIngredientQuantities"),
			IngredientParts:      field(raw, "RecipeIngredientParts"),
			AggregatedRating:     parseNumber(field(raw, "AggregatedRating")),
			ReviewCount:          parseNumber(field(raw, "ReviewCount")),
			Calories:             parseNumber(field(raw, "Calories")),
			FatContent:           parseNumber(field(raw, "FatContent")),
			SaturatedFatContent:  parseNumber(field(raw, "SaturatedFatContent")),
			CholesterolContent:   parseNumber(field(raw, "CholesterolContent")),
			SodiumContent:        parseNumber(field(raw, "SodiumContent")),
			CarbohydrateContent:  parseNumber(field(raw, "CarbohydrateContent")),
			FiberContent:         parseNumber(field(raw, "FiberContent")),
			SugarContent:         parseNumber(field(raw, "SugarContent")),
			ProteinContent:       parseNumber(field(raw, "ProteinContent")),
			RecipeServings:       parseNumber(field(raw, "RecipeServings")),
			RecipeYield:          field(raw, "RecipeYield"),
			RecipeInstructions:   field(raw, "RecipeInstructions"),
		})
	}

	return recipe.NewDataset(rows), nil
}

// parseNumber returns NaN for blank or unparseable values so they never
// match a numeric comparison.
func parseNumber(s string) float64 {
	if s == "" || strings.EqualFold(s, "na") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
