// Package testutil provides shared test factories and mocks.
package testutil

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/recipeql/v1/internal/domain/recipe"
)

// RecipeFactory generates plausible recipe records for tests.
type RecipeFactory struct {
	faker  *gofakeit.Faker
	nextID int64
}

// NewRecipeFactory creates a factory with a fixed seed for reproducibility.
func NewRecipeFactory(seed uint64) *RecipeFactory {
	return &RecipeFactory{
		faker:  gofakeit.New(int64(seed)),
		nextID: 1,
	}
}

// Build creates one record with every field populated.
func (f *RecipeFactory) Build() recipe.Record {
	id := f.nextID
	f.nextID++

	prep := float64(f.faker.Number(5, 60))
	cook := float64(f.faker.Number(10, 120))

	return recipe.Record{
		RecipeID:             id,
		Barcode:              f.faker.DigitN(12),
		Name:                 fmt.Sprintf("%s %s", f.faker.Adjective(), f.faker.Dinner()),
		AuthorID:             int64(f.faker.Number(1, 5000)),
		AuthorName:           f.faker.Name(),
		CookTime:             cook,
		PrepTime:             prep,
		TotalTime:            prep + cook,
		DatePublished:        f.faker.Date().Format("2006-01-02"),
		Description:          f.faker.Sentence(12),
		Images:               f.faker.URL(),
		RecipeCategory:       f.faker.RandomString([]string{"Dessert", "Main Dish", "Soup", "Salad", "Breakfast"}),
		Keywords:             f.faker.Sentence(4),
		IngredientQuantities: "1, 2, 0.5",
		IngredientParts:      fmt.Sprintf("%s, %s, %s", f.faker.Fruit(), f.faker.Vegetable(), "salt"),
		AggregatedRating:     float64(f.faker.Number(1, 5)),
		ReviewCount:          float64(f.faker.Number(0, 900)),
		Calories:             float64(f.faker.Number(80, 1200)),
		FatContent:           float64(f.faker.Number(1, 80)),
		SaturatedFatContent:  float64(f.faker.Number(0, 30)),
		CholesterolContent:   float64(f.faker.Number(0, 300)),
		SodiumContent:        float64(f.faker.Number(10, 2000)),
		CarbohydrateContent:  float64(f.faker.Number(5, 150)),
		FiberContent:         float64(f.faker.Number(0, 20)),
		SugarContent:         float64(f.faker.Number(0, 90)),
		ProteinContent:       float64(f.faker.Number(2, 70)),
		RecipeServings:       float64(f.faker.Number(1, 12)),
		RecipeYield:          fmt.Sprintf("%d servings", f.faker.Number(1, 12)),
		RecipeInstructions:   f.faker.Paragraph(1, 3, 10, " "),
	}
}

// BuildN creates n records.
func (f *RecipeFactory) BuildN(n int) []recipe.Record {
	rows := make([]recipe.Record, n)
	for i := range rows {
		rows[i] = f.Build()
	}
	return rows
}

// MissingNumber is a NaN helper for records with absent numeric values.
func MissingNumber() float64 {
	return math.NaN()
}
