// Package recipe contains the core domain model for the recipe dataset:
// the record type, the column schema, and the immutable in-memory table.
package recipe

// Record is a single row of the recipe dataset. Numeric fields use NaN to
// represent a missing value so comparisons against them never match.
type Record struct {
	RecipeID             int64
	Barcode              string
	Name                 string
	AuthorID             int64
	AuthorName           string
	CookTime             float64 // minutes
	PrepTime             float64 // minutes
	TotalTime            float64 // minutes
	DatePublished        string
	Description          string
	Images               string
	RecipeCategory       string
	Keywords             string
	IngredientQuantities string
	IngredientParts      string
	AggregatedRating     float64
	ReviewCount          float64
	Calories             float64
	FatContent           float64
	SaturatedFatContent  float64
	CholesterolContent   float64
	SodiumContent        float64
	CarbohydrateContent  float64
	FiberContent         float64
	SugarContent         float64
	ProteinContent       float64
	RecipeServings       float64
	RecipeYield          string
	RecipeInstructions   string
}

// Dataset is the immutable, process-lifetime recipe table. It is loaded once
// at startup and never mutated afterwards.
type Dataset struct {
	rows []Record
}

// NewDataset creates a dataset from the given rows. The slice is copied so
// later changes by the caller cannot reach the dataset.
func NewDataset(rows []Record) *Dataset {
	owned := make([]Record, len(rows))
	copy(owned, rows)
	return &Dataset{rows: owned}
}

// Len returns the number of rows in the dataset.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns the backing rows. Callers must treat the slice as read-only.
func (d *Dataset) Rows() []Record {
	return d.rows
}
