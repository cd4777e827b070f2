package recipe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind classifies a column for query validation and rendering.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

// String returns the kind name used in prompts and error messages.
func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "text"
}

// Column describes one dataset column and how to read it from a record.
type Column struct {
	Name   string
	Kind   Kind
	Text   func(*Record) string
	Number func(*Record) float64
}

// Value renders the column of a record for display. Missing numbers render
// as the empty string.
func (c Column) Value(r *Record) string {
	if c.Kind == KindText {
		return c.Text(r)
	}
	n := c.Number(r)
	if math.IsNaN(n) {
		return ""
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Schema is the ordered set of dataset columns.
var Schema = []Column{
	{Name: "RecipeId", Kind: KindNumber, Number: func(r *Record) float64 { return float64(r.RecipeID) }},
	{Name: "Barcode", Kind: KindText, Text: func(r *Record) string { return r.Barcode }},
	{Name: "Name", Kind: KindText, Text: func(r *Record) string { return r.Name }},
	{Name: "AuthorId", Kind: KindNumber, Number: func(r *Record) float64 { return float64(r.AuthorID) }},
	{Name: "AuthorName", Kind: KindText, Text: func(r *Record) string { return r.AuthorName }},
	{Name: "CookTime", Kind: KindNumber, Number: func(r *Record) float64 { return r.CookTime }},
	{Name: "PrepTime", Kind: KindNumber, Number: func(r *Record) float64 { return r.PrepTime }},
	{Name: "TotalTime", Kind: KindNumber, Number: func(r *Record) float64 { return r.TotalTime }},
	{Name: "DatePublished", Kind: KindText, Text: func(r *Record) string { return r.DatePublished }},
	{Name: "Description", Kind: KindText, Text: func(r *Record) string { return r.Description }},
	{Name: "Images", Kind: KindText, Text: func(r *Record) string { return r.Images }},
	{Name: "RecipeCategory", Kind: KindText, Text: func(r *Record) string { return r.RecipeCategory }},
	{Name: "Keywords", Kind: KindText, Text: func(r *Record) string { return r.Keywords }},
	{Name: "RecipeIngredientQuantities", Kind: KindText, Text: func(r *Record) string { return r.IngredientQuantities }},
	{Name: "RecipeIngredientParts", Kind: KindText, Text: func(r *Record) string { return r.IngredientParts }},
	{Name: "AggregatedRating", Kind: KindNumber, Number: func(r *Record) float64 { return r.AggregatedRating }},
	{Name: "ReviewCount", Kind: KindNumber, Number: func(r *Record) float64 { return r.ReviewCount }},
	{Name: "Calories", Kind: KindNumber, Number: func(r *Record) float64 { return r.Calories }},
	{Name: "FatContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.FatContent }},
	{Name: "SaturatedFatContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.SaturatedFatContent }},
	{Name: "CholesterolContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.CholesterolContent }},
	{Name: "SodiumContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.SodiumContent }},
	{Name: "CarbohydrateContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.CarbohydrateContent }},
	{Name: "FiberContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.FiberContent }},
	{Name: "SugarContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.SugarContent }},
	{Name: "ProteinContent", Kind: KindNumber, Number: func(r *Record) float64 { return r.ProteinContent }},
	{Name: "RecipeServings", Kind: KindNumber, Number: func(r *Record) float64 { return r.RecipeServings }},
	{Name: "RecipeYield", Kind: KindText, Text: func(r *Record) string { return r.RecipeYield }},
	{Name: "RecipeInstructions", Kind: KindText, Text: func(r *Record) string { return r.RecipeInstructions }},
}

var columnsByName = func() map[string]Column {
	m := make(map[string]Column, len(Schema))
	for _, c := range Schema {
		m[strings.ToLower(c.Name)] = c
	}
	return m
}()

// LookupColumn finds a column by name, case-insensitively.
func LookupColumn(name string) (Column, bool) {
	c, ok := columnsByName[strings.ToLower(name)]
	return c, ok
}

// ColumnNames returns the schema column names in order.
func ColumnNames() []string {
	names := make([]string, len(Schema))
	for i, c := range Schema {
		names[i] = c.Name
	}
	return names
}

// SchemaDescription renders the schema as one line per column, suitable for
// inclusion in a translation prompt.
func SchemaDescription() string {
	var b strings.Builder
	for _, c := range Schema {
		fmt.Fprintf(&b, "- %s (%s)\n", c.Name, c.Kind)
	}
	return b.String()
}
