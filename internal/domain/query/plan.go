// Package query defines the closed query-plan language that model output is
// mapped onto, together with its strict parser and the execution engine.
// Plans are plain data; no generated code is ever evaluated.
package query

import (
	"fmt"
	"strings"

	"github.com/recipeql/v1/internal/domain/recipe"
)

// Filter operators.
const (
	OpContains = "contains"
	OpEq       = "eq"
	OpNeq      = "neq"
	OpPrefix   = "prefix"
	OpLt       = "lt"
	OpLte      = "lte"
	OpGt       = "gt"
	OpGte      = "gte"
)

// Aggregate functions.
const (
	AggCount = "count"
	AggSum   = "sum"
	AggAvg   = "avg"
	AggMin   = "min"
	AggMax   = "max"
)

var textOps = map[string]bool{OpContains: true, OpEq: true, OpNeq: true, OpPrefix: true}

var numberOps = map[string]bool{OpEq: true, OpNeq: true, OpLt: true, OpLte: true, OpGt: true, OpGte: true}

var aggregateFns = map[string]bool{AggCount: true, AggSum: true, AggAvg: true, AggMin: true, AggMax: true}

// Plan is one query against the dataset: filter, project, sort, limit, and
// optionally aggregate.
type Plan struct {
	Filters   []Filter   `json:"filters,omitempty"`
	Columns   []string   `json:"columns,omitempty"`
	Sort      *Sort      `json:"sort,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Aggregate *Aggregate `json:"aggregate,omitempty"`
}

// Filter is a single column predicate. Value must be a string for text
// operators and a number for numeric operators.
type Filter struct {
	Column string      `json:"column"`
	Op     string      `json:"op"`
	Value  interface{} `json:"value"`
}

// Sort orders the result by one column.
type Sort struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc,omitempty"`
}

// Aggregate collapses the matched rows into a single value.
type Aggregate struct {
	Fn     string `json:"fn"`
	Column string `json:"column,omitempty"`
}

// Validate checks the plan against the dataset schema. Any violation makes
// the whole plan invalid; the caller treats that as a failed attempt.
func (p *Plan) Validate() error {
	for i, f := range p.Filters {
		col, ok := recipe.LookupColumn(f.Column)
		if !ok {
			return invalidf("filter %d: unknown column %q", i, f.Column)
		}
		switch col.Kind {
		case recipe.KindText:
			if !textOps[f.Op] {
				return invalidf("filter %d: operator %q not valid for text column %q", i, f.Op, f.Column)
			}
			if _, ok := f.Value.(string); !ok {
				return invalidf("filter %d: text column %q requires a string value", i, f.Column)
			}
		case recipe.KindNumber:
			if !numberOps[f.Op] {
				return invalidf("filter %d: operator %q not valid for number column %q", i, f.Op, f.Column)
			}
			if _, ok := f.Value.(float64); !ok {
				return invalidf("filter %d: number column %q requires a numeric value", i, f.Column)
			}
		}
	}

	for _, name := range p.Columns {
		if _, ok := recipe.LookupColumn(name); !ok {
			return invalidf("projection: unknown column %q", name)
		}
	}

	if p.Sort != nil {
		if _, ok := recipe.LookupColumn(p.Sort.Column); !ok {
			return invalidf("sort: unknown column %q", p.Sort.Column)
		}
	}

	if p.Limit < 0 {
		return invalidf("limit must not be negative, got %d", p.Limit)
	}

	if p.Aggregate != nil {
		fn := strings.ToLower(p.Aggregate.Fn)
		if !aggregateFns[fn] {
			return invalidf("aggregate: unknown function %q", p.Aggregate.Fn)
		}
		if fn == AggCount {
			return nil
		}
		col, ok := recipe.LookupColumn(p.Aggregate.Column)
		if !ok {
			return invalidf("aggregate: unknown column %q", p.Aggregate.Column)
		}
		if col.Kind != recipe.KindNumber {
			return invalidf("aggregate: %s requires a number column, %q is text", fn, p.Aggregate.Column)
		}
	}

	return nil
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPlan, fmt.Sprintf(format, args...))
}
