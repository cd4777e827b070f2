package query

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/recipeql/v1/internal/domain/recipe"
)

// ResultSet is the outcome of executing a plan: ordered column names and
// string-rendered rows. Total counts matched rows before any limit.
type ResultSet struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// Empty reports whether the result has no rows.
func (rs *ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// Render writes the result as plain aligned-ish text, one row per line,
// the way it is handed to the summarization prompt.
func (rs *ResultSet) Render() string {
	var b strings.Builder
	b.WriteString(strings.Join(rs.Columns, " | "))
	b.WriteString("\n")
	for _, row := range rs.Rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// Execute runs a validated plan against the dataset. The dataset is never
// mutated; execution is a pure scan. An invalid plan returns an error and
// no result.
func Execute(p *Plan, ds *recipe.Dataset) (*ResultSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rows := ds.Rows()
	matched := make([]*recipe.Record, 0, 64)
	for i := range rows {
		if matchesAll(p.Filters, &rows[i]) {
			matched = append(matched, &rows[i])
		}
	}

	if p.Aggregate != nil {
		return aggregate(p.Aggregate, matched), nil
	}

	if p.Sort != nil {
		sortRecords(matched, p.Sort)
	}

	total := len(matched)
	if p.Limit > 0 && len(matched) > p.Limit {
		matched = matched[:p.Limit]
	}

	cols := p.Columns
	if len(cols) == 0 {
		cols = recipe.ColumnNames()
	}
	projection := make([]recipe.Column, len(cols))
	names := make([]string, len(cols))
	for i, name := range cols {
		c, _ := recipe.LookupColumn(name)
		projection[i] = c
		names[i] = c.Name
	}

	out := make([][]string, len(matched))
	for i, r := range matched {
		row := make([]string, len(projection))
		for j, c := range projection {
			row[j] = c.Value(r)
		}
		out[i] = row
	}

	return &ResultSet{Columns: names, Rows: out, Total: total}, nil
}

func matchesAll(filters []Filter, r *recipe.Record) bool {
	for _, f := range filters {
		if !matches(f, r) {
			return false
		}
	}
	return true
}

func matches(f Filter, r *recipe.Record) bool {
	col, _ := recipe.LookupColumn(f.Column)
	if col.Kind == recipe.KindText {
		have := strings.ToLower(strings.TrimSpace(col.Text(r)))
		want := strings.ToLower(strings.TrimSpace(f.Value.(string)))
		switch f.Op {
		case OpContains:
			return strings.Contains(have, want)
		case OpEq:
			return have == want
		case OpNeq:
			return have != want
		case OpPrefix:
			return strings.HasPrefix(have, want)
		}
		return false
	}

	// Missing numeric values are NaN; every comparison against them is
	// false, so rows with absent data never match.
	have := col.Number(r)
	want := f.Value.(float64)
	switch f.Op {
	case OpEq:
		return have == want
	case OpNeq:
		return !math.IsNaN(have) && have != want
	case OpLt:
		return have < want
	case OpLte:
		return have <= want
	case OpGt:
		return have > want
	case OpGte:
		return have >= want
	}
	return false
}

func sortRecords(records []*recipe.Record, s *Sort) {
	col, _ := recipe.LookupColumn(s.Column)

	if col.Kind == recipe.KindText {
		sort.SliceStable(records, func(i, j int) bool {
			a := strings.ToLower(col.Text(records[i]))
			b := strings.ToLower(col.Text(records[j]))
			if s.Desc {
				return a > b
			}
			return a < b
		})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		x, y := col.Number(records[i]), col.Number(records[j])
		// Missing values sort last regardless of direction.
		if math.IsNaN(x) {
			return false
		}
		if math.IsNaN(y) {
			return true
		}
		if s.Desc {
			return x > y
		}
		return x < y
	})
}

func aggregate(a *Aggregate, matched []*recipe.Record) *ResultSet {
	fn := strings.ToLower(a.Fn)
	if fn == AggCount {
		return &ResultSet{
			Columns: []string{"count"},
			Rows:    [][]string{{strconv.Itoa(len(matched))}},
			Total:   1,
		}
	}

	col, _ := recipe.LookupColumn(a.Column)
	var sum float64
	var n int
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, r := range matched {
		v := col.Number(r)
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	name := fmt.Sprintf("%s(%s)", fn, col.Name)
	if n == 0 {
		// No usable values: empty result so the caller takes the
		// fallback path instead of showing a meaningless zero.
		return &ResultSet{Columns: []string{name}, Rows: nil, Total: 0}
	}

	var value float64
	switch fn {
	case AggSum:
		value = sum
	case AggAvg:
		value = sum / float64(n)
	case AggMin:
		value = min
	case AggMax:
		value = max
	}

	return &ResultSet{
		Columns: []string{name},
		Rows:    [][]string{{strconv.FormatFloat(value, 'f', -1, 64)}},
		Total:   1,
	}
}
