package query

import (
	"math"
	"testing"

	"github.com/recipeql/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// EngineTestSuite exercises plan execution against a small fixed table.
type EngineTestSuite struct {
	suite.Suite
	dataset *recipe.Dataset
}

func (s *EngineTestSuite) SetupSuite() {
	s.dataset = recipe.NewDataset([]recipe.Record{
		{
			RecipeID:       1,
			Name:           "Grilled Chicken Salad",
			RecipeCategory: "Salad",
			Calories:       350,
			CookTime:       20,
			ProteinContent: 40,
		},
		{
			RecipeID:       2,
			Name:           "Chocolate Lava Cake",
			RecipeCategory: "Dessert",
			Calories:       650,
			CookTime:       45,
			ProteinContent: 8,
		},
		{
			RecipeID:       3,
			Name:           "Chicken Noodle Soup",
			RecipeCategory: "Soup",
			Calories:       220,
			CookTime:       60,
			ProteinContent: 18,
		},
		{
			RecipeID:       4,
			Name:           "Mystery Stew",
			RecipeCategory: "Soup",
			Calories:       math.NaN(),
			CookTime:       math.NaN(),
			ProteinContent: math.NaN(),
		},
	})
}

func (s *EngineTestSuite) execute(p *Plan) *ResultSet {
	rs, err := Execute(p, s.dataset)
	require.NoError(s.T(), err)
	return rs
}

func (s *EngineTestSuite) names(rs *ResultSet) []string {
	out := make([]string, len(rs.Rows))
	for i, row := range rs.Rows {
		out[i] = row[0]
	}
	return out
}

func (s *EngineTestSuite) TestNumberFilters() {
	s.Run("LessThan", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Calories", Op: OpLt, Value: 500.0}},
			Columns: []string{"Name"},
		})
		assert.ElementsMatch(s.T(), []string{"Grilled Chicken Salad", "Chicken Noodle Soup"}, s.names(rs))
	})

	s.Run("GreaterOrEqual", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Calories", Op: OpGte, Value: 650.0}},
			Columns: []string{"Name"},
		})
		assert.Equal(s.T(), []string{"Chocolate Lava Cake"}, s.names(rs))
	})

	s.Run("MissingValueNeverMatches", func() {
		// Mystery Stew has no calorie data; no comparison reaches it.
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Calories", Op: OpLt, Value: 100000.0}},
			Columns: []string{"Name"},
		})
		assert.NotContains(s.T(), s.names(rs), "Mystery Stew")
		assert.Len(s.T(), rs.Rows, 3)
	})

	s.Run("NeqSkipsMissing", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Calories", Op: OpNeq, Value: 650.0}},
			Columns: []string{"Name"},
		})
		assert.ElementsMatch(s.T(), []string{"Grilled Chicken Salad", "Chicken Noodle Soup"}, s.names(rs))
	})
}

func (s *EngineTestSuite) TestTextFilters() {
	s.Run("ContainsIsCaseInsensitive", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Name", Op: OpContains, Value: "CHICKEN"}},
			Columns: []string{"Name"},
		})
		assert.ElementsMatch(s.T(), []string{"Grilled Chicken Salad", "Chicken Noodle Soup"}, s.names(rs))
	})

	s.Run("EqTrimsAndIgnoresCase", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "RecipeCategory", Op: OpEq, Value: " dessert "}},
			Columns: []string{"Name"},
		})
		assert.Equal(s.T(), []string{"Chocolate Lava Cake"}, s.names(rs))
	})

	s.Run("Prefix", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Name", Op: OpPrefix, Value: "chicken"}},
			Columns: []string{"Name"},
		})
		assert.Equal(s.T(), []string{"Chicken Noodle Soup"}, s.names(rs))
	})

	s.Run("Neq", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "RecipeCategory", Op: OpNeq, Value: "Soup"}},
			Columns: []string{"Name"},
		})
		assert.ElementsMatch(s.T(), []string{"Grilled Chicken Salad", "Chocolate Lava Cake"}, s.names(rs))
	})

	s.Run("NoMatchYieldsEmptyResult", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Name", Op: OpContains, Value: "moonshine"}},
		})
		assert.True(s.T(), rs.Empty())
		assert.Zero(s.T(), rs.Total)
	})
}

func (s *EngineTestSuite) TestSortAndLimit() {
	s.Run("AscendingWithMissingLast", func() {
		rs := s.execute(&Plan{
			Sort:    &Sort{Column: "Calories"},
			Columns: []string{"Name"},
		})
		assert.Equal(s.T(), []string{
			"Chicken Noodle Soup",
			"Grilled Chicken Salad",
			"Chocolate Lava Cake",
			"Mystery Stew",
		}, s.names(rs))
	})

	s.Run("DescendingWithMissingLast", func() {
		rs := s.execute(&Plan{
			Sort:    &Sort{Column: "Calories", Desc: true},
			Columns: []string{"Name"},
		})
		assert.Equal(s.T(), []string{
			"Chocolate Lava Cake",
			"Grilled Chicken Salad",
			"Chicken Noodle Soup",
			"Mystery Stew",
		}, s.names(rs))
	})

	s.Run("LimitKeepsTotal", func() {
		rs := s.execute(&Plan{
			Sort:    &Sort{Column: "Calories", Desc: true},
			Columns: []string{"Name"},
			Limit:   2,
		})
		assert.Equal(s.T(), []string{"Chocolate Lava Cake", "Grilled Chicken Salad"}, s.names(rs))
		assert.Equal(s.T(), 4, rs.Total)
	})
}

func (s *EngineTestSuite) TestProjection() {
	s.Run("DefaultIsFullSchema", func() {
		rs := s.execute(&Plan{Limit: 1})
		assert.Equal(s.T(), recipe.ColumnNames(), rs.Columns)
	})

	s.Run("CanonicalNamesInHeader", func() {
		rs := s.execute(&Plan{Columns: []string{"name", "CALORIES"}, Limit: 1})
		assert.Equal(s.T(), []string{"Name", "Calories"}, rs.Columns)
	})

	s.Run("MissingNumberRendersEmpty", func() {
		rs := s.execute(&Plan{
			Filters: []Filter{{Column: "Name", Op: OpEq, Value: "Mystery Stew"}},
			Columns: []string{"Name", "Calories"},
		})
		require.Len(s.T(), rs.Rows, 1)
		assert.Equal(s.T(), "", rs.Rows[0][1])
	})
}

func (s *EngineTestSuite) TestAggregates() {
	s.Run("Count", func() {
		rs := s.execute(&Plan{
			Filters:   []Filter{{Column: "RecipeCategory", Op: OpEq, Value: "Soup"}},
			Aggregate: &Aggregate{Fn: AggCount},
		})
		assert.Equal(s.T(), []string{"count"}, rs.Columns)
		assert.Equal(s.T(), [][]string{{"2"}}, rs.Rows)
	})

	s.Run("AvgSkipsMissing", func() {
		rs := s.execute(&Plan{Aggregate: &Aggregate{Fn: AggAvg, Column: "Calories"}})
		require.Len(s.T(), rs.Rows, 1)
		// (350 + 650 + 220) / 3
		assert.Equal(s.T(), "406.6666666666667", rs.Rows[0][0])
		assert.Equal(s.T(), []string{"avg(Calories)"}, rs.Columns)
	})

	s.Run("Sum", func() {
		rs := s.execute(&Plan{Aggregate: &Aggregate{Fn: AggSum, Column: "ProteinContent"}})
		assert.Equal(s.T(), [][]string{{"66"}}, rs.Rows)
	})

	s.Run("MinMax", func() {
		rs := s.execute(&Plan{Aggregate: &Aggregate{Fn: AggMin, Column: "Calories"}})
		assert.Equal(s.T(), [][]string{{"220"}}, rs.Rows)

		rs = s.execute(&Plan{Aggregate: &Aggregate{Fn: AggMax, Column: "Calories"}})
		assert.Equal(s.T(), [][]string{{"650"}}, rs.Rows)
	})

	s.Run("AggregateOverNoValuesIsEmpty", func() {
		rs := s.execute(&Plan{
			Filters:   []Filter{{Column: "Name", Op: OpEq, Value: "Mystery Stew"}},
			Aggregate: &Aggregate{Fn: AggAvg, Column: "Calories"},
		})
		assert.True(s.T(), rs.Empty())
	})
}

func (s *EngineTestSuite) TestInvalidPlanReturnsError() {
	_, err := Execute(&Plan{
		Filters: []Filter{{Column: "Nope", Op: OpEq, Value: "x"}},
	}, s.dataset)

	assert.ErrorIs(s.T(), err, ErrInvalidPlan)
}

func (s *EngineTestSuite) TestDatasetUnchangedBySort() {
	before := s.dataset.Rows()[0].Name

	s.execute(&Plan{Sort: &Sort{Column: "Name", Desc: true}})

	assert.Equal(s.T(), before, s.dataset.Rows()[0].Name)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func TestResultSetRender(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"Name", "Calories"},
		Rows:    [][]string{{"Soup", "220"}, {"Cake", "650"}},
		Total:   2,
	}

	rendered := rs.Render()

	assert.Equal(t, "Name | Calories\nSoup | 220\nCake | 650\n", rendered)
}
