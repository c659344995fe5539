package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetRequestValidate(t *testing.T) {
	valid := BudgetRequest{CategoryID: 1, Limit: 500, Month: 6, Year: 2026}
	assert.Empty(t, valid.Validate())

	cases := []struct {
		name string
		req  BudgetRequest
	}{
		{"limit too low", BudgetRequest{CategoryID: 1, Limit: 0, Month: 6, Year: 2026}},
		{"limit too high", BudgetRequest{CategoryID: 1, Limit: 1_000_001, Month: 6, Year: 2026}},
		{"month zero", BudgetRequest{CategoryID: 1, Limit: 500, Month: 0, Year: 2026}},
		{"month thirteen", BudgetRequest{CategoryID: 1, Limit: 500, Month: 13, Year: 2026}},
		{"year too early", BudgetRequest{CategoryID: 1, Limit: 500, Month: 6, Year: 2024}},
		{"year too late", BudgetRequest{CategoryID: 1, Limit: 500, Month: 6, Year: 2101}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEmpty(t, tc.req.Validate())
		})
	}
}

func TestBudgetRequestValidateBoundaries(t *testing.T) {
	low := BudgetRequest{CategoryID: 1, Limit: BudgetLimitMin, Month: 1, Year: BudgetYearMin}
	assert.Empty(t, low.Validate())

	high := BudgetRequest{CategoryID: 1, Limit: BudgetLimitMax, Month: 12, Year: BudgetYearMax}
	assert.Empty(t, high.Validate())
}

func TestBudgetToResponse(t *testing.T) {
	b := BudgetWithCategory{
		Budget:       Budget{ID: 1, CategoryID: 2, Limit: 400, Month: 3, Year: 2026},
		CategoryName: "Groceries",
		CategoryType: CategoryTypeExpense,
	}

	resp := b.ToResponse(300)
	assert.Equal(t, 300.0, resp.Spent)
	assert.Equal(t, 100.0, resp.Remaining)
	assert.InDelta(t, 75.0, resp.PercentUsed, 0.001)
	assert.False(t, resp.IsOverBudget)

	over := b.ToResponse(500)
	assert.Equal(t, -100.0, over.Remaining)
	assert.True(t, over.IsOverBudget)
	assert.InDelta(t, 125.0, over.PercentUsed, 0.001)
}
