package analytics

import (
	"testing"
	"time"

	"finance-tracker-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(id, categoryID int, categoryType models.CategoryType, amount float64, date time.Time, desc string) models.TransactionWithCategory {
	return models.TransactionWithCategory{
		Transaction: models.Transaction{
			ID:          id,
			CategoryID:  categoryID,
			Amount:      amount,
			Date:        date,
			Description: desc,
		},
		CategoryName: "cat",
		CategoryType: categoryType,
	}
}

func TestBuildSummaryTotals(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	txns := []models.TransactionWithCategory{
		txn(1, 1, models.CategoryTypeIncome, 1500, from.AddDate(0, 0, 1), "salary"),
		txn(2, 2, models.CategoryTypeExpense, 800, from.AddDate(0, 0, 5), "rent"),
	}

	summary := BuildSummary(txns, nil, from, to)

	assert.Equal(t, 1500.0, summary.TotalMetrics.TotalIncome)
	assert.Equal(t, 800.0, summary.TotalMetrics.TotalExpenses)
	assert.Equal(t, 700.0, summary.TotalMetrics.Balance)
	assert.InDelta(t, 46.6667, summary.TotalMetrics.SavingsRate, 0.001)
	assert.Equal(t, 2, summary.TransactionCount)
}

func TestBuildSummaryZeroIncomeSavingsRate(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	txns := []models.TransactionWithCategory{
		txn(1, 2, models.CategoryTypeExpense, 50, from, "coffee"),
	}

	summary := BuildSummary(txns, nil, from, to)
	assert.Equal(t, 0.0, summary.TotalMetrics.SavingsRate)
}

func TestCategoryBreakdownPercentages(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	groceries := txn(1, 10, models.CategoryTypeExpense, 300, from, "food")
	groceries.CategoryName = "Groceries"
	rent := txn(2, 11, models.CategoryTypeExpense, 700, from, "rent")
	rent.CategoryName = "Rent"

	summary := BuildSummary([]models.TransactionWithCategory{groceries, rent}, nil, from, to)

	require.Len(t, summary.ExpensesByCategory, 2)
	// Largest amount first.
	assert.Equal(t, "Rent", summary.ExpensesByCategory[0].CategoryName)
	assert.InDelta(t, 70.0, summary.ExpensesByCategory[0].Percentage, 0.001)
	assert.Equal(t, "Groceries", summary.ExpensesByCategory[1].CategoryName)
	assert.InDelta(t, 30.0, summary.ExpensesByCategory[1].Percentage, 0.001)
	assert.Equal(t, 1, summary.ExpensesByCategory[0].TransactionCount)
	assert.Empty(t, summary.IncomesByCategory)
}

func TestTrendDailyBucketsWithinOneMonth(t *testing.T) {
	from := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	txns := []models.TransactionWithCategory{
		txn(1, 1, models.CategoryTypeIncome, 100, time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC), ""),
		txn(2, 2, models.CategoryTypeExpense, 40, time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC), ""),
	}

	trend := BuildSummary(txns, nil, from, to).Trend

	// Three days inclusive, with the empty middle day zero-filled.
	require.Len(t, trend, 3)
	assert.Equal(t, "2026-04-10", trend[0].PeriodLabel)
	assert.Equal(t, 100.0, trend[0].Income)
	assert.Equal(t, "2026-04-11", trend[1].PeriodLabel)
	assert.Equal(t, 0.0, trend[1].Income)
	assert.Equal(t, 0.0, trend[1].Expenses)
	assert.Equal(t, "2026-04-12", trend[2].PeriodLabel)
	assert.Equal(t, -40.0, trend[2].NetBalance)
}

func TestTrendMonthlyBucketsAcrossMonths(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	txns := []models.TransactionWithCategory{
		txn(1, 1, models.CategoryTypeIncome, 1000, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), ""),
		txn(2, 2, models.CategoryTypeExpense, 250, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), ""),
	}

	trend := BuildSummary(txns, nil, from, to).Trend

	// Jan through Apr inclusive, sorted ascending, gaps filled.
	require.Len(t, trend, 4)
	labels := []string{trend[0].PeriodLabel, trend[1].PeriodLabel, trend[2].PeriodLabel, trend[3].PeriodLabel}
	assert.Equal(t, []string{"2026-01", "2026-02", "2026-03", "2026-04"}, labels)
	assert.Equal(t, 1000.0, trend[0].Income)
	assert.Equal(t, 0.0, trend[1].Income)
	assert.Equal(t, 250.0, trend[3].Expenses)
}

func TestBudgetOverviewActiveWindowAndSpent(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	budgets := []models.BudgetWithCategory{
		{Budget: models.Budget{ID: 1, CategoryID: 10, Limit: 500, Month: 3, Year: 2026}},
		{Budget: models.Budget{ID: 2, CategoryID: 11, Limit: 200, Month: 3, Year: 2026}},
		// Outside the range, must not count as active.
		{Budget: models.Budget{ID: 3, CategoryID: 10, Limit: 900, Month: 7, Year: 2026}},
	}

	txns := []models.TransactionWithCategory{
		txn(1, 10, models.CategoryTypeExpense, 450, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), ""),
		txn(2, 11, models.CategoryTypeExpense, 260, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), ""),
		// Income in a budgeted category never counts toward spent.
		txn(3, 10, models.CategoryTypeIncome, 75, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), ""),
	}

	overview := BuildSummary(txns, budgets, from, to).BudgetOverview

	assert.Equal(t, 3, overview.AllBudgetsCount)
	assert.Equal(t, 2, overview.ActiveBudgetsCount)
	assert.Equal(t, 1, overview.OverBudgetCount)
	assert.Equal(t, 700.0, overview.TotalLimit)
	assert.Equal(t, 710.0, overview.TotalSpent)
	assert.InDelta(t, 101.428, overview.AverageUtilization, 0.001)
}

func TestBudgetOverviewNoActiveBudgets(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	budgets := []models.BudgetWithCategory{
		{Budget: models.Budget{ID: 1, CategoryID: 10, Limit: 500, Month: 8, Year: 2026}},
	}

	overview := BuildSummary(nil, budgets, from, to).BudgetOverview
	assert.Equal(t, 1, overview.AllBudgetsCount)
	assert.Equal(t, 0, overview.ActiveBudgetsCount)
	assert.Equal(t, 0.0, overview.AverageUtilization)
}

func TestTopExpensesTakesLargestFive(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	var txns []models.TransactionWithCategory
	amounts := []float64{10, 80, 30, 95, 20, 60, 45}
	for i, amt := range amounts {
		txns = append(txns, txn(i+1, 2, models.CategoryTypeExpense, amt, from.AddDate(0, 0, i), ""))
	}
	// Income never appears in top expenses regardless of size.
	txns = append(txns, txn(100, 1, models.CategoryTypeIncome, 5000, from, "salary"))

	top := BuildSummary(txns, nil, from, to).TopExpenses

	require.Len(t, top, 5)
	assert.Equal(t, 95.0, top[0].Amount)
	assert.Equal(t, 80.0, top[1].Amount)
	assert.Equal(t, 60.0, top[2].Amount)
	assert.Equal(t, 45.0, top[3].Amount)
	assert.Equal(t, 30.0, top[4].Amount)
}

func TestBuildSummaryEmptyRange(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)

	summary := BuildSummary(nil, nil, from, to)

	assert.Equal(t, 0.0, summary.TotalMetrics.TotalIncome)
	assert.Equal(t, 0, summary.TransactionCount)
	assert.Empty(t, summary.TopExpenses)
	// The trend still covers the whole range with zero periods.
	require.Len(t, summary.Trend, 3)
	for _, p := range summary.Trend {
		assert.Equal(t, 0.0, p.Income)
		assert.Equal(t, 0.0, p.Expenses)
	}
}
