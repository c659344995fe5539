// Package analytics turns a user's transaction and budget history into a
// summary: totals, category breakdowns, a gapless time series, budget
// utilization and top expenses. Everything here is pure in-memory
// aggregation; the two batched queries feeding it live in the db layer.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"finance-tracker-server/src/models"
)

const topExpenseCount = 5

type TotalMetrics struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
	SavingsRate   float64 `json:"savings_rate"`
}

type CategoryAnalytics struct {
	CategoryID       int     `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

type PeriodAnalytics struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodLabel string    `json:"period_label"`
	Income      float64   `json:"income"`
	Expenses    float64   `json:"expenses"`
	NetBalance  float64   `json:"net_balance"`
}

type BudgetOverview struct {
	AllBudgetsCount    int     `json:"all_budgets_count"`
	ActiveBudgetsCount int     `json:"active_budgets_count"`
	OverBudgetCount    int     `json:"over_budget_count"`
	TotalLimit         float64 `json:"total_limit"`
	TotalSpent         float64 `json:"total_spent"`
	AverageUtilization float64 `json:"average_utilization"`
}

type TopTransaction struct {
	TransactionID int       `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	CategoryName  string    `json:"category_name"`
	Date          time.Time `json:"date"`
}

type Summary struct {
	TotalMetrics       TotalMetrics        `json:"total_metrics"`
	TransactionCount   int                 `json:"transaction_count"`
	IncomesByCategory  []CategoryAnalytics `json:"incomes_by_category"`
	ExpensesByCategory []CategoryAnalytics `json:"expenses_by_category"`
	Trend              []PeriodAnalytics   `json:"trend"`
	BudgetOverview     BudgetOverview      `json:"budget_overview"`
	TopExpenses        []TopTransaction    `json:"top_expenses"`
}

// BuildSummary aggregates the in-range transactions and the user's budgets
// into the summary response for [from, to].
func BuildSummary(txns []models.TransactionWithCategory, budgets []models.BudgetWithCategory, from, to time.Time) Summary {
	totals := computeTotalMetrics(txns)

	return Summary{
		TotalMetrics:       totals,
		TransactionCount:   len(txns),
		IncomesByCategory:  categoryBreakdown(txns, models.CategoryTypeIncome, totals.TotalIncome),
		ExpensesByCategory: categoryBreakdown(txns, models.CategoryTypeExpense, totals.TotalExpenses),
		Trend:              buildTrend(txns, from, to),
		BudgetOverview:     buildBudgetOverview(budgets, txns, from, to),
		TopExpenses:        topExpenses(txns),
	}
}

func computeTotalMetrics(txns []models.TransactionWithCategory) TotalMetrics {
	var income, expenses float64
	for _, t := range txns {
		switch t.CategoryType {
		case models.CategoryTypeIncome:
			income += t.Amount
		case models.CategoryTypeExpense:
			expenses += t.Amount
		}
	}

	balance := income - expenses
	savingsRate := 0.0
	if income > 0 {
		savingsRate = balance / income * 100
	}

	return TotalMetrics{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       balance,
		SavingsRate:   savingsRate,
	}
}

// categoryBreakdown sums one category type per category, with each entry's
// share of the type's total. Sorted by amount, largest first.
func categoryBreakdown(txns []models.TransactionWithCategory, categoryType models.CategoryType, total float64) []CategoryAnalytics {
	byCategory := make(map[int]*CategoryAnalytics)
	for _, t := range txns {
		if t.CategoryType != categoryType {
			continue
		}
		entry, ok := byCategory[t.CategoryID]
		if !ok {
			entry = &CategoryAnalytics{CategoryID: t.CategoryID, CategoryName: t.CategoryName}
			byCategory[t.CategoryID] = entry
		}
		entry.Amount += t.Amount
		entry.TransactionCount++
	}

	breakdown := make([]CategoryAnalytics, 0, len(byCategory))
	for _, entry := range byCategory {
		if total != 0 {
			entry.Percentage = entry.Amount / total * 100
		}
		breakdown = append(breakdown, *entry)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})
	return breakdown
}

// buildTrend buckets transactions by calendar month when the range spans
// more than one month, otherwise by calendar day. Periods without
// transactions are synthesized with zero values so the series has no gaps.
func buildTrend(txns []models.TransactionWithCategory, from, to time.Time) []PeriodAnalytics {
	byMonth := monthsApart(from, to) > 0

	buckets := make(map[string]*PeriodAnalytics)
	for _, t := range txns {
		start, label := periodOf(t.Date, byMonth)
		bucket, ok := buckets[label]
		if !ok {
			bucket = &PeriodAnalytics{PeriodStart: start, PeriodLabel: label}
			buckets[label] = bucket
		}
		switch t.CategoryType {
		case models.CategoryTypeIncome:
			bucket.Income += t.Amount
		case models.CategoryTypeExpense:
			bucket.Expenses += t.Amount
		}
	}

	// Zero-fill the periods nothing landed in.
	for _, start := range periodStarts(from, to, byMonth) {
		_, label := periodOf(start, byMonth)
		if _, ok := buckets[label]; !ok {
			buckets[label] = &PeriodAnalytics{PeriodStart: start, PeriodLabel: label}
		}
	}

	trend := make([]PeriodAnalytics, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.NetBalance = bucket.Income - bucket.Expenses
		trend = append(trend, *bucket)
	}

	sort.Slice(trend, func(i, j int) bool {
		return trend[i].PeriodStart.Before(trend[j].PeriodStart)
	})
	return trend
}

// monthsApart counts whole calendar months between the two dates, ignoring
// the day component.
func monthsApart(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func periodOf(date time.Time, byMonth bool) (time.Time, string) {
	if byMonth {
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// periodStarts enumerates every calendar unit from from's period to to's
// period inclusive.
func periodStarts(from, to time.Time, byMonth bool) []time.Time {
	var starts []time.Time
	if byMonth {
		current := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !current.After(last) {
			starts = append(starts, current)
			current = current.AddDate(0, 1, 0)
		}
		return starts
	}
	current := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	for !current.After(last) {
		starts = append(starts, current)
		current = current.AddDate(0, 0, 1)
	}
	return starts
}

// buildBudgetOverview reports utilization over the active budgets: those
// whose month overlaps [from, to]. Spent counts only expense-type
// transactions that fall in the budget's category and exact month.
func buildBudgetOverview(budgets []models.BudgetWithCategory, txns []models.TransactionWithCategory, from, to time.Time) BudgetOverview {
	overview := BudgetOverview{AllBudgetsCount: len(budgets)}

	for _, b := range budgets {
		periodStart := time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
		periodEnd := periodStart.AddDate(0, 1, -1)
		if periodStart.After(to) || periodEnd.Before(from) {
			continue
		}

		var spent float64
		for _, t := range txns {
			if t.CategoryID == b.CategoryID &&
				t.CategoryType == models.CategoryTypeExpense &&
				t.Date.Year() == b.Year &&
				int(t.Date.Month()) == b.Month {
				spent += t.Amount
			}
		}

		overview.ActiveBudgetsCount++
		overview.TotalLimit += b.Limit
		overview.TotalSpent += spent
		if spent > b.Limit {
			overview.OverBudgetCount++
		}
	}

	if overview.TotalLimit > 0 {
		overview.AverageUtilization = overview.TotalSpent / overview.TotalLimit * 100
	}
	return overview
}

// topExpenses picks the five largest expense-type transactions in range.
func topExpenses(txns []models.TransactionWithCategory) []TopTransaction {
	expenses := make([]models.TransactionWithCategory, 0, len(txns))
	for _, t := range txns {
		if t.CategoryType == models.CategoryTypeExpense {
			expenses = append(expenses, t)
		}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount > expenses[j].Amount
	})
	if len(expenses) > topExpenseCount {
		expenses = expenses[:topExpenseCount]
	}

	top := make([]TopTransaction, 0, len(expenses))
	for _, t := range expenses {
		top = append(top, TopTransaction{
			TransactionID: t.ID,
			Amount:        t.Amount,
			Description:   t.Description,
			CategoryName:  t.CategoryName,
			Date:          t.Date,
		})
	}
	return top
}
