package models

import "time"

const (
	BudgetLimitMin = 1
	BudgetLimitMax = 1_000_000
	BudgetYearMin  = 2025
	BudgetYearMax  = 2100
)

type Budget struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	CategoryID int       `json:"category_id"`
	Limit      float64   `json:"limit"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
}

type BudgetRequest struct {
	CategoryID int     `json:"category_id"`
	Limit      float64 `json:"limit"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

// Validate checks the fixed ranges for budget fields.
// It returns an empty string when the request is valid.
func (r BudgetRequest) Validate() string {
	if r.Limit < BudgetLimitMin || r.Limit > BudgetLimitMax {
		return "limit must be between 1 and 1000000"
	}
	if r.Month < 1 || r.Month > 12 {
		return "month must be between 1 and 12"
	}
	if r.Year < BudgetYearMin || r.Year > BudgetYearMax {
		return "year must be between 2025 and 2100"
	}
	return ""
}

// BudgetWithCategory is a budget row joined with its category, before usage
// figures have been computed.
type BudgetWithCategory struct {
	Budget
	CategoryName string       `json:"category_name"`
	CategoryType CategoryType `json:"category_type"`
}

// BudgetResponse is a budget joined with its category plus the usage figures
// computed against the owner's transactions for the budget's month.
type BudgetResponse struct {
	ID           int          `json:"id"`
	CategoryID   int          `json:"category_id"`
	CategoryName string       `json:"category_name"`
	CategoryType CategoryType `json:"category_type"`
	Limit        float64      `json:"limit"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	Spent        float64      `json:"spent"`
	Remaining    float64      `json:"remaining"`
	PercentUsed  float64      `json:"percent_used"`
	IsOverBudget bool         `json:"is_over_budget"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ToResponse combines a budget with the amount spent in its month.
func (b BudgetWithCategory) ToResponse(spent float64) BudgetResponse {
	percentUsed := 0.0
	if b.Limit > 0 {
		percentUsed = spent / b.Limit * 100
	}
	return BudgetResponse{
		ID:           b.ID,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		CategoryType: b.CategoryType,
		Limit:        b.Limit,
		Month:        b.Month,
		Year:         b.Year,
		Spent:        spent,
		Remaining:    b.Limit - spent,
		PercentUsed:  percentUsed,
		IsOverBudget: spent > b.Limit,
		CreatedAt:    b.CreatedAt,
	}
}
