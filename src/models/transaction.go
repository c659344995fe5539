package models

import "time"

type Transaction struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	CategoryID  int       `json:"category_id"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionWithCategory is a transaction row joined with its category in a
// single query, so aggregation never goes back to the database per row.
type TransactionWithCategory struct {
	Transaction
	CategoryName string       `json:"category_name"`
	CategoryType CategoryType `json:"category_type"`
}

type TransactionRequest struct {
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	CategoryID  int       `json:"category_id"`
}

// TransactionFilter narrows a transaction listing. Nil fields are no-ops.
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID *int
	MinAmount  *float64
	MaxAmount  *float64
}

// TransactionSort holds a sort key and direction. Keys outside the whitelist
// (id, date, amount, category) fall back to ascending by id.
type TransactionSort struct {
	OrderBy   string
	Ascending bool
}
