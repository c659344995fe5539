package models

// CategoryType distinguishes income categories from expense categories.
// Serialized as a number to match the clients that already exist.
type CategoryType int

const (
	CategoryTypeNone    CategoryType = 0
	CategoryTypeIncome  CategoryType = 1
	CategoryTypeExpense CategoryType = 2
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeNone || t == CategoryTypeIncome || t == CategoryTypeExpense
}

type Category struct {
	ID          int          `json:"id"`
	UserID      int          `json:"user_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        CategoryType `json:"type"`
}

type CategoryRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Type        CategoryType `json:"type"`
}
