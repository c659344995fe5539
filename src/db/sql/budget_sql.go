package db

import (
	"context"
	"fmt"

	"finance-tracker-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, limit_amount, month, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, category_id, limit_amount, month, year, created_at
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budget.UserID, budget.CategoryID, budget.Limit, budget.Month, budget.Year).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month, &b.Year, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func GetBudgetByID(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) (*models.BudgetWithCategory, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.limit_amount, b.month, b.year, b.created_at,
		       c.name, c.type
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1 AND b.user_id = $2
	`
	var b models.BudgetWithCategory
	err := pool.QueryRow(ctx, query, budgetID, userID).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month, &b.Year, &b.CreatedAt,
			&b.CategoryName, &b.CategoryType)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetAllBudgetsForUser returns the user's budgets with categories joined in
// the same query. This also backs the analytics budget overview.
func GetAllBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.BudgetWithCategory, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.limit_amount, b.month, b.year, b.created_at,
		       c.name, c.type
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.BudgetWithCategory
	for rows.Next() {
		var b models.BudgetWithCategory
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month, &b.Year, &b.CreatedAt,
			&b.CategoryName, &b.CategoryType)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = $1, limit_amount = $2, month = $3, year = $4
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, category_id, limit_amount, month, year, created_at
	`
	var b models.Budget
	err := pool.QueryRow(ctx, query, budget.CategoryID, budget.Limit, budget.Month, budget.Year, budget.ID, budget.UserID).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month, &b.Year, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("budget not found")
	}
	return nil
}

func BudgetExists(ctx context.Context, pool *pgxpool.Pool, userID, budgetID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM budgets WHERE id = $1 AND user_id = $2)`
	var exists bool
	err := pool.QueryRow(ctx, query, budgetID, userID).Scan(&exists)
	return exists, err
}

// SpentKey addresses one month of spending within one category.
type SpentKey struct {
	CategoryID int
	Month      int
	Year       int
}

// GetSpentByCategoryMonth sums the user's transactions per (category, month,
// year) in one grouped query, so a budget list never fans out into per-budget
// reads.
func GetSpentByCategoryMonth(ctx context.Context, pool *pgxpool.Pool, userID int) (map[SpentKey]float64, error) {
	query := `
		SELECT category_id,
		       EXTRACT(MONTH FROM date)::int,
		       EXTRACT(YEAR FROM date)::int,
		       SUM(amount)
		FROM transactions
		WHERE user_id = $1
		GROUP BY 1, 2, 3
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spent := make(map[SpentKey]float64)
	for rows.Next() {
		var key SpentKey
		var sum float64
		if err := rows.Scan(&key.CategoryID, &key.Month, &key.Year, &sum); err != nil {
			return nil, err
		}
		spent[key] = sum
	}
	return spent, rows.Err()
}

// GetSpentForBudget sums the user's transactions in the budget's category for
// its exact month and year.
func GetSpentForBudget(ctx context.Context, pool *pgxpool.Pool, userID, categoryID, month, year int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND category_id = $2
		  AND EXTRACT(MONTH FROM date)::int = $3
		  AND EXTRACT(YEAR FROM date)::int = $4
	`
	var spent float64
	err := pool.QueryRow(ctx, query, userID, categoryID, month, year).Scan(&spent)
	return spent, err
}
