package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, category_id, amount, date, description, created_at
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, txn.UserID, txn.CategoryID, txn.Amount, txn.Date, txn.Description).
		Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, txnID int) (*models.TransactionWithCategory, error) {
	query := `
		SELECT t.id, t.user_id, t.category_id, t.amount, t.date, t.description, t.created_at,
		       c.name, c.type
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1 AND t.user_id = $2
	`
	var t models.TransactionWithCategory
	err := pool.QueryRow(ctx, query, txnID, userID).
		Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Description, &t.CreatedAt,
			&t.CategoryName, &t.CategoryType)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, txn *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, date = $3, description = $4
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, category_id, amount, date, description, created_at
	`
	var t models.Transaction
	err := pool.QueryRow(ctx, query, txn.CategoryID, txn.Amount, txn.Date, txn.Description, txn.ID, txn.UserID).
		Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, txnID int) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, txnID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

func TransactionExists(ctx context.Context, pool *pgxpool.Pool, userID, txnID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1 AND user_id = $2)`
	var exists bool
	err := pool.QueryRow(ctx, query, txnID, userID).Scan(&exists)
	return exists, err
}

// ListTransactions runs the transaction query pipeline: conjunctive filters,
// whitelisted sorting and offset pagination. One COUNT query gives the total
// so page metadata is independent of the fetched page.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID, page, pageSize int, filter models.TransactionFilter, sort models.TransactionSort) (models.PagedList[models.Transaction], error) {
	whereClause, args := buildTransactionWhere(userID, filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE ` + whereClause
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.PagedList[models.Transaction]{}, err
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, user_id, category_id, amount, date, description, created_at
		FROM transactions
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, transactionOrderClause(sort), len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return models.PagedList[models.Transaction]{}, err
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Description, &t.CreatedAt)
		if err != nil {
			return models.PagedList[models.Transaction]{}, err
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return models.PagedList[models.Transaction]{}, err
	}

	return models.NewPagedList(txns, total, page, pageSize), nil
}

// buildTransactionWhere renders the owner scope plus every set filter bound
// as a conjunction. Unset bounds add no condition.
func buildTransactionWhere(userID int, filter models.TransactionFilter) (string, []interface{}) {
	conds := []string{"user_id = $1"}
	args := []interface{}{userID}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.From != nil {
		add("date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("date <= $%d", *filter.To)
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.MinAmount != nil {
		add("amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("amount <= $%d", *filter.MaxAmount)
	}

	return strings.Join(conds, " AND "), args
}

var transactionSortColumns = map[string]string{
	"id":       "id",
	"date":     "date",
	"amount":   "amount",
	"category": "category_id",
}

// transactionOrderClause maps a sort key onto a whitelisted column. Unknown
// keys, including the empty one, fall back to ascending by id regardless of
// the requested direction.
func transactionOrderClause(sort models.TransactionSort) string {
	column, ok := transactionSortColumns[strings.ToLower(sort.OrderBy)]
	if !ok {
		return "id ASC"
	}
	if sort.Ascending {
		return column + " ASC"
	}
	return column + " DESC"
}

// GetTransactionsWithCategoryInRange fetches a user's transactions in
// [from, to] with their categories joined in the same query. This is the one
// transaction read the analytics aggregator performs.
func GetTransactionsWithCategoryInRange(ctx context.Context, pool *pgxpool.Pool, userID int, from, to time.Time) ([]models.TransactionWithCategory, error) {
	query := `
		SELECT t.id, t.user_id, t.category_id, t.amount, t.date, t.description, t.created_at,
		       c.name, c.type
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date
	`
	rows, err := pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []models.TransactionWithCategory
	for rows.Next() {
		var t models.TransactionWithCategory
		err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Description, &t.CreatedAt,
			&t.CategoryName, &t.CategoryType)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
