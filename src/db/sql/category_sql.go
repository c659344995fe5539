package db

import (
	"context"
	"fmt"

	"finance-tracker-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, description, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, description, type
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, category.UserID, category.Name, category.Description, category.Type).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Type)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, description, type
		FROM categories WHERE id = $1 AND user_id = $2
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, categoryID, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Type)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetAllCategoriesForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, description, type
		FROM categories WHERE user_id = $1
		ORDER BY id
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Type)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, description = $2, type = $3
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, name, description, type
	`
	var c models.Category
	err := pool.QueryRow(ctx, query, category.Name, category.Description, category.Type, category.ID, category.UserID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.Type)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}
	return nil
}

// CategoryNameExists reports whether the user already owns a category with
// this exact name. excludeID skips the category being renamed; pass 0 on
// create.
func CategoryNameExists(ctx context.Context, pool *pgxpool.Pool, userID int, name string, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE user_id = $1 AND name = $2 AND id <> $3
		)
	`
	var exists bool
	err := pool.QueryRow(ctx, query, userID, name, excludeID).Scan(&exists)
	return exists, err
}

func CategoryExists(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`
	var exists bool
	err := pool.QueryRow(ctx, query, categoryID, userID).Scan(&exists)
	return exists, err
}

// CategoryHasTransactions reports whether any of the user's transactions
// still reference the category; such a category must not be deleted.
func CategoryHasTransactions(ctx context.Context, pool *pgxpool.Pool, userID, categoryID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = $1 AND user_id = $2)`
	var exists bool
	err := pool.QueryRow(ctx, query, categoryID, userID).Scan(&exists)
	return exists, err
}
