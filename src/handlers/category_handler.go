package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	dbcache "finance-tracker-server/src/db"
	db "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	categoryNameMaxLen        = 50
	categoryDescriptionMaxLen = 200
)

// validateCategoryRequest returns an error message, or "" when valid. Name
// comparisons elsewhere are case sensitive, so no folding happens here.
func validateCategoryRequest(req *models.CategoryRequest) string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if len(req.Name) > categoryNameMaxLen {
		return "name must be at most 50 characters"
	}
	if len(req.Description) > categoryDescriptionMaxLen {
		return "description must be at most 200 characters"
	}
	if !req.Type.Valid() {
		return "type must be none (0), income (1) or expense (2)"
	}
	return ""
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		var req models.CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %d: %v", userID, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if msg := validateCategoryRequest(&req); msg != "" {
			util.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		taken, err := db.CategoryNameExists(r.Context(), pool, userID, req.Name, 0)
		if err != nil {
			log.Printf("ERROR: Failed to check category name for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if taken {
			util.RespondError(w, http.StatusConflict, "a category with this name already exists")
			return
		}

		created, err := db.CreateCategory(r.Context(), pool, &models.Category{
			UserID:      userID,
			Name:        req.Name,
			Description: req.Description,
			Type:        req.Type,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create category for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to create category")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Created category id %d for user %d", created.ID, userID)
		util.RespondJSON(w, http.StatusCreated, created)
	}
}

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		categories, err := db.GetAllCategoriesForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get categories for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to get categories")
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		util.RespondJSON(w, http.StatusOK, categories)
	}
}

func GetCategoryByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		categoryID, err := strconv.Atoi(chi.URLParam(r, "category_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid category id")
			return
		}

		category, err := db.GetCategoryByID(r.Context(), pool, userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Category id %d not found for user %d: %v", categoryID, userID, err)
			util.RespondError(w, http.StatusNotFound, "category not found")
			return
		}
		util.RespondJSON(w, http.StatusOK, category)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		categoryID, err := strconv.Atoi(chi.URLParam(r, "category_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid category id")
			return
		}

		exists, err := db.CategoryExists(r.Context(), pool, userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to check category %d for user %d: %v", categoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusNotFound, "category not found")
			return
		}

		var req models.CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %d: %v", userID, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if msg := validateCategoryRequest(&req); msg != "" {
			util.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		// A rename may keep the current name, so the check skips this row.
		taken, err := db.CategoryNameExists(r.Context(), pool, userID, req.Name, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to check category name for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if taken {
			util.RespondError(w, http.StatusConflict, "a category with this name already exists")
			return
		}

		updated, err := db.UpdateCategory(r.Context(), pool, &models.Category{
			ID:          categoryID,
			UserID:      userID,
			Name:        req.Name,
			Description: req.Description,
			Type:        req.Type,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update category id %d for user %d: %v", categoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to update category")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Updated category id %d for user %d", updated.ID, userID)
		util.RespondJSON(w, http.StatusOK, updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		categoryID, err := strconv.Atoi(chi.URLParam(r, "category_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid category id")
			return
		}

		exists, err := db.CategoryExists(r.Context(), pool, userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to check category %d for user %d: %v", categoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusNotFound, "category not found")
			return
		}

		inUse, err := db.CategoryHasTransactions(r.Context(), pool, userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to check transactions for category %d, user %d: %v", categoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if inUse {
			util.RespondError(w, http.StatusConflict, "category has transactions and cannot be deleted")
			return
		}

		if err := db.DeleteCategory(r.Context(), pool, userID, categoryID); err != nil {
			log.Printf("ERROR: Failed to delete category id %d for user %d: %v", categoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to delete category")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Deleted category id %d for user %d", categoryID, userID)
		util.RespondJSON(w, http.StatusNoContent, nil)
	}
}
