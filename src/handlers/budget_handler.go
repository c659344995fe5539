package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	dbcache "finance-tracker-server/src/db"
	db "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		var req models.BudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %d: %v", userID, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if msg := req.Validate(); msg != "" {
			util.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		exists, err := db.CategoryExists(r.Context(), pool, userID, req.CategoryID)
		if err != nil {
			log.Printf("ERROR: Failed to check category %d for user %d: %v", req.CategoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusBadRequest, "category does not exist")
			return
		}

		created, err := db.CreateBudget(r.Context(), pool, &models.Budget{
			UserID:     userID,
			CategoryID: req.CategoryID,
			Limit:      req.Limit,
			Month:      req.Month,
			Year:       req.Year,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to create budget")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Created budget id %d for user %d", created.ID, userID)

		resp, err := budgetResponse(r, pool, userID, created.ID)
		if err != nil {
			log.Printf("ERROR: Failed to load created budget id %d for user %d: %v", created.ID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		util.RespondJSON(w, http.StatusCreated, resp)
	}
}

// GetAllBudgets serves the user's budgets with usage figures. The assembled
// list is cached per user and dropped on any write to the user's data.
func GetAllBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		cacheKey := dbcache.BudgetListCacheKey(userID)
		if cached, found := dbcache.Cache.Get(cacheKey); found {
			if responses, ok := cached.([]models.BudgetResponse); ok {
				util.RespondJSON(w, http.StatusOK, responses)
				return
			}
		}

		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to get budgets")
			return
		}

		// One grouped query covers every budget's month, whatever the count.
		spentByMonth, err := db.GetSpentByCategoryMonth(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get spent totals for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		responses := make([]models.BudgetResponse, 0, len(budgets))
		for _, b := range budgets {
			spent := spentByMonth[db.SpentKey{CategoryID: b.CategoryID, Month: b.Month, Year: b.Year}]
			responses = append(responses, b.ToResponse(spent))
		}

		dbcache.SetBudgetListCache(cacheKey, responses)
		util.RespondJSON(w, http.StatusOK, responses)
	}
}

func GetBudgetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		budgetID, err := strconv.Atoi(chi.URLParam(r, "budget_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		resp, err := budgetResponse(r, pool, userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Budget id %d not found for user %d: %v", budgetID, userID, err)
			util.RespondError(w, http.StatusNotFound, "budget not found")
			return
		}
		util.RespondJSON(w, http.StatusOK, resp)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		budgetID, err := strconv.Atoi(chi.URLParam(r, "budget_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		exists, err := db.BudgetExists(r.Context(), pool, userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to check budget %d for user %d: %v", budgetID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusNotFound, "budget not found")
			return
		}

		var req models.BudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %d: %v", userID, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if msg := req.Validate(); msg != "" {
			util.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		categoryOK, err := db.CategoryExists(r.Context(), pool, userID, req.CategoryID)
		if err != nil {
			log.Printf("ERROR: Failed to check category %d for user %d: %v", req.CategoryID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !categoryOK {
			util.RespondError(w, http.StatusBadRequest, "category does not exist")
			return
		}

		updated, err := db.UpdateBudget(r.Context(), pool, &models.Budget{
			ID:         budgetID,
			UserID:     userID,
			CategoryID: req.CategoryID,
			Limit:      req.Limit,
			Month:      req.Month,
			Year:       req.Year,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update budget id %d for user %d: %v", budgetID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to update budget")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Updated budget id %d for user %d", updated.ID, userID)

		resp, err := budgetResponse(r, pool, userID, updated.ID)
		if err != nil {
			log.Printf("ERROR: Failed to load updated budget id %d for user %d: %v", updated.ID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		util.RespondJSON(w, http.StatusOK, resp)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		budgetID, err := strconv.Atoi(chi.URLParam(r, "budget_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid budget id")
			return
		}

		exists, err := db.BudgetExists(r.Context(), pool, userID, budgetID)
		if err != nil {
			log.Printf("ERROR: Failed to check budget %d for user %d: %v", budgetID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusNotFound, "budget not found")
			return
		}

		if err := db.DeleteBudget(r.Context(), pool, userID, budgetID); err != nil {
			log.Printf("ERROR: Failed to delete budget id %d for user %d: %v", budgetID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to delete budget")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Deleted budget id %d for user %d", budgetID, userID)
		util.RespondJSON(w, http.StatusNoContent, nil)
	}
}

// budgetResponse loads one budget with its category and attaches the amount
// spent in its month.
func budgetResponse(r *http.Request, pool *pgxpool.Pool, userID, budgetID int) (models.BudgetResponse, error) {
	budget, err := db.GetBudgetByID(r.Context(), pool, userID, budgetID)
	if err != nil {
		return models.BudgetResponse{}, err
	}
	spent, err := db.GetSpentForBudget(r.Context(), pool, userID, budget.CategoryID, budget.Month, budget.Year)
	if err != nil {
		return models.BudgetResponse{}, err
	}
	return budget.ToResponse(spent), nil
}
