package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	dbcache "finance-tracker-server/src/db"
	db "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	transactionDescriptionMaxLen = 200
	defaultPageSize              = 20
	maxPageSize                  = 100
)

// validateTransactionRequest returns an error message, or "" when valid.
// Category existence is checked separately since it needs the database.
func validateTransactionRequest(req models.TransactionRequest) string {
	if req.Amount <= 0 {
		return "amount must be positive"
	}
	if req.Date.IsZero() {
		return "date is required"
	}
	if req.Date.After(time.Now()) {
		return "date cannot be in the future"
	}
	if len(req.Description) > transactionDescriptionMaxLen {
		return "description must be at most 200 characters"
	}
	if req.CategoryID <= 0 {
		return "category_id is required"
	}
	return ""
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		var req models.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %d: %v", userID, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if msg := validateTransactionRequest(req); msg != "" {
			util.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		// A transaction must point at one of the caller's own categories.
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

		created, err := db.CreateTransaction(r.Context(), pool, &models.Transaction{
			UserID:      userID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to create transaction")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Created transaction id %d for user %d", created.ID, userID)
		util.RespondJSON(w, http.StatusCreated, created)
	}
}

// ListTransactions serves the filtered, sorted, paginated listing. Pagination
// metadata travels in the X-Pagination header; the body is the items array.
func ListTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		page, pageSize, filter, sort, errMsg := parseTransactionListQuery(r)
		if errMsg != "" {
			util.RespondError(w, http.StatusBadRequest, errMsg)
			return
		}

		paged, err := db.ListTransactions(r.Context(), pool, userID, page, pageSize, filter, sort)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to list transactions")
			return
		}
		if paged.Items == nil {
			paged.Items = []models.Transaction{}
		}

		meta, err := json.Marshal(paged.Meta)
		if err != nil {
			log.Printf("ERROR: Failed to marshal pagination metadata: %v", err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("X-Pagination", string(meta))
		util.RespondJSON(w, http.StatusOK, paged.Items)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		txnID, err := strconv.Atoi(chi.URLParam(r, "transaction_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		txn, err := db.GetTransactionByID(r.Context(), pool, userID, txnID)
		if err != nil {
			log.Printf("ERROR: Transaction id %d not found for user %d: %v", txnID, userID, err)
			util.RespondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		util.RespondJSON(w, http.StatusOK, txn)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		txnID, err := strconv.Atoi(chi.URLParam(r, "transaction_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		exists, err := db.TransactionExists(r.Context(), pool, userID, txnID)
		if err != nil {
			log.Printf("ERROR: Failed to check transaction %d for user %d: %v", txnID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusNotFound, "transaction not found")
			return
		}

		var req models.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %d: %v", userID, err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if msg := validateTransactionRequest(req); msg != "" {
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

		updated, err := db.UpdateTransaction(r.Context(), pool, &models.Transaction{
			ID:          txnID,
			UserID:      userID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Date:        req.Date,
			Description: req.Description,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update transaction id %d for user %d: %v", txnID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to update transaction")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Updated transaction id %d for user %d", updated.ID, userID)
		util.RespondJSON(w, http.StatusOK, updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		txnID, err := strconv.Atoi(chi.URLParam(r, "transaction_id"))
		if err != nil {
			util.RespondError(w, http.StatusBadRequest, "invalid transaction id")
			return
		}

		exists, err := db.TransactionExists(r.Context(), pool, userID, txnID)
		if err != nil {
			log.Printf("ERROR: Failed to check transaction %d for user %d: %v", txnID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			util.RespondError(w, http.StatusNotFound, "transaction not found")
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, userID, txnID); err != nil {
			log.Printf("ERROR: Failed to delete transaction id %d for user %d: %v", txnID, userID, err)
			util.RespondError(w, http.StatusInternalServerError, "failed to delete transaction")
			return
		}

		dbcache.InvalidateUserCaches(userID)
		log.Printf("INFO: Deleted transaction id %d for user %d", txnID, userID)
		util.RespondJSON(w, http.StatusNoContent, nil)
	}
}

// parseTransactionListQuery reads the listing query parameters. Every
// malformed value is a hard 400 rather than a silently dropped filter.
func parseTransactionListQuery(r *http.Request) (page, pageSize int, filter models.TransactionFilter, sort models.TransactionSort, errMsg string) {
	q := r.URL.Query()

	page = 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, filter, sort, "page must be a positive integer"
		}
		page = n
	}

	pageSize = defaultPageSize
	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, filter, sort, "page_size must be a positive integer"
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		pageSize = n
	}

	if raw := q.Get("from"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return 0, 0, filter, sort, "from must be a date (YYYY-MM-DD or RFC 3339)"
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return 0, 0, filter, sort, "to must be a date (YYYY-MM-DD or RFC 3339)"
		}
		filter.To = &t
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return 0, 0, filter, sort, "from must not be after to"
	}

	if raw := q.Get("category_id"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, 0, filter, sort, "category_id must be a positive integer"
		}
		filter.CategoryID = &n
	}
	if raw := q.Get("min_amount"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, filter, sort, "min_amount must be a number"
		}
		filter.MinAmount = &f
	}
	if raw := q.Get("max_amount"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, filter, sort, "max_amount must be a number"
		}
		filter.MaxAmount = &f
	}
	if filter.MinAmount != nil && filter.MaxAmount != nil && *filter.MinAmount > *filter.MaxAmount {
		return 0, 0, filter, sort, "min_amount must not exceed max_amount"
	}

	sort.OrderBy = q.Get("order_by")
	sort.Ascending = true
	if raw := q.Get("ascending"); raw != "" {
		asc, err := strconv.ParseBool(raw)
		if err != nil {
			return 0, 0, filter, sort, "ascending must be a boolean"
		}
		sort.Ascending = asc
	}

	return page, pageSize, filter, sort, ""
}

// parseDateParam accepts plain dates and full RFC 3339 timestamps.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
