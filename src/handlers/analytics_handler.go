package handlers

import (
	"log"
	"net/http"
	"time"

	"finance-tracker-server/src/analytics"
	dbcache "finance-tracker-server/src/db"
	db "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Longest range the summary endpoint will aggregate over, in days.
const maxAnalyticsRangeDays = 730

// GetAnalyticsSummary serves the read-only financial summary for a date
// range. Results are cached per (user, range) and dropped on any write.
func GetAnalyticsSummary(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		from, to, errMsg := resolveAnalyticsDateRange(r)
		if errMsg != "" {
			util.RespondError(w, http.StatusBadRequest, errMsg)
			return
		}

		cacheKey := dbcache.SummaryCacheKey(userID, from, to)
		if cached, found := dbcache.Cache.Get(cacheKey); found {
			if summary, ok := cached.(analytics.Summary); ok {
				util.RespondJSON(w, http.StatusOK, summary)
				return
			}
		}

		// Two batched reads feed the whole summary: the joined transactions
		// in range and the user's budgets.
		txns, err := db.GetTransactionsWithCategoryInRange(r.Context(), pool, userID, from, to)
		if err != nil {
			log.Printf("ERROR: Failed to load transactions for analytics - user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		budgets, err := db.GetAllBudgetsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load budgets for analytics - user %d: %v", userID, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		summary := analytics.BuildSummary(txns, budgets, from, to)

		dbcache.SetSummaryCache(cacheKey, summary)
		util.RespondJSON(w, http.StatusOK, summary)
	}
}

// resolveAnalyticsDateRange reads the from/to query parameters. When absent,
// the range defaults to the current month so far.
func resolveAnalyticsDateRange(r *http.Request) (from, to time.Time, errMsg string) {
	now := time.Now().UTC()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = now

	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return from, to, "from must be a date (YYYY-MM-DD or RFC 3339)"
		}
		from = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return from, to, "to must be a date (YYYY-MM-DD or RFC 3339)"
		}
		to = t
	}

	if from.After(to) {
		return from, to, "from must not be after to"
	}
	if to.Sub(from) > maxAnalyticsRangeDays*24*time.Hour {
		return from, to, "date range must not exceed 730 days"
	}
	return from, to, ""
}
