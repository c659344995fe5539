package handlers

import (
	"log"
	"net/http"

	db "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetMe returns the authenticated user's profile. The password hash never
// serializes.
func GetMe(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			util.RespondError(w, http.StatusUnauthorized, "missing identity")
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get user - user_id: %d: %v", userID, err)
			util.RespondError(w, http.StatusNotFound, "user not found")
			return
		}

		util.RespondJSON(w, http.StatusOK, user)
	}
}
