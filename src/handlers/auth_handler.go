package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"finance-tracker-server/src/config"
	db "finance-tracker-server/src/db/sql"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Password hashing cost. Bumping it only affects newly stored hashes.
const bcryptCost = 12

// validateRegisterRequest normalizes the email and returns an error message,
// or "" when valid. confirm_password is optional; it is only checked against
// the password when the client sends it.
func validateRegisterRequest(req *models.RegisterRequest) string {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !util.ValidateEmail(req.Email) {
		return "invalid email format"
	}
	if !util.ValidatePassword(req.Password) {
		return "password must be at least 8 characters"
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		return "passwords do not match"
	}
	return ""
}

func Register(pool *pgxpool.Pool, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if msg := validateRegisterRequest(&req); msg != "" {
			log.Printf("ERROR: Registration validation failed - Email: %s: %s", req.Email, msg)
			util.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Email, hashedPassword)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
				util.RespondError(w, http.StatusConflict, "email already registered")
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			util.RespondError(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Printf("INFO: Successful registration - Email: %s, ID: %d", user.Email, user.ID)

		resp, err := issueToken(user, cfg)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %d: %v", user.ID, err)
			util.RespondError(w, http.StatusInternalServerError, "error generating token")
			return
		}
		util.RespondJSON(w, http.StatusCreated, resp)
	}
}

func Login(pool *pgxpool.Pool, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			util.RespondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		user, err := db.GetUserByEmail(r.Context(), pool, email)
		if err != nil {
			log.Printf("ERROR: Failed to find user during login - Email: %s: %v", email, err)
			util.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for %s from IP %s", email, r.RemoteAddr)
			util.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		resp, err := issueToken(user, cfg)
		if err != nil {
			log.Printf("ERROR: Failed to generate JWT token for user %d: %v", user.ID, err)
			util.RespondError(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Successful login - Email: %s, ID: %d", user.Email, user.ID)
		util.RespondJSON(w, http.StatusOK, resp)
	}
}

// issueToken signs a bearer token carrying the user's id and email. Every
// protected endpoint resolves the caller from these two claims.
func issueToken(user *models.User, cfg config.Config) (models.AuthResponse, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.JWTExpirationHours) * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
		"iss":     "finance-tracker-server",
	})

	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{
		Token:     tokenString,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}
