package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/auth"
)

type registerReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Year     string `json:"year,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// POST /auth/register
func RegisterHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		u, err := users.Create(r.Context(), auth.User{
			Username: req.Username,
			Name:     req.Name,
			Year:     req.Year,
			Role:     req.Role,
		}, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				writeError(w, http.StatusConflict, "user already exists")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string    `json:"token"`
	User  auth.User `json:"user"`
}

// POST /auth/login
func LoginHandler(users *auth.UserStore, svc *auth.Service, limiter auth.RateLimiter, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if !limiter.Allow(req.Username) {
			writeError(w, http.StatusTooManyRequests, "too many attempts, try again later")
			return
		}
		u, err := users.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			logger.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		token, err := svc.IssueToken(u)
		if err != nil {
			logger.Error("issue token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "issue token")
			return
		}
		writeJSON(w, http.StatusOK, loginResp{Token: token, User: u})
	}
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// POST /auth/change-password
func ChangePasswordHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req changePasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "new password required")
			return
		}
		err := users.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusForbidden, "incorrect old password")
		case errors.Is(err, auth.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}
