package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
)

// GET /admin/students
func ListStudentsHandler(users *auth.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := users.ListStudents(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if students == nil {
			students = []auth.User{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"students": students})
	}
}

// GET /admin/students/{studentID}
func GetStudentHandler(users *auth.UserStore, svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "studentID")
		u, err := users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "student not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		results, err := svc.History(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if results == nil {
			results = []assessment.Result{}
		}
		writeJSON(w, http.StatusOK, profileResp{User: u, Results: results})
	}
}

type createStudentReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Year     string `json:"year"`
	Password string `json:"password"`
}

// POST /admin/students
func CreateStudentHandler(users *auth.UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStudentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Password == "" {
			req.Password = defaultStudentPassword
		}
		u, err := users.Create(r.Context(), auth.User{
			Username: req.Username,
			Name:     req.Name,
			Year:     req.Year,
			Role:     auth.RoleStudent,
		}, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				writeError(w, http.StatusConflict, "username already exists")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Info("student created", zap.String("username", u.Username))
		writeJSON(w, http.StatusCreated, u)
	}
}

// DELETE /admin/students/{studentID}. Results go with the account via the
// ON DELETE CASCADE on results.user_id.
func DeleteStudentHandler(users *auth.UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "studentID")
		if err := users.Delete(r.Context(), id); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "student not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logger.Info("student deleted", zap.String("user_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

type resetReq struct {
	Instrument string `json:"instrument"`
}

// POST /admin/students/{studentID}/reset removes results for one instrument,
// or every instrument when the body omits one, so the student can retake.
func ResetAssessmentHandler(users *auth.UserStore, svc *assessment.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "studentID")
		if _, err := users.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "student not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var req resetReq
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		removed, err := svc.Reset(r.Context(), id, req.Instrument)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		remaining, err := svc.History(r.Context(), id)
		if err == nil {
			if err := users.SetCompleted(r.Context(), id, len(remaining) > 0); err != nil {
				logger.Warn("update completed flag", zap.Error(err), zap.String("user_id", id))
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
	}
}
