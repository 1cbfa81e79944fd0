package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
	"github.com/pathlight/pathlight-api/internal/scoring"
)

type submitReq struct {
	Instrument string            `json:"instrument"`
	Answers    scoring.AnswerSet `json:"answers"`
}

// POST /submissions
func SubmitHandler(svc *assessment.Service, users *auth.UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.Instrument == "" || len(req.Answers) == 0 {
			writeError(w, http.StatusBadRequest, "instrument and answers are required")
			return
		}

		result, err := svc.SubmitTest(r.Context(), userID, req.Instrument, req.Answers)
		if err != nil {
			var incomplete *scoring.IncompleteAnswersError
			switch {
			case errors.As(err, &incomplete):
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error":   "answer set incomplete",
					"missing": incomplete.Missing,
				})
			case errors.Is(err, assessment.ErrNoQuestions):
				writeError(w, http.StatusNotFound, "no questions for instrument")
			case errors.Is(err, assessment.ErrAlreadyTaken):
				writeError(w, http.StatusConflict, "instrument already taken")
			case errors.Is(err, scoring.ErrNoScorableAnswers):
				writeError(w, http.StatusBadRequest, "no scorable answers")
			default:
				logger.Error("submit test", zap.Error(err), zap.String("user_id", userID))
				writeError(w, http.StatusInternalServerError, "submission failed")
			}
			return
		}

		if err := users.SetCompleted(r.Context(), userID, true); err != nil {
			// The result is already appended; the flag is derived state.
			logger.Warn("mark completed", zap.Error(err), zap.String("user_id", userID))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

type profileResp struct {
	auth.User
	Results []assessment.Result `json:"results"`
}

// GET /me
func MeHandler(users *auth.UserStore, svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		u, err := users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "user not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		results, err := svc.History(r.Context(), userID)
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
