package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/rbac"
)

// GET /questions?instrument=RIASEC
// Correct answers are stripped unless the caller is an admin, mirroring how
// the exam UI must never see the MCQ key.
func ListQuestionsHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := store.ListQuestions(r.Context(), assessment.CanonicalKey(r.URL.Query().Get("instrument")))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rbac.RoleFromContext(r.Context()) != "admin" {
			for i := range questions {
				questions[i].CorrectAnswer = ""
			}
		}
		if questions == nil {
			questions = []assessment.Question{}
		}
		writeJSON(w, http.StatusOK, questions)
	}
}

// PublicQuestionsHandler serves the bank without auth; keys always stripped.
func PublicQuestionsHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := store.ListQuestions(r.Context(), assessment.CanonicalKey(r.URL.Query().Get("instrument")))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for i := range questions {
			questions[i].CorrectAnswer = ""
		}
		if questions == nil {
			questions = []assessment.Question{}
		}
		writeJSON(w, http.StatusOK, questions)
	}
}

// GET /questions/{questionID}
func GetQuestionHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			if errors.Is(err, assessment.ErrQuestionNotFound) {
				writeError(w, http.StatusNotFound, "question not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rbac.RoleFromContext(r.Context()) != "admin" {
			q.CorrectAnswer = ""
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// POST /questions
func CreateQuestionHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q assessment.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := validateQuestion(&q); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.ID = uuid.NewString()
		if err := store.PutQuestion(r.Context(), q); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// PUT /questions/{questionID}
func UpdateQuestionHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q assessment.Question
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		q.ID = chi.URLParam(r, "questionID")
		if err := validateQuestion(&q); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := store.UpdateQuestion(r.Context(), q); err != nil {
			if errors.Is(err, assessment.ErrQuestionNotFound) {
				writeError(w, http.StatusNotFound, "question not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// DELETE /questions/{questionID}
func DeleteQuestionHandler(store assessment.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			if errors.Is(err, assessment.ErrQuestionNotFound) {
				writeError(w, http.StatusNotFound, "question not found")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /instruments
func ListInstrumentsHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Instruments(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func validateQuestion(q *assessment.Question) error {
	q.Instrument = assessment.CanonicalKey(q.Instrument)
	if q.Instrument == "" || q.Text == "" || q.Position < 1 {
		return errors.New("instrument, text and a positive position are required")
	}
	if q.Instrument == "RIASEC" && !validCategory(q.Category) {
		return errors.New("RIASEC questions require a category of R, I, A, S, E or C")
	}
	return nil
}

func validCategory(c string) bool {
	switch c {
	case "R", "I", "A", "S", "E", "C":
		return true
	}
	return false
}
