package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
	"github.com/pathlight/pathlight-api/internal/rbac"
	"github.com/pathlight/pathlight-api/internal/scoring"
	"github.com/pathlight/pathlight-api/internal/storage"
)

type fakeStore struct {
	questions []assessment.Question
	results   []assessment.Result
}

func (f *fakeStore) PutQuestion(_ context.Context, q assessment.Question) error {
	f.questions = append(f.questions, q)
	return nil
}

func (f *fakeStore) UpsertQuestion(_ context.Context, q assessment.Question) (bool, error) {
	for i, existing := range f.questions {
		if existing.Instrument == q.Instrument && existing.Position == q.Position {
			q.ID = existing.ID
			f.questions[i] = q
			return false, nil
		}
	}
	f.questions = append(f.questions, q)
	return true, nil
}

func (f *fakeStore) UpdateQuestion(_ context.Context, q assessment.Question) error {
	for i, existing := range f.questions {
		if existing.ID == q.ID {
			f.questions[i] = q
			return nil
		}
	}
	return assessment.ErrQuestionNotFound
}

func (f *fakeStore) DeleteQuestion(_ context.Context, id string) error {
	for i, q := range f.questions {
		if q.ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return assessment.ErrQuestionNotFound
}

func (f *fakeStore) GetQuestion(_ context.Context, id string) (assessment.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return assessment.Question{}, assessment.ErrQuestionNotFound
}

func (f *fakeStore) ListQuestions(_ context.Context, instrument string) ([]assessment.Question, error) {
	var out []assessment.Question
	for _, q := range f.questions {
		if instrument == "" || q.Instrument == instrument {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) InstrumentCounts(context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, q := range f.questions {
		counts[q.Instrument]++
	}
	return counts, nil
}

func (f *fakeStore) AppendResult(_ context.Context, r assessment.Result) error {
	f.results = append(f.results, r)
	return nil
}

func (f *fakeStore) ListResults(_ context.Context, userID string) ([]assessment.Result, error) {
	var out []assessment.Result
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) HasResult(_ context.Context, userID, instrument string) (bool, error) {
	for _, r := range f.results {
		if r.UserID == userID && r.Instrument == instrument {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ResetResults(_ context.Context, userID, instrument string) (int64, error) {
	var kept []assessment.Result
	var removed int64
	for _, r := range f.results {
		if r.UserID == userID && (instrument == "" || r.Instrument == instrument) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.results = kept
	return removed, nil
}

func newWellbeingStore(t *testing.T) *fakeStore {
	t.Helper()
	store := &fakeStore{}
	for i := 1; i <= 7; i++ {
		store.questions = append(store.questions, assessment.Question{
			ID:         "wb-" + string(rune('0'+i)),
			Instrument: "Personality",
			Position:   i,
			Text:       "item",
		})
	}
	return store
}

func TestSubmitHandlerRequiresAuth(t *testing.T) {
	svc := assessment.NewService(&fakeStore{}, scoring.NewEngine(), zap.NewNop())
	h := SubmitHandler(svc, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSubmitHandlerIncompleteAnswers(t *testing.T) {
	store := newWellbeingStore(t)
	svc := assessment.NewService(store, scoring.NewEngine(), zap.NewNop())
	h := SubmitHandler(svc, nil, zap.NewNop())

	body := `{"instrument":"Personality","answers":{"wb-1":3}}`
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	req = req.WithContext(auth.WithSubject(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Missing) != 6 {
		t.Fatalf("missing = %v, want 6 entries", resp.Missing)
	}
	if len(store.results) != 0 {
		t.Fatalf("results stored on rejection: %d", len(store.results))
	}
}

func TestSubmitHandlerUnknownInstrument(t *testing.T) {
	svc := assessment.NewService(&fakeStore{}, scoring.NewEngine(), zap.NewNop())
	h := SubmitHandler(svc, nil, zap.NewNop())

	body := `{"instrument":"Nope","answers":{"q":1}}`
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	req = req.WithContext(auth.WithSubject(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListQuestionsStripsCorrectAnswer(t *testing.T) {
	store := &fakeStore{questions: []assessment.Question{{
		ID:            "a1",
		Instrument:    "Aptitude",
		Position:      1,
		Text:          "2+2?",
		Options:       []string{"3", "4"},
		CorrectAnswer: "4",
	}}}
	h := ListQuestionsHandler(store)

	check := func(role string, wantKey bool) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/questions?instrument=Aptitude", nil)
		if role != "" {
			req = req.WithContext(rbac.WithRole(req.Context(), role))
		}
		rec := httptest.NewRecorder()
		h(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got []assessment.Question
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d questions", len(got))
		}
		if (got[0].CorrectAnswer != "") != wantKey {
			t.Fatalf("role %q: correct_answer = %q, wantKey = %v", role, got[0].CorrectAnswer, wantKey)
		}
	}
	check("student", false)
	check("admin", true)
}

func TestGetQuestionStripsCorrectAnswer(t *testing.T) {
	store := &fakeStore{questions: []assessment.Question{{
		ID:            "a1",
		Instrument:    "Aptitude",
		Position:      1,
		Text:          "2+2?",
		Options:       []string{"3", "4"},
		CorrectAnswer: "4",
	}}}
	r := chi.NewRouter()
	r.Get("/questions/{questionID}", GetQuestionHandler(store))

	req := httptest.NewRequest(http.MethodGet, "/questions/a1", nil)
	req = req.WithContext(rbac.WithRole(req.Context(), "student"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got assessment.Question
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.CorrectAnswer != "" {
		t.Fatalf("correct_answer leaked: %q", got.CorrectAnswer)
	}

	req = httptest.NewRequest(http.MethodGet, "/questions/missing", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDownloadUploadRoundTrip(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	const sheet = "username,name\nS001,Asha Rao\n"
	if _, err := bs.Put("uploads/2025-08-01/sheet.csv", strings.NewReader(sheet)); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	r.Get("/admin/uploads/*", DownloadUploadHandler(bs))

	req := httptest.NewRequest(http.MethodGet, "/admin/uploads/2025-08-01/sheet.csv", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != sheet {
		t.Fatalf("body = %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/uploads/2025-08-01/other.csv", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDecodeQuestionRowsCSV(t *testing.T) {
	csv := "instrument,position,text,category,options,correct_answer\n" +
		"RIASEC,1,Fix a car,R,,\n" +
		"Aptitude,1,2+2?,,3|4|5,4\n"
	rows, err := decodeQuestionRows([]byte(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Category != "R" || rows[0].Position != 1 {
		t.Fatalf("riasec row = %+v", rows[0])
	}
	if len(rows[1].Options) != 3 || rows[1].CorrectAnswer != "4" {
		t.Fatalf("aptitude row = %+v", rows[1])
	}
}

func TestDecodeQuestionRowsOptionColumns(t *testing.T) {
	raw := "instrument,position,text,option1,option2,correct_answer\n" +
		"Aptitude,2,Capital of France?,Paris,Lyon,Paris\n"
	rows, err := decodeQuestionRows([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[0].Options) != 2 || rows[0].Options[0] != "Paris" {
		t.Fatalf("options = %v", rows[0].Options)
	}
}

func TestDecodeStudentRowsMissingColumn(t *testing.T) {
	_, err := decodeStudentRows([]byte("username,year\nS001,2025\n"))
	if err == nil || !strings.Contains(err.Error(), "missing column: name") {
		t.Fatalf("err = %v", err)
	}
}
