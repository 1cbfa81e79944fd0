package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/scoring"
)

type fakeStore struct {
	questions map[string][]Question // instrument -> ordered questions
	results   []Result
	counts    map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{questions: map[string][]Question{}, counts: map[string]int{}}
}

func (f *fakeStore) PutQuestion(ctx context.Context, q Question) error {
	f.questions[q.Instrument] = append(f.questions[q.Instrument], q)
	return nil
}

func (f *fakeStore) UpsertQuestion(ctx context.Context, q Question) (bool, error) {
	return true, f.PutQuestion(ctx, q)
}

func (f *fakeStore) UpdateQuestion(ctx context.Context, q Question) error { return nil }
func (f *fakeStore) DeleteQuestion(ctx context.Context, id string) error  { return nil }

func (f *fakeStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	for _, qs := range f.questions {
		for _, q := range qs {
			if q.ID == id {
				return q, nil
			}
		}
	}
	return Question{}, ErrQuestionNotFound
}

func (f *fakeStore) ListQuestions(ctx context.Context, instrument string) ([]Question, error) {
	return f.questions[instrument], nil
}

func (f *fakeStore) InstrumentCounts(ctx context.Context) (map[string]int, error) {
	return f.counts, nil
}

func (f *fakeStore) AppendResult(ctx context.Context, r Result) error {
	f.results = append(f.results, r)
	return nil
}

func (f *fakeStore) ListResults(ctx context.Context, userID string) ([]Result, error) {
	var out []Result
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) HasResult(ctx context.Context, userID, instrument string) (bool, error) {
	for _, r := range f.results {
		if r.UserID == userID && r.Instrument == instrument {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ResetResults(ctx context.Context, userID, instrument string) (int64, error) {
	kept := f.results[:0]
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

func seedRIASEC(store *fakeStore) scoring.AnswerSet {
	answers := scoring.AnswerSet{}
	cats := []string{"R", "I", "A", "S", "E", "C"}
	for i, c := range cats {
		q := Question{ID: "q" + c, Instrument: "RIASEC", Position: i + 1, Category: c}
		store.questions["RIASEC"] = append(store.questions["RIASEC"], q)
		answers[q.ID] = i + 1 // 1..6 keeps a strict ordering, C highest
	}
	return answers
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, scoring.NewEngine(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmitTestAppendsResult(t *testing.T) {
	store := newFakeStore()
	answers := seedRIASEC(store)
	svc := newTestService(store)

	res, err := svc.SubmitTest(context.Background(), "u1", "RIASEC", answers)
	if err != nil {
		t.Fatal(err)
	}
	if res.ID == "" {
		t.Fatal("result ID not assigned")
	}
	if res.Record.RIASEC == nil {
		t.Fatal("record payload missing")
	}
	if res.Record.RIASEC.Primary != "C - Conventional" {
		t.Fatalf("primary = %q", res.Record.RIASEC.Primary)
	}
	if len(store.results) != 1 {
		t.Fatalf("stored %d results, want 1", len(store.results))
	}
	if !res.CompletedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("completedAt = %v", res.CompletedAt)
	}
}

func TestSubmitTestRejectsRetake(t *testing.T) {
	store := newFakeStore()
	answers := seedRIASEC(store)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.SubmitTest(ctx, "u1", "RIASEC", answers); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitTest(ctx, "u1", "RIASEC", answers); !errors.Is(err, ErrAlreadyTaken) {
		t.Fatalf("expected ErrAlreadyTaken, got %v", err)
	}

	// A reset makes the instrument takeable again.
	if n, err := svc.Reset(ctx, "u1", "RIASEC"); err != nil || n != 1 {
		t.Fatalf("reset: n=%d err=%v", n, err)
	}
	if _, err := svc.SubmitTest(ctx, "u1", "RIASEC", answers); err != nil {
		t.Fatalf("retake after reset: %v", err)
	}
}

func TestSubmitTestNormalizesInstrumentKey(t *testing.T) {
	store := newFakeStore()
	answers := seedRIASEC(store)
	svc := newTestService(store)
	ctx := context.Background()

	// Lowercase still finds the bank and stores under the catalog spelling.
	res, err := svc.SubmitTest(ctx, "u1", "riasec", answers)
	if err != nil {
		t.Fatal(err)
	}
	if res.Instrument != "RIASEC" {
		t.Fatalf("stored instrument = %q, want RIASEC", res.Instrument)
	}

	// The retake guard catches case variants of the same key.
	if _, err := svc.SubmitTest(ctx, "u1", "RiAsEc", answers); !errors.Is(err, ErrAlreadyTaken) {
		t.Fatalf("expected ErrAlreadyTaken, got %v", err)
	}
	if n, err := svc.Reset(ctx, "u1", "riasec"); err != nil || n != 1 {
		t.Fatalf("reset: n=%d err=%v", n, err)
	}
}

func TestSubmitTestUnknownInstrument(t *testing.T) {
	svc := newTestService(newFakeStore())
	_, err := svc.SubmitTest(context.Background(), "u1", "Nope", scoring.AnswerSet{})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestSubmitTestPropagatesIncompleteAnswers(t *testing.T) {
	store := newFakeStore()
	seedRIASEC(store)
	svc := newTestService(store)

	_, err := svc.SubmitTest(context.Background(), "u1", "RIASEC", scoring.AnswerSet{"qR": 3})
	var incomplete *scoring.IncompleteAnswersError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteAnswersError, got %v", err)
	}
	if len(incomplete.Missing) != 5 {
		t.Fatalf("missing = %v", incomplete.Missing)
	}
	if len(store.results) != 0 {
		t.Fatal("no result should be stored on scoring failure")
	}
}

func TestCatalogMergesMetaAndCounts(t *testing.T) {
	store := newFakeStore()
	store.counts = map[string]int{"RIASEC": 42, "Custom": 3}
	svc := newTestService(store)

	list, err := svc.Instruments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d instruments", len(list))
	}
	// Sorted by key: Custom before RIASEC.
	if list[0].Key != "Custom" || list[0].Name != "Custom" || list[0].QuestionCount != 3 {
		t.Fatalf("custom entry = %+v", list[0])
	}
	if list[1].Key != "RIASEC" || list[1].Name != "RIASEC Career Assessment" || list[1].QuestionCount != 42 {
		t.Fatalf("riasec entry = %+v", list[1])
	}
}
