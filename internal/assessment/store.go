package assessment

import (
	"context"
	"errors"
	"sort"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoQuestions      = errors.New("no questions for instrument")
	ErrAlreadyTaken     = errors.New("instrument already taken")
)

// Store is the persistence boundary for the question bank and the per-user
// result history.
type Store interface {
	PutQuestion(ctx context.Context, q Question) error
	UpsertQuestion(ctx context.Context, q Question) (created bool, err error)
	UpdateQuestion(ctx context.Context, q Question) error
	DeleteQuestion(ctx context.Context, id string) error
	GetQuestion(ctx context.Context, id string) (Question, error)
	// ListQuestions returns the instrument's questions ordered by position.
	// An empty instrument lists the whole bank.
	ListQuestions(ctx context.Context, instrument string) ([]Question, error)
	InstrumentCounts(ctx context.Context) (map[string]int, error)

	AppendResult(ctx context.Context, r Result) error
	ListResults(ctx context.Context, userID string) ([]Result, error)
	HasResult(ctx context.Context, userID, instrument string) (bool, error)
	// ResetResults removes one instrument's results for a user, or all of
	// them when instrument is empty. Returns the number of rows removed.
	ResetResults(ctx context.Context, userID, instrument string) (int64, error)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
