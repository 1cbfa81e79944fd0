package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/scoring"
)

// Service wires the question bank, the scoring engine and the result history
// into the submit-a-test flow.
type Service struct {
	store  Store
	engine *scoring.Engine
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, engine *scoring.Engine, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		engine: engine,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SubmitTest scores a complete answer set against one instrument and appends
// the result to the user's history. One result per instrument under normal
// flow; an admin reset allows a retake.
func (s *Service) SubmitTest(ctx context.Context, userID, instrument string, answers scoring.AnswerSet) (Result, error) {
	// Guard and store under one spelling: "riasec" and "RIASEC" are the
	// same instrument.
	instrument = CanonicalKey(instrument)
	questions, err := s.store.ListQuestions(ctx, instrument)
	if err != nil {
		return Result{}, fmt.Errorf("list questions for %s: %w", instrument, err)
	}
	if len(questions) == 0 {
		return Result{}, ErrNoQuestions
	}

	taken, err := s.store.HasResult(ctx, userID, instrument)
	if err != nil {
		return Result{}, fmt.Errorf("check history for %s: %w", instrument, err)
	}
	if taken {
		return Result{}, ErrAlreadyTaken
	}

	record, err := s.engine.Score(instrument, toScoringQuestions(questions), answers, s.now())
	if err != nil {
		return Result{}, err
	}

	result := Result{
		ID:          uuid.NewString(),
		UserID:      userID,
		Instrument:  instrument,
		Record:      record,
		CompletedAt: record.CompletedAt,
	}
	if err := s.store.AppendResult(ctx, result); err != nil {
		return Result{}, fmt.Errorf("append result: %w", err)
	}

	s.logger.Info("test submitted",
		zap.String("user_id", userID),
		zap.String("instrument", instrument),
		zap.String("result_id", result.ID))
	return result, nil
}

// History returns the user's result records in completion order.
func (s *Service) History(ctx context.Context, userID string) ([]Result, error) {
	return s.store.ListResults(ctx, userID)
}

// Reset removes a user's results for one instrument (all of them when
// instrument is empty) so the test can be retaken.
func (s *Service) Reset(ctx context.Context, userID, instrument string) (int64, error) {
	instrument = CanonicalKey(instrument)
	n, err := s.store.ResetResults(ctx, userID, instrument)
	if err != nil {
		return 0, fmt.Errorf("reset results: %w", err)
	}
	s.logger.Info("results reset",
		zap.String("user_id", userID),
		zap.String("instrument", instrument),
		zap.Int64("removed", n))
	return n, nil
}

// Instruments lists the catalog with live question counts.
func (s *Service) Instruments(ctx context.Context) ([]Instrument, error) {
	counts, err := s.store.InstrumentCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("instrument counts: %w", err)
	}
	return Catalog(counts), nil
}

func toScoringQuestions(questions []Question) []scoring.Question {
	out := make([]scoring.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, scoring.Question{
			ID:            q.ID,
			Position:      q.Position,
			Category:      scoring.Category(q.Category),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out
}
