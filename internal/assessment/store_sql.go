package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pathlight/pathlight-api/internal/scoring"
)

// SQLStore persists the question bank and result history through database/sql.
// Works against both the sqlite and postgres schemas; numbered placeholders
// are understood by both drivers.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) error {
	opts, err := marshalOptions(q.Options)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (id,instrument,position,text,category,options_json,correct_answer,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.ID, q.Instrument, q.Position, q.Text, q.Category, opts, q.CorrectAnswer, time.Now().Unix())
	return err
}

// UpsertQuestion inserts or, when a question already occupies the same
// position within the instrument, updates it in place. Bulk uploads re-run
// idempotently this way.
func (s *SQLStore) UpsertQuestion(ctx context.Context, q Question) (bool, error) {
	var existingID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM questions WHERE instrument=$1 AND position=$2`,
		q.Instrument, q.Position).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return true, s.PutQuestion(ctx, q)
	case err != nil:
		return false, err
	}
	q.ID = existingID
	return false, s.UpdateQuestion(ctx, q)
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) error {
	opts, err := marshalOptions(q.Options)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE questions
		SET instrument=$1, position=$2, text=$3, category=$4, options_json=$5, correct_answer=$6
		WHERE id=$7`,
		q.Instrument, q.Position, q.Text, q.Category, opts, q.CorrectAnswer, q.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,instrument,position,text,category,options_json,correct_answer,created_at
		FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrQuestionNotFound
	}
	return q, err
}

func (s *SQLStore) ListQuestions(ctx context.Context, instrument string) ([]Question, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if instrument == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id,instrument,position,text,category,options_json,correct_answer,created_at
			FROM questions ORDER BY instrument, position`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id,instrument,position,text,category,options_json,correct_answer,created_at
			FROM questions WHERE instrument=$1 ORDER BY position`, instrument)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) InstrumentCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT instrument, COUNT(*) FROM questions GROUP BY instrument`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func (s *SQLStore) AppendResult(ctx context.Context, r Result) error {
	buf, err := json.Marshal(r.Record)
	if err != nil {
		return fmt.Errorf("encode result record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO results (id,user_id,instrument,record_json,completed_at)
		VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.UserID, r.Instrument, string(buf), r.CompletedAt.Unix())
	return err
}

func (s *SQLStore) ListResults(ctx context.Context, userID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,instrument,record_json,completed_at
		FROM results WHERE user_id=$1 ORDER BY completed_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r         Result
			recJSON   string
			completed int64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Instrument, &recJSON, &completed); err != nil {
			return nil, err
		}
		var rec scoring.Result
		if err := json.Unmarshal([]byte(recJSON), &rec); err != nil {
			return nil, fmt.Errorf("decode result record %s: %w", r.ID, err)
		}
		r.Record = rec
		r.CompletedAt = time.Unix(completed, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) HasResult(ctx context.Context, userID, instrument string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM results WHERE user_id=$1 AND instrument=$2 LIMIT 1`,
		userID, instrument).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLStore) ResetResults(ctx context.Context, userID, instrument string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if instrument == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM results WHERE user_id=$1`, userID)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM results WHERE user_id=$1 AND instrument=$2`, userID, instrument)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (Question, error) {
	var (
		q    Question
		opts sql.NullString
	)
	if err := row.Scan(&q.ID, &q.Instrument, &q.Position, &q.Text, &q.Category, &opts, &q.CorrectAnswer, &q.CreatedAt); err != nil {
		return Question{}, err
	}
	if opts.Valid && opts.String != "" {
		if err := json.Unmarshal([]byte(opts.String), &q.Options); err != nil {
			return Question{}, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
	}
	return q, nil
}

func marshalOptions(options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	buf, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return string(buf), nil
}
