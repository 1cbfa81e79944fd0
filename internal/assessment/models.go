package assessment

import (
	"time"

	"github.com/pathlight/pathlight-api/internal/scoring"
)

// Question is one item of an instrument's question bank. Position is 1-based
// and unique within the instrument; the EI algorithm depends on it for its
// fixed item-to-factor mapping.
type Question struct {
	ID            string   `json:"id"`
	Instrument    string   `json:"instrument"`
	Position      int      `json:"position"`
	Text          string   `json:"text"`
	Category      string   `json:"category,omitempty"`       // R/I/A/S/E/C for category-based instruments
	Options       []string `json:"options,omitempty"`        // MCQ instruments only
	CorrectAnswer string   `json:"correct_answer,omitempty"` // MCQ instruments only
	CreatedAt     int64    `json:"created_at,omitempty"`
}

// Result is one appended entry of a user's result history. Record is the
// engine's output, stored verbatim; rows are never mutated after insert.
type Result struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Instrument  string         `json:"instrument"`
	Record      scoring.Result `json:"record"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Instrument is the catalog entry the test-picker renders.
type Instrument struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Key           string `json:"key"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}
