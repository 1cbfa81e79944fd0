package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Category is one of the six RIASEC interest categories. Generic instruments
// reuse the same label alphabet.
type Category string

const (
	Realistic     Category = "R"
	Investigative Category = "I"
	Artistic      Category = "A"
	Social        Category = "S"
	Enterprising  Category = "E"
	Conventional  Category = "C"
)

// categoryOrder is the fixed declaration order. Ranking ties break in this
// order, so it must not be rearranged.
var categoryOrder = [6]Category{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

var categoryNames = map[Category]string{
	Realistic:     "Realistic",
	Investigative: "Investigative",
	Artistic:      "Artistic",
	Social:        "Social",
	Enterprising:  "Enterprising",
	Conventional:  "Conventional",
}

// Question is the minimal view of a question the engine needs.
type Question struct {
	ID            string
	Position      int // 1-based ordinal within the instrument
	Category      Category
	Options       []string
	CorrectAnswer string
}

// AnswerSet maps question ID to the raw submitted value: a number for Likert
// items, an option string for MCQ items, a bool for generic items.
type AnswerSet map[string]any

// Result is the immutable output of one scoring invocation. Exactly one of the
// instrument-specific payloads is populated, selected by Kind.
type Result struct {
	Instrument  string    `json:"instrument"`
	Kind        Kind      `json:"kind"`
	CompletedAt time.Time `json:"completed_at"`

	RIASEC    *RIASECResult    `json:"riasec,omitempty"`
	Wellbeing *WellbeingResult `json:"wellbeing,omitempty"`
	EI        *EIResult        `json:"ei,omitempty"`
	Aptitude  *AptitudeResult  `json:"aptitude,omitempty"`
	Generic   *GenericResult   `json:"generic,omitempty"`
}

type RIASECResult struct {
	Totals                map[Category]int `json:"totals"`
	TopThree              []string         `json:"top_three"`
	Primary               string           `json:"primary"`
	RecommendedActivities []string         `json:"recommended_activities"`
}

type WellbeingResult struct {
	Score         int    `json:"score"`
	QuestionCount int    `json:"question_count"`
	Band          string `json:"band"`
	Feedback      string `json:"feedback"`
}

type FactorScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Level    string  `json:"level"`
	Feedback string  `json:"feedback"`
}

type EIResult struct {
	Factors        []FactorScore `json:"factors"`
	GlobalScore    float64       `json:"global_score"`
	GlobalLevel    string        `json:"global_level"`
	GlobalFeedback string        `json:"global_feedback"`
}

type AptitudeResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type GenericResult struct {
	CategoryCounts map[Category]int `json:"category_counts"`
}

// ErrNoQuestions is returned when the engine is invoked without a question
// list; completeness cannot be judged against nothing.
var ErrNoQuestions = errors.New("scoring: no questions supplied")

// ErrNoScorableAnswers is returned by the EI algorithm when every processed
// value is zero, which would make the global average's denominator zero.
var ErrNoScorableAnswers = errors.New("scoring: no scorable answers")

// IncompleteAnswersError reports question IDs missing from the answer set.
type IncompleteAnswersError struct {
	Missing []string
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("scoring: answer set incomplete, %d question(s) unanswered", len(e.Missing))
}

// scorer computes the instrument-specific payload of a Result.
type scorer interface {
	score(questions []Question, answers AnswerSet) (Result, error)
}

// Engine dispatches an instrument key to the matching scoring algorithm. It is
// stateless; one Engine is safe for concurrent use.
type Engine struct {
	scorers map[Kind]scorer
}

func NewEngine() *Engine {
	return &Engine{
		scorers: map[Kind]scorer{
			KindRIASEC:    riasecScorer{},
			KindWellbeing: wellbeingScorer{},
			KindEI:        eiScorer{},
			KindAptitude:  aptitudeScorer{},
			KindGeneric:   genericScorer{},
		},
	}
}

// Score converts a complete answer set into a Result for one instrument.
// completedAt is caller-supplied so repeated invocations with frozen inputs
// are fully deterministic.
func (e *Engine) Score(instrument string, questions []Question, answers AnswerSet, completedAt time.Time) (Result, error) {
	if len(questions) == 0 {
		return Result{}, ErrNoQuestions
	}
	var missing []string
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Result{}, &IncompleteAnswersError{Missing: missing}
	}

	kind := ParseKind(instrument)
	res, err := e.scorers[kind].score(questions, answers)
	if err != nil {
		return Result{}, err
	}
	res.Instrument = instrument
	res.Kind = kind
	res.CompletedAt = completedAt
	return res, nil
}

// numericValue coerces a raw answer to a number. Anything unparseable counts
// as zero; coercion failures never propagate.
func numericValue(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// truthy reports whether a raw answer counts as a "hit" for the generic
// algorithm: boolean true or any value with a positive numeric coercion.
func truthy(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return numericValue(v) > 0
}
