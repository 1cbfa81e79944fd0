package scoring_test

import (
	"fmt"
	"testing"

	"github.com/pathlight/pathlight-api/internal/scoring"
)

// wellbeingFixture builds n questions whose answers sum to total: the first
// question absorbs the remainder, the rest answer 1.
func wellbeingFixture(n, total int) ([]scoring.Question, scoring.AnswerSet) {
	questions := make([]scoring.Question, 0, n)
	answers := scoring.AnswerSet{}
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("q%d", i)
		questions = append(questions, scoring.Question{ID: id, Position: i})
		if i == 1 {
			answers[id] = total - (n - 1)
		} else {
			answers[id] = 1
		}
	}
	return questions, answers
}

func TestWellbeingBanding14Item(t *testing.T) {
	cases := []struct {
		total int
		band  string
	}{
		{40, scoring.BandVeryLow},
		{41, scoring.BandBelowAverage},
		{44, scoring.BandBelowAverage},
		{45, scoring.BandAverage},
		{59, scoring.BandAverage},
		{60, scoring.BandAboveAverage},
	}
	for _, tc := range cases {
		questions, answers := wellbeingFixture(14, tc.total)
		res, err := scoring.NewEngine().Score("Personality", questions, answers, testCompletedAt)
		if err != nil {
			t.Fatal(err)
		}
		wb := res.Wellbeing
		if wb.Score != tc.total {
			t.Errorf("total %d: score = %d", tc.total, wb.Score)
		}
		if wb.QuestionCount != 14 {
			t.Errorf("total %d: question count = %d", tc.total, wb.QuestionCount)
		}
		if wb.Band != tc.band {
			t.Errorf("total %d: band = %q, want %q", tc.total, wb.Band, tc.band)
		}
		if wb.Feedback == "" {
			t.Errorf("total %d: feedback empty", tc.total)
		}
	}
}

func TestWellbeingBanding7Item(t *testing.T) {
	cases := []struct {
		total int
		band  string
	}{
		{17, scoring.BandVeryLow},
		{18, scoring.BandBelowAverage},
		{20, scoring.BandBelowAverage},
		{21, scoring.BandAverage},
		{27, scoring.BandAverage},
		{28, scoring.BandAboveAverage},
	}
	for _, tc := range cases {
		questions, answers := wellbeingFixture(7, tc.total)
		res, err := scoring.NewEngine().Score("Personality", questions, answers, testCompletedAt)
		if err != nil {
			t.Fatal(err)
		}
		if res.Wellbeing.Band != tc.band {
			t.Errorf("total %d: band = %q, want %q", tc.total, res.Wellbeing.Band, tc.band)
		}
	}
}

func TestWellbeingNonNumericContributesZero(t *testing.T) {
	questions, answers := wellbeingFixture(7, 21)
	answers["q2"] = "skip" // was 1
	res, err := scoring.NewEngine().Score("Personality", questions, answers, testCompletedAt)
	if err != nil {
		t.Fatal(err)
	}
	if res.Wellbeing.Score != 20 {
		t.Fatalf("score = %d, want 20", res.Wellbeing.Score)
	}
}
