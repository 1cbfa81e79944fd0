package scoring

import "math"

// TEIQue-SF layout: 30 items on a 7-point scale, 15 of them reverse-keyed.
var eiReverseItems = map[int]bool{
	2: true, 4: true, 5: true, 7: true, 8: true,
	10: true, 12: true, 13: true, 14: true, 16: true,
	18: true, 22: true, 25: true, 26: true, 28: true,
}

// eiFactorItems fixes the item-to-factor mapping by ordinal position. Four of
// the thirty items load on no factor; they still count toward the global score.
var eiFactorItems = []struct {
	name  string
	items []int
}{
	{FactorWellBeing, []int{5, 9, 12, 20, 24, 27}},
	{FactorSelfControl, []int{4, 7, 15, 19, 22, 30}},
	{FactorEmotionality, []int{1, 2, 8, 13, 16, 17, 23, 28}},
	{FactorSociability, []int{6, 10, 11, 21, 25, 26}},
}

const (
	FactorWellBeing    = "Well-being"
	FactorSelfControl  = "Self-control"
	FactorEmotionality = "Emotionality"
	FactorSociability  = "Sociability"
)

const (
	LevelLow     = "Low"
	LevelAverage = "Average"
	LevelHigh    = "High"
)

type eiScorer struct{}

func (eiScorer) score(questions []Question, answers AnswerSet) (Result, error) {
	// Reverse-keyed items invert on the 7-point scale: processed = 8 - raw.
	processed := make(map[int]float64, len(questions))
	for _, q := range questions {
		v := numericValue(answers[q.ID])
		if eiReverseItems[q.Position] {
			v = 8 - v
		}
		processed[q.Position] = v
	}

	factors := make([]FactorScore, 0, len(eiFactorItems))
	for _, f := range eiFactorItems {
		sum := 0.0
		for _, pos := range f.items {
			sum += processed[pos]
		}
		// Band the raw mean; rounding is display-only.
		mean := sum / float64(len(f.items))
		level := eiLevel(mean)
		factors = append(factors, FactorScore{
			Name:     f.name,
			Score:    round2(mean),
			Level:    level,
			Feedback: eiFactorFeedback[f.name][level],
		})
	}

	// Global mean spans every answered position, not just the factor subsets.
	// Zero processed values are excluded from the denominator.
	sum, n := 0.0, 0
	for _, v := range processed {
		if v != 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return Result{}, ErrNoScorableAnswers
	}
	mean := sum / float64(n)
	level := eiLevel(mean)

	return Result{
		EI: &EIResult{
			Factors:        factors,
			GlobalScore:    round2(mean),
			GlobalLevel:    level,
			GlobalFeedback: eiGlobalFeedback[level],
		},
	}, nil
}

func eiLevel(score float64) string {
	switch {
	case score <= 3.0:
		return LevelLow
	case score <= 4.9:
		return LevelAverage
	default:
		return LevelHigh
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
