package scoring

// Band labels shared by both wellbeing threshold tables.
const (
	BandVeryLow      = "Very low"
	BandBelowAverage = "Below average"
	BandAverage      = "Average"
	BandAboveAverage = "Above Average"
)

// wellbeingScorer sums 1-5 Likert answers and bands the total. Which
// threshold table applies depends on whether the instrument carries the
// 14-item or the 7-item form.
type wellbeingScorer struct{}

func (wellbeingScorer) score(questions []Question, answers AnswerSet) (Result, error) {
	total := 0
	for _, q := range questions {
		total += int(numericValue(answers[q.ID]))
	}

	count := len(questions)
	band := wellbeingBand(total, count)

	return Result{
		Wellbeing: &WellbeingResult{
			Score:         total,
			QuestionCount: count,
			Band:          band,
			Feedback:      wellbeingFeedback[band],
		},
	}, nil
}

func wellbeingBand(total, questionCount int) string {
	if questionCount >= 14 {
		switch {
		case total <= 40:
			return BandVeryLow
		case total <= 44:
			return BandBelowAverage
		case total <= 59:
			return BandAverage
		default:
			return BandAboveAverage
		}
	}
	switch {
	case total <= 17:
		return BandVeryLow
	case total <= 20:
		return BandBelowAverage
	case total <= 27:
		return BandAverage
	default:
		return BandAboveAverage
	}
}
