package scoring

import "strings"

// aptitudeScorer grades MCQ answers against each question's designated
// correct option. A submitted option matches after whitespace trimming, so
// spreadsheet-sourced keys with stray padding still compare equal.
type aptitudeScorer struct{}

func (aptitudeScorer) score(questions []Question, answers AnswerSet) (Result, error) {
	correct := 0
	for _, q := range questions {
		if q.CorrectAnswer == "" {
			continue
		}
		sel, ok := answers[q.ID].(string)
		if !ok {
			continue
		}
		if strings.TrimSpace(sel) == strings.TrimSpace(q.CorrectAnswer) {
			correct++
		}
	}
	return Result{
		Aptitude: &AptitudeResult{
			Correct: correct,
			Total:   len(questions),
		},
	}, nil
}

// genericScorer counts truthy answers per category. Questions without a
// category never surface a bucket, even when answered truthy.
type genericScorer struct{}

func (genericScorer) score(questions []Question, answers AnswerSet) (Result, error) {
	counts := map[Category]int{}
	for _, q := range questions {
		if q.Category == "" {
			continue
		}
		if truthy(answers[q.ID]) {
			counts[q.Category]++
		}
	}
	return Result{
		Generic: &GenericResult{CategoryCounts: counts},
	}, nil
}
