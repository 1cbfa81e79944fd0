package scoring

import "sort"

// riasecScorer sums 1-5 Likert answers into six category accumulators and
// ranks them. Questions without a category contribute nothing.
type riasecScorer struct{}

func (riasecScorer) score(questions []Question, answers AnswerSet) (Result, error) {
	totals := make(map[Category]int, len(categoryOrder))
	for _, c := range categoryOrder {
		totals[c] = 0
	}
	for _, q := range questions {
		if q.Category == "" {
			continue
		}
		totals[q.Category] += int(numericValue(answers[q.ID]))
	}

	// Stable sort keeps declaration order for equal totals.
	ranked := make([]Category, len(categoryOrder))
	copy(ranked, categoryOrder[:])
	sort.SliceStable(ranked, func(i, j int) bool {
		return totals[ranked[i]] > totals[ranked[j]]
	})

	topThree := make([]string, 0, 3)
	for _, c := range ranked[:3] {
		topThree = append(topThree, categoryLabel(c))
	}
	primary := ranked[0]

	return Result{
		RIASEC: &RIASECResult{
			Totals:                totals,
			TopThree:              topThree,
			Primary:               categoryLabel(primary),
			RecommendedActivities: activityRecommendations[primary],
		},
	}, nil
}

func categoryLabel(c Category) string {
	return string(c) + " - " + categoryNames[c]
}
