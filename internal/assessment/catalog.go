package assessment

import "strings"

// instrumentMeta describes the instruments the platform ships with. Instrument
// keys found in the question bank but absent here still get a catalog entry,
// with the key doubling as the display name.
var instrumentMeta = map[string]Instrument{
	"RIASEC": {
		ID:          "RIASEC",
		Name:        "RIASEC Career Assessment",
		Description: "Interests-based career assessment (Realistic, Investigative, Artistic, Social, Enterprising, Conventional)",
	},
	"Personality": {
		ID:          "Personality",
		Name:        "Personality Inventory",
		Description: "Brief personality inventory to capture work-style preferences",
	},
	"EI": {
		ID:          "EI",
		Name:        "Emotional Intelligence (TEIQue-SF)",
		Description: "Measure your emotional intelligence across Well-being, Self-control, Emotionality, and Sociability",
	},
	"Aptitude": {
		ID:          "Aptitude",
		Name:        "Aptitude Test",
		Description: "Multiple-choice aptitude assessment",
	},
}

// CanonicalKey maps an instrument key to its catalog spelling, compared
// case-insensitively. Keys not in the catalog pass through trimmed, so ad-hoc
// instruments still work but never fork into case variants.
func CanonicalKey(key string) string {
	key = strings.TrimSpace(key)
	for k := range instrumentMeta {
		if strings.EqualFold(k, key) {
			return k
		}
	}
	return key
}

// Catalog merges instrument metadata with live question counts. Only
// instruments with at least one question are listed.
func Catalog(counts map[string]int) []Instrument {
	out := make([]Instrument, 0, len(counts))
	for _, key := range sortedKeys(counts) {
		meta, ok := instrumentMeta[key]
		if !ok {
			meta = Instrument{ID: key, Name: key}
		}
		meta.Key = key
		meta.QuestionCount = counts[key]
		out = append(out, meta)
	}
	return out
}
