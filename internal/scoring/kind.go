package scoring

import "strings"

// Kind is the closed set of scoring algorithms the engine knows about.
type Kind string

const (
	KindRIASEC    Kind = "riasec"
	KindWellbeing Kind = "wellbeing"
	KindEI        Kind = "ei"
	KindAptitude  Kind = "aptitude"
	KindGeneric   Kind = "generic"
)

// ParseKind maps an instrument key to a scoring Kind, case-insensitively.
// "Personality" is the question bank's historical key for the wellbeing
// inventory. Anything unrecognized scores with the generic algorithm.
func ParseKind(instrument string) Kind {
	switch strings.ToUpper(strings.TrimSpace(instrument)) {
	case "RIASEC":
		return KindRIASEC
	case "PERSONALITY", "WELLBEING":
		return KindWellbeing
	case "EI":
		return KindEI
	case "APTITUDE":
		return KindAptitude
	default:
		return KindGeneric
	}
}
