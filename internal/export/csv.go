package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
	"github.com/pathlight/pathlight-api/internal/scoring"
)

const notCompleted = "Not Completed"

// Student pairs an account with its result history for reporting.
type Student struct {
	User    auth.User
	Results []assessment.Result
}

var header = []string{
	"Roll Number",
	"Student Name",
	"RIASEC Category",
	"Aptitude Score",
	"Wellbeing Score",
	"Wellbeing Interpretation",
	"EI Global Score",
	"EI Level",
	"Completed Date",
}

// WriteConsolidatedCSV renders one row per student with every instrument's
// headline figure, degrading to placeholders where a result is absent.
func WriteConsolidatedCSV(w io.Writer, students []Student) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range students {
		if err := cw.Write(studentRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func studentRow(s Student) []string {
	if len(s.Results) == 0 {
		return []string{s.User.Username, s.User.Name, "No tests completed", "", "", "", "", "", ""}
	}

	riasec := notCompleted
	aptitude := notCompleted
	wellbeingScore := notCompleted
	wellbeingBand := notCompleted
	eiScore := notCompleted
	eiLevel := notCompleted
	latest := s.Results[0].CompletedAt

	for _, r := range s.Results {
		if r.CompletedAt.After(latest) {
			latest = r.CompletedAt
		}
		rec := r.Record
		switch rec.Kind {
		case scoring.KindRIASEC:
			if rec.RIASEC != nil && len(rec.RIASEC.TopThree) > 0 {
				riasec = categoryCode(rec.RIASEC.TopThree[0])
			}
		case scoring.KindAptitude:
			if rec.Aptitude != nil {
				aptitude = fmt.Sprintf("%d/%d", rec.Aptitude.Correct, rec.Aptitude.Total)
			}
		case scoring.KindWellbeing:
			if rec.Wellbeing != nil {
				wellbeingScore = fmt.Sprintf("%d", rec.Wellbeing.Score)
				wellbeingBand = rec.Wellbeing.Band
			}
		case scoring.KindEI:
			if rec.EI != nil {
				eiScore = fmt.Sprintf("%.2f", rec.EI.GlobalScore)
				eiLevel = rec.EI.GlobalLevel
			}
		}
	}

	return []string{
		s.User.Username,
		s.User.Name,
		riasec,
		aptitude,
		wellbeingScore,
		wellbeingBand,
		eiScore,
		eiLevel,
		latest.Format("2006-01-02 15:04"),
	}
}

// categoryCode reduces a "R - Realistic" label to its letter code.
func categoryCode(label string) string {
	if code, _, ok := strings.Cut(label, " - "); ok {
		return strings.TrimSpace(code)
	}
	return label
}
