package http

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
	"github.com/pathlight/pathlight-api/internal/export"
)

// GET /admin/export/results streams the consolidated results sheet, one row
// per student, as a CSV attachment.
func DownloadResultsHandler(users *auth.UserStore, svc *assessment.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := users.ListStudents(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		students := make([]export.Student, 0, len(accounts))
		for _, u := range accounts {
			results, err := svc.History(r.Context(), u.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			students = append(students, export.Student{User: u, Results: results})
		}

		filename := fmt.Sprintf("pathlight-results-%s.csv", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := export.WriteConsolidatedCSV(w, students); err != nil {
			logger.Error("write results csv", zap.Error(err))
		}
	}
}
