package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pathlight/pathlight-api/internal/assessment"
	"github.com/pathlight/pathlight-api/internal/auth"
	"github.com/pathlight/pathlight-api/internal/storage"
)

// defaultStudentPassword is assigned when an uploaded row has no password
// column; students are told to change it on first login.
const defaultStudentPassword = "student"

type studentRow struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Year     string `json:"year"`
	Password string `json:"password,omitempty"`
}

// POST /admin/students/bulk accepts a multipart CSV/JSON sheet or a raw JSON
// array and upserts student accounts. The raw upload is archived to the blob
// store for later audit.
func BulkUpsertStudentsHandler(users *auth.UserStore, blobs storage.BlobStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, name, err := readUpload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rows, err := decodeStudentRows(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		key := fmt.Sprintf("uploads/%s/%s", time.Now().UTC().Format("2006-01-02"), archiveName(name))
		if _, err := blobs.Put(key, bytes.NewReader(raw)); err != nil {
			logger.Warn("archive upload", zap.Error(err), zap.String("key", key))
		}

		created, updated := 0, 0
		var rowErrs []string
		for i, row := range rows {
			if row.Username == "" || row.Name == "" {
				rowErrs = append(rowErrs, fmt.Sprintf("row %d: username and name are required", i+1))
				continue
			}
			password := row.Password
			if password == "" {
				password = defaultStudentPassword
			}
			isNew, err := users.Upsert(r.Context(), auth.User{
				Username: row.Username,
				Name:     row.Name,
				Year:     row.Year,
				Role:     auth.RoleStudent,
			}, password)
			if err != nil {
				rowErrs = append(rowErrs, fmt.Sprintf("row %d (%s): %v", i+1, row.Username, err))
				continue
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}

		logger.Info("bulk student upload",
			zap.Int("created", created),
			zap.Int("updated", updated),
			zap.Int("errors", len(rowErrs)))
		writeJSON(w, http.StatusOK, map[string]any{
			"created": created,
			"updated": updated,
			"errors":  rowErrs,
		})
	}
}

// POST /admin/questions/bulk upserts question-bank rows keyed by
// (instrument, position), so re-running a sheet updates in place.
func BulkUpsertQuestionsHandler(store assessment.Store, blobs storage.BlobStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, name, err := readUpload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		questions, err := decodeQuestionRows(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		key := fmt.Sprintf("uploads/%s/%s", time.Now().UTC().Format("2006-01-02"), archiveName(name))
		if _, err := blobs.Put(key, bytes.NewReader(raw)); err != nil {
			logger.Warn("archive upload", zap.Error(err), zap.String("key", key))
		}

		created, updated := 0, 0
		var rowErrs []string
		for i, q := range questions {
			if err := validateQuestion(&q); err != nil {
				rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", i+1, err))
				continue
			}
			q.ID = uuid.NewString()
			isNew, err := store.UpsertQuestion(r.Context(), q)
			if err != nil {
				rowErrs = append(rowErrs, fmt.Sprintf("row %d (%s #%d): %v", i+1, q.Instrument, q.Position, err))
				continue
			}
			if isNew {
				created++
			} else {
				updated++
			}
		}

		logger.Info("bulk question upload",
			zap.Int("created", created),
			zap.Int("updated", updated),
			zap.Int("errors", len(rowErrs)))
		writeJSON(w, http.StatusOK, map[string]any{
			"created": created,
			"updated": updated,
			"errors":  rowErrs,
		})
	}
}

// GET /admin/uploads/* streams an archived bulk-upload sheet back for audit.
func DownloadUploadHandler(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		if key == "" || strings.Contains(key, "..") {
			writeError(w, http.StatusBadRequest, "bad upload key")
			return
		}
		rc, err := blobs.Get("uploads/" + key)
		if err != nil {
			writeError(w, http.StatusNotFound, "upload not found")
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
		_, _ = io.Copy(w, rc)
	}
}

// readUpload returns the upload body: either the multipart "file" part or the
// raw request body, plus the client-side filename when one was sent.
func readUpload(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return nil, "", errors.New("file field required")
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, "", err
		}
		return raw, hdr.Filename, nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	if len(raw) == 0 {
		return nil, "", errors.New("empty body")
	}
	return raw, "upload", nil
}

func archiveName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" {
		name = "upload"
	}
	return uuid.NewString()[:8] + "-" + name
}

func sniffJSON(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{')
}

func decodeStudentRows(raw []byte) ([]studentRow, error) {
	if sniffJSON(raw) {
		var rows []studentRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, errors.New("bad json: " + err.Error())
		}
		return rows, nil
	}

	records, idx, err := parseSheet(raw, []string{"username", "name"})
	if err != nil {
		return nil, err
	}
	rows := make([]studentRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, studentRow{
			Username: cell(rec, idx, "username"),
			Name:     cell(rec, idx, "name"),
			Year:     cell(rec, idx, "year"),
			Password: cell(rec, idx, "password"),
		})
	}
	return rows, nil
}

func decodeQuestionRows(raw []byte) ([]assessment.Question, error) {
	if sniffJSON(raw) {
		var rows []assessment.Question
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, errors.New("bad json: " + err.Error())
		}
		return rows, nil
	}

	records, idx, err := parseSheet(raw, []string{"instrument", "position", "text"})
	if err != nil {
		return nil, err
	}
	rows := make([]assessment.Question, 0, len(records))
	for i, rec := range records {
		pos, err := strconv.Atoi(strings.TrimSpace(cell(rec, idx, "position")))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad position %q", i+1, cell(rec, idx, "position"))
		}
		q := assessment.Question{
			Instrument:    cell(rec, idx, "instrument"),
			Position:      pos,
			Text:          cell(rec, idx, "text"),
			Category:      cell(rec, idx, "category"),
			CorrectAnswer: cell(rec, idx, "correct_answer"),
		}
		if opts := cell(rec, idx, "options"); opts != "" {
			for _, o := range strings.Split(opts, "|") {
				if o = strings.TrimSpace(o); o != "" {
					q.Options = append(q.Options, o)
				}
			}
		} else {
			// option1..optionN columns, stopping at the first absent one.
			for n := 1; ; n++ {
				col := "option" + strconv.Itoa(n)
				if _, ok := idx[col]; !ok {
					break
				}
				if o := cell(rec, idx, col); o != "" {
					q.Options = append(q.Options, o)
				}
			}
		}
		rows = append(rows, q)
	}
	return rows, nil
}

// parseSheet reads a headered CSV, lowercasing header names, and checks the
// required columns are present.
func parseSheet(raw []byte, required []string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, nil, errors.New("bad csv: " + err.Error())
	}
	idx := map[string]int{}
	for i, h := range hdr {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, nil, errors.New("missing column: " + k)
		}
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errors.New("bad csv: " + err.Error())
	}
	return records, idx, nil
}

func cell(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
