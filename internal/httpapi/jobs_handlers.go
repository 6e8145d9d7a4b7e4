package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/events"
	"jobagent-engine/internal/store"
)

type JobsHandler struct {
	DB        *sql.DB
	Hub       *events.Hub
	DeleteJob func(ctx context.Context, db *sql.DB, id int64) error
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minTotal, _ := strconv.Atoi(q.Get("min_total"))

	jobs, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{
		Sort:         q.Get("sort"),
		Window:       q.Get("window"),
		EligibleOnly: q.Get("eligible") == "true",
		MinTotal:     minTotal,
		Limit:        2000,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	writeJSON(w, jobs)
}

// Create ingests one normalized record from the external ingestion
// layer. Scoring happens on the next rescore pass (or an explicit
// POST /rescore).
func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Source      string `json:"source"`
		PostedAt    string `json:"posted_at"` // RFC3339, optional
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Company) == "" {
		WriteError(w, r, http.StatusBadRequest, "empty_record", "title or company required")
		return
	}
	if in.Source == "" {
		in.Source = string(domain.SourceManual)
	}

	rec := domain.JobRecord{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		Link:        in.URL,
		Description: in.Description,
		Source:      domain.Source(in.Source),
	}
	if in.PostedAt != "" {
		posted, err := time.Parse(time.RFC3339, in.PostedAt)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_posted_at", err.Error())
			return
		}
		rec.PostedAt = &posted
	}
	id, added, err := store.InsertJobIfNew(r.Context(), h.DB, rec)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "insert_failed", err.Error())
		return
	}
	if added {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobCreated, 1, map[string]any{"id": id}))
	}
	writeJSON(w, map[string]any{"id": id, "added": added})
}

func (h JobsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	if err := h.DeleteJob(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
