package httpapi

import (
	"database/sql"
	"net/http"
	"sync/atomic"
	"time"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/staleness"
	"jobagent-engine/internal/store"
)

type DigestHandler struct {
	DB        *sql.DB
	CfgVal    *atomic.Value // config.Config
	Validator *staleness.Validator
}

type digestJob struct {
	store.Job
	URLReason string `json:"url_reason,omitempty"`
}

// Digest returns the eligible jobs for the requested window, with URL
// staleness checked at read time. Stale postings are reported
// separately rather than silently dropped.
func (h DigestHandler) Digest(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	window := r.URL.Query().Get("window")
	if window == "" {
		window = "24h"
	}

	jobs, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{
		Sort:         "total",
		Window:       window,
		EligibleOnly: true,
		Limit:        500,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "digest_failed", err.Error())
		return
	}

	var results map[string]staleness.Result
	if cfg.Staleness.Enabled && h.Validator != nil {
		urls := make([]string, 0, len(jobs))
		for _, j := range jobs {
			if j.URL != "" {
				urls = append(urls, j.URL)
			}
		}
		results = h.Validator.ValidateAll(r.Context(), urls, cfg.Staleness.Workers)
	}

	fresh := make([]digestJob, 0, len(jobs))
	var stale []digestJob
	for _, j := range jobs {
		dj := digestJob{Job: j}
		if res, ok := results[j.URL]; ok {
			dj.URLReason = res.Reason
			if !res.Valid {
				stale = append(stale, dj)
				continue
			}
		}
		fresh = append(fresh, dj)
	}

	writeJSON(w, map[string]any{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"window":       window,
		"jobs":         fresh,
		"stale":        stale,
	})
}
