package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/pipeline"
)

// sqliteTimeLayout matches sqlite's datetime() output. The date column
// is TEXT and the window/cleanup queries compare it lexicographically
// against datetime('now', ...), so every write must use this layout.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Job is one stored row: the record plus its latest evaluation.
type Job struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Date        string `json:"date"`

	Seniority         int    `json:"seniority"`
	Domain            int    `json:"domain"`
	RoleType          int    `json:"role_type"`
	LocationScore     int    `json:"location_score"`
	CompanyStage      int    `json:"company_stage"`
	Technical         int    `json:"technical"`
	CompanyAdjustment int    `json:"company_adjustment"`
	Total             int    `json:"total"`
	Grade             string `json:"grade"`
	RoleCategory      string `json:"role_category,omitempty"`
	FilterReason      string `json:"filter_reason,omitempty"`
	Eligible          bool   `json:"eligible"`

	CompanyType          string  `json:"company_type"`
	CompanyConfidence    float64 `json:"company_confidence"`
	ClassificationSource string  `json:"classification_source"`
}

// Record converts a stored row back into the pipeline's input shape.
func (j Job) Record() domain.JobRecord {
	return domain.JobRecord{
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Link:        j.URL,
		Description: j.Description,
		Source:      domain.Source(j.Source),
	}
}

// InsertJobIfNew inserts a record, deduped on source_id. Returns the
// row id and whether a new row was created.
func InsertJobIfNew(ctx context.Context, db *sql.DB, rec domain.JobRecord) (id int64, added bool, err error) {
	sourceID := SourceID(rec.Link, rec.Company, rec.Title)

	postedAt := time.Now().UTC()
	if rec.PostedAt != nil {
		postedAt = rec.PostedAt.UTC()
	}

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (company, title, location, url, description, source, source_id, date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.Company, rec.Title, rec.Location, CanonicalizeURL(rec.Link),
		rec.Description, string(rec.Source), sourceID,
		postedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert job: %w", err)
	}

	var changes int
	if err := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
		return 0, false, err
	}
	if err := db.QueryRowContext(ctx,
		`SELECT id FROM jobs WHERE source_id = ? LIMIT 1;`, sourceID,
	).Scan(&id); err != nil {
		return 0, false, err
	}
	return id, changes > 0, nil
}

// SaveEvaluation writes one pipeline outcome onto its job row.
func SaveEvaluation(ctx context.Context, db *sql.DB, id int64, o pipeline.Outcome) error {
	b := o.Breakdown
	_, err := db.ExecContext(ctx, `
UPDATE jobs SET
  score_seniority = ?, score_domain = ?, score_role_type = ?,
  score_location = ?, score_stage = ?, score_technical = ?,
  company_adjustment = ?, total = ?, grade = ?, role_category = ?,
  filter_reason = ?, eligible = ?,
  company_type = ?, company_confidence = ?, classification_source = ?
WHERE id = ?;`,
		b.Seniority, b.Domain, b.RoleType,
		b.Location, b.CompanyStage, b.Technical,
		b.CompanyAdjustment, b.Total, b.Grade, b.RoleCategory,
		b.FilterReason, boolToInt(o.Eligible),
		string(b.Classification.Type), b.Classification.Confidence,
		string(b.Classification.Source),
		id,
	)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

type ListJobsOpts struct {
	Sort         string // total | date | company | title
	Window       string // 24h | 7d | all
	EligibleOnly bool
	MinTotal     int
	Limit        int
}

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]Job, error) {
	if opts.Sort == "" {
		opts.Sort = "total"
	}
	if opts.Window == "" {
		opts.Window = "7d"
	}
	if opts.Limit <= 0 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol, order := "total", "DESC"
	switch opts.Sort {
	case "date":
		sortCol = "date"
	case "company":
		sortCol, order = "company", "ASC"
	case "title":
		sortCol, order = "title", "ASC"
	}

	where := "WHERE 1=1"
	switch opts.Window {
	case "24h":
		where += " AND date >= datetime('now','-24 hours')"
	case "all":
	default:
		where += " AND date >= datetime('now','-7 days')"
	}
	args := []any{}
	if opts.EligibleOnly {
		where += " AND eligible = 1"
	}
	if opts.MinTotal > 0 {
		where += " AND total >= ?"
		args = append(args, opts.MinTotal)
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
SELECT id, company, title, location, url, description, source, date,
       score_seniority, score_domain, score_role_type, score_location,
       score_stage, score_technical, company_adjustment, total, grade,
       role_category, filter_reason, eligible,
       company_type, company_confidence, classification_source
FROM jobs
%s
ORDER BY %s %s
LIMIT ?;`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		var eligible int
		var dateStr string
		if err := rows.Scan(
			&j.ID, &j.Company, &j.Title, &j.Location, &j.URL,
			&j.Description, &j.Source, &dateStr,
			&j.Seniority, &j.Domain, &j.RoleType, &j.LocationScore,
			&j.CompanyStage, &j.Technical, &j.CompanyAdjustment,
			&j.Total, &j.Grade, &j.RoleCategory, &j.FilterReason,
			&eligible, &j.CompanyType, &j.CompanyConfidence,
			&j.ClassificationSource,
		); err != nil {
			return nil, err
		}
		j.Eligible = eligible != 0
		j.Date = dateStr
		out = append(out, j)
	}
	return out, rows.Err()
}

func DeleteJob(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	return err
}

func CleanupOldJobs(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM jobs
WHERE date < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
