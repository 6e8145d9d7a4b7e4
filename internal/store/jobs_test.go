package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/pipeline"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db.Pool
}

func testRecord(n int) domain.JobRecord {
	return domain.JobRecord{
		Title:   "Director of Engineering",
		Company: fmt.Sprintf("Acme %d", n),
		Link:    fmt.Sprintf("https://example.com/jobs/%d", n),
		Source:  domain.SourceEmail,
	}
}

// setJobDate backdates a row relative to now, in the same layout the
// store writes, so window queries see a realistic value.
func setJobDate(t *testing.T, db *sql.DB, id int64, age time.Duration) {
	t.Helper()
	_, err := db.Exec(`UPDATE jobs SET date = ? WHERE id = ?;`,
		time.Now().UTC().Add(-age).Format(sqliteTimeLayout), id)
	require.NoError(t, err)
}

func TestInsertJobIfNewDedupes(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	rec := testRecord(1)
	id1, added, err := InsertJobIfNew(ctx, db, rec)
	require.NoError(t, err)
	assert.True(t, added)

	// same posting with tracking params resolves to the same source_id
	rec.Link += "?utm_source=email"
	id2, added, err := InsertJobIfNew(ctx, db, rec)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, id1, id2)
}

func TestInsertJobIfNewStoresPostedAt(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	posted := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	rec := testRecord(1)
	rec.PostedAt = &posted

	id, _, err := InsertJobIfNew(ctx, db, rec)
	require.NoError(t, err)

	var date string
	require.NoError(t, db.QueryRow(
		`SELECT date FROM jobs WHERE id = ?;`, id).Scan(&date))
	assert.Equal(t, "2026-08-20 09:30:00", date)
}

// The date column is compared lexicographically against
// datetime('now', ...), so stored values must use sqlite's own layout
// or window filtering silently admits stale rows.
func TestListJobsWindowBoundary(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	fresh, _, err := InsertJobIfNew(ctx, db, testRecord(1))
	require.NoError(t, err)
	setJobDate(t, db, fresh, 2*time.Hour)

	stale, _, err := InsertJobIfNew(ctx, db, testRecord(2))
	require.NoError(t, err)
	setJobDate(t, db, stale, 40*time.Hour)

	day, err := ListJobs(ctx, db, ListJobsOpts{Window: "24h"})
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, fresh, day[0].ID)

	week, err := ListJobs(ctx, db, ListJobsOpts{Window: "7d"})
	require.NoError(t, err)
	assert.Len(t, week, 2)
}

func TestSaveEvaluationRoundtrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	id, _, err := InsertJobIfNew(ctx, db, testRecord(1))
	require.NoError(t, err)

	out := pipeline.Outcome{
		Breakdown: domain.ScoreBreakdown{
			Seniority:    30,
			Domain:       18,
			RoleType:     20,
			Total:        68,
			Grade:        "C",
			RoleCategory: "engineering_leadership",
			Classification: domain.CompanyClassification{
				Type:       domain.CompanyHardware,
				Confidence: 0.7,
				Source:     domain.ClassifiedAuto,
			},
		},
		Eligible: true,
	}
	require.NoError(t, SaveEvaluation(ctx, db, id, out))

	jobs, err := ListJobs(ctx, db, ListJobsOpts{Window: "all", EligibleOnly: true})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	j := jobs[0]
	assert.Equal(t, 30, j.Seniority)
	assert.Equal(t, 18, j.Domain)
	assert.Equal(t, 68, j.Total)
	assert.Equal(t, "C", j.Grade)
	assert.True(t, j.Eligible)
	assert.Equal(t, string(domain.CompanyHardware), j.CompanyType)
	assert.InDelta(t, 0.7, j.CompanyConfidence, 1e-9)
}

func TestCleanupOldJobs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	keep, _, err := InsertJobIfNew(ctx, db, testRecord(1))
	require.NoError(t, err)

	old, _, err := InsertJobIfNew(ctx, db, testRecord(2))
	require.NoError(t, err)
	setJobDate(t, db, old, 4*30*24*time.Hour)

	deleted, err := CleanupOldJobs(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	jobs, err := ListJobs(ctx, db, ListJobsOpts{Window: "all"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, keep, jobs[0].ID)
}
