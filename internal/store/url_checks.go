package store

import (
	"database/sql"
	"time"

	"jobagent-engine/internal/staleness"
)

// URLChecks persists staleness results across runs so repeat digests
// within the TTL never re-hit external hosts.
type URLChecks struct {
	db *sql.DB
}

func NewURLChecks(db *sql.DB) *URLChecks {
	return &URLChecks{db: db}
}

var _ staleness.CacheStore = (*URLChecks)(nil)

func (c *URLChecks) Get(url string, ttl time.Duration) (staleness.Result, bool) {
	var valid int
	var reason, checkedAt string
	err := c.db.QueryRow(
		`SELECT valid, reason, checked_at FROM url_checks WHERE url = ? LIMIT 1;`, url,
	).Scan(&valid, &reason, &checkedAt)
	if err != nil {
		return staleness.Result{}, false
	}

	at, err := time.Parse(time.RFC3339, checkedAt)
	if err != nil || time.Since(at) > ttl {
		return staleness.Result{}, false
	}
	return staleness.Result{Valid: valid != 0, Reason: reason, CheckedAt: at}, true
}

func (c *URLChecks) Put(url string, r staleness.Result) {
	_, _ = c.db.Exec(`
INSERT INTO url_checks(url, valid, reason, checked_at)
VALUES(?,?,?,?)
ON CONFLICT(url) DO UPDATE SET
  valid = excluded.valid,
  reason = excluded.reason,
  checked_at = excluded.checked_at;
`, url, boolToInt(r.Valid), r.Reason, r.CheckedAt.Format(time.RFC3339))
}
