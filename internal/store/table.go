package store

import "database/sql"

// Migrate brings the schema to the current version using sqlite's
// user_version pragma.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT 'unknown',
  source_id TEXT NOT NULL DEFAULT '',
  date TEXT NOT NULL,

  score_seniority INTEGER NOT NULL DEFAULT 0,
  score_domain INTEGER NOT NULL DEFAULT 0,
  score_role_type INTEGER NOT NULL DEFAULT 0,
  score_location INTEGER NOT NULL DEFAULT 0,
  score_stage INTEGER NOT NULL DEFAULT 0,
  score_technical INTEGER NOT NULL DEFAULT 0,
  company_adjustment INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL DEFAULT 0,
  grade TEXT NOT NULL DEFAULT '',
  role_category TEXT NOT NULL DEFAULT '',
  filter_reason TEXT NOT NULL DEFAULT '',
  eligible INTEGER NOT NULL DEFAULT 0,

  company_type TEXT NOT NULL DEFAULT 'unknown',
  company_confidence REAL NOT NULL DEFAULT 0,
  classification_source TEXT NOT NULL DEFAULT 'auto'
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS company_overrides (
  company TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS url_checks (
  url TEXT PRIMARY KEY,
  valid INTEGER NOT NULL,
  reason TEXT NOT NULL,
  checked_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_date ON jobs(date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_total ON jobs(total);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_source_id
ON jobs(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
