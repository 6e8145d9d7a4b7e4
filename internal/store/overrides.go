package store

import (
	"context"
	"database/sql"
	"time"

	"jobagent-engine/internal/company"
	"jobagent-engine/internal/domain"
)

// Overrides is the sqlite-backed manual classification store. Lookups
// happen synchronously before any automatic classification, which is
// what serializes override writes against classification reads.
type Overrides struct {
	db *sql.DB
}

func NewOverrides(db *sql.DB) *Overrides {
	return &Overrides{db: db}
}

var _ company.OverrideStore = (*Overrides)(nil)

func (o *Overrides) Lookup(name string) (domain.CompanyType, bool) {
	key := company.NormalizeKey(name)
	if key == "" {
		return domain.CompanyUnknown, false
	}

	var t string
	err := o.db.QueryRow(
		`SELECT type FROM company_overrides WHERE company = ? LIMIT 1;`, key,
	).Scan(&t)
	if err != nil {
		return domain.CompanyUnknown, false
	}
	return domain.CompanyType(t), true
}

func (o *Overrides) Upsert(ctx context.Context, name string, t domain.CompanyType) error {
	key := company.NormalizeKey(name)
	if key == "" {
		return nil
	}
	_, err := o.db.ExecContext(ctx, `
INSERT INTO company_overrides(company, type, updated_at)
VALUES(?,?,?)
ON CONFLICT(company) DO UPDATE SET
  type = excluded.type,
  updated_at = excluded.updated_at;
`, key, string(t), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (o *Overrides) Delete(ctx context.Context, name string) error {
	_, err := o.db.ExecContext(ctx,
		`DELETE FROM company_overrides WHERE company = ?;`,
		company.NormalizeKey(name))
	return err
}

type OverrideRow struct {
	Company   string `json:"company"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updated_at"`
}

func (o *Overrides) List(ctx context.Context) ([]OverrideRow, error) {
	rows, err := o.db.QueryContext(ctx,
		`SELECT company, type, updated_at FROM company_overrides ORDER BY company;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverrideRow
	for rows.Next() {
		var r OverrideRow
		if err := rows.Scan(&r.Company, &r.Type, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SeedOverrides copies profile-declared overrides into the store so
// API- and config-supplied overrides share one lookup path.
func SeedOverrides(ctx context.Context, db *sql.DB, entries map[string]string) error {
	o := NewOverrides(db)
	for name, t := range entries {
		if err := o.Upsert(ctx, name, domain.CompanyType(t)); err != nil {
			return err
		}
	}
	return nil
}
