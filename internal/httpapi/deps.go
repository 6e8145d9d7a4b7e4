package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/events"
	"jobagent-engine/internal/staleness"
	"jobagent-engine/internal/store"
)

type Deps struct {
	DB  *sql.DB
	Hub *events.Hub

	// Atomic stores
	CfgVal        *atomic.Value // stores config.Config
	RescoreStatus *atomic.Value // stores httpapi.RescoreStatus
	RescoreGate   *atomic.Bool  // serializes API- and scheduler-triggered runs

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Overrides *store.Overrides
	Validator *staleness.Validator

	DeleteJob func(ctx context.Context, db *sql.DB, id int64) error

	// Batch entrypoint (injected for testability)
	RunRescore func(ctx context.Context, cfg config.Config) (scored int, err error)
}
