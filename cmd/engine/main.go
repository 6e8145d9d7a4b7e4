package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/events"
	"jobagent-engine/internal/httpapi"
	"jobagent-engine/internal/pipeline"
	"jobagent-engine/internal/scheduler"
	"jobagent-engine/internal/staleness"
	"jobagent-engine/internal/store"
	"jobagent-engine/pkg/logging"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	// Engine data dir: use env if provided (a desktop shell can pass one),
	// else local folder.
	dataDir := os.Getenv("JOBAGENT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "data dir: %v\n", err)
		os.Exit(1)
	}

	// One engine per data dir. A second instance would race the sqlite
	// writer and double-run the rescore loop.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		fmt.Fprintf(os.Stderr, "another engine instance holds %s\n", lock.Path())
		os.Exit(1)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return raw, err
		}
		normalized, vr := config.NormalizeAndValidate(raw)
		if !vr.OK() {
			return raw, errors.New(vr.Error())
		}
		return normalized, nil
	}

	raw, err := config.Load(userCfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed (%s): %v\n", userCfgPath, err)
		os.Exit(1)
	}
	cfg, vr := config.NormalizeAndValidate(raw)
	if !vr.OK() {
		fmt.Fprintf(os.Stderr, "config invalid (%s):\n", userCfgPath)
		for _, e := range vr.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	log := logging.New(cfg.App.LogLevel)
	defer log.Sync()
	for _, warn := range vr.Warnings {
		log.Warn("config", "warning", warn)
	}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobagent.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal("open db", "path", dbPath, "err", err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal("migrate", "err", err)
	}
	if err := store.SeedOverrides(context.Background(), db.Pool, cfg.Profile.CompanyOverrides); err != nil {
		log.Fatal("seed overrides", "err", err)
	}
	if n, err := store.CleanupOldJobs(db.Pool); err != nil {
		log.Warn("cleanup old jobs", "err", err)
	} else if n > 0 {
		log.Info("cleanup old jobs", "deleted", n)
	}

	hub := events.NewHub()
	overrides := store.NewOverrides(db.Pool)

	validator := staleness.NewValidator(store.NewURLChecks(db.Pool), log, staleness.Options{
		Timeout:       time.Duration(cfg.Staleness.TimeoutSeconds) * time.Second,
		CacheTTL:      time.Duration(cfg.Staleness.CacheHours) * time.Hour,
		HostReqPerSec: cfg.Staleness.HostReqPerSec,
	})

	// Rescore re-evaluates every stored job against the current profile.
	// A fresh engine per run keeps the classification cache run-scoped.
	runRescore := func(ctx context.Context, cfg config.Config) (int, error) {
		rows, err := store.ListJobs(ctx, db.Pool, store.ListJobsOpts{
			Sort:   "date",
			Window: "all",
			Limit:  10000,
		})
		if err != nil {
			return 0, fmt.Errorf("list jobs: %w", err)
		}
		if len(rows) == 0 {
			return 0, nil
		}

		recs := make([]domain.JobRecord, len(rows))
		for i, row := range rows {
			recs[i] = row.Record()
		}

		eng := pipeline.New(cfg.Profile, overrides, log)
		outcomes, err := eng.EvaluateBatch(ctx, recs, cfg.Rescore.Parallelism)
		if err != nil {
			return 0, err
		}

		for i, o := range outcomes {
			if err := store.SaveEvaluation(ctx, db.Pool, rows[i].ID, o); err != nil {
				return i, err
			}
		}
		return len(outcomes), nil
	}

	var rescoreStatus atomic.Value
	rescoreStatus.Store(httpapi.RescoreStatus{})

	// One gate for both triggers: the scheduler tick and POST /rescore
	// race each other, so admission has to be a compare-and-swap.
	var rescoreRunning atomic.Bool

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go scheduler.Every(ctx,
		time.Duration(cfg.Rescore.IntervalSeconds)*time.Second,
		"rescore", log,
		func(ctx context.Context) error {
			if !rescoreRunning.CompareAndSwap(false, true) {
				return nil
			}
			defer rescoreRunning.Store(false)

			st := rescoreStatus.Load().(httpapi.RescoreStatus)
			now := time.Now().Format(time.RFC3339)
			st.Running = true
			st.LastRunAt = now
			rescoreStatus.Store(st)

			cur := cfgVal.Load().(config.Config)
			scored, err := runRescore(ctx, cur)

			st = rescoreStatus.Load().(httpapi.RescoreStatus)
			st.Running = false
			st.LastCount = scored
			if err != nil {
				st.LastError = err.Error()
			} else {
				st.LastError = ""
				st.LastOkAt = time.Now().Format(time.RFC3339)
				hub.Publish(events.MakeEvent("", events.TypeRescoreDone, 1,
					map[string]any{"scored": scored}))
			}
			rescoreStatus.Store(st)
			return err
		})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:            db.Pool,
		Hub:           hub,
		CfgVal:        &cfgVal,
		RescoreStatus: &rescoreStatus,
		RescoreGate:   &rescoreRunning,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		Overrides:     overrides,
		Validator:     validator,
		DeleteJob:     store.DeleteJob,
		RunRescore:    runRescore,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover(log),
		httpapi.Cors,
		httpapi.AccessLog(log),
	)

	addr := net.JoinHostPort("127.0.0.1", fmt.Sprint(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("listen", "addr", addr, "err", err)
	}
	log.Info("engine listening", "addr", addr, "db", dbPath, "config", userCfgPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", "err", err)
	}
	log.Info("engine stopped")
}
