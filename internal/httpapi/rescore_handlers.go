package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/events"
)

type RescoreHandler struct {
	CfgVal        *atomic.Value // config.Config
	RescoreStatus *atomic.Value // httpapi.RescoreStatus
	Gate          *atomic.Bool  // shared with the scheduler loop
	Hub           *events.Hub
	RunRescore    func(ctx context.Context, cfg config.Config) (scored int, err error)
}

func (h RescoreHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.RescoreStatus.Load().(RescoreStatus)
	writeJSON(w, st)
}

func (h RescoreHandler) Run(w http.ResponseWriter, r *http.Request) {
	// the gate is the single admission point for runs, shared with the
	// scheduler; status is reporting only
	if !h.Gate.CompareAndSwap(false, true) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	st := h.RescoreStatus.Load().(RescoreStatus)
	h.RescoreStatus.Store(RescoreStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastError: "",
		LastCount: 0,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())
	go func() {
		defer h.Gate.Store(false)

		cfg := h.CfgVal.Load().(config.Config)
		scored, err := h.RunRescore(context.Background(), cfg)

		now := time.Now().Format(time.RFC3339)
		next := h.RescoreStatus.Load().(RescoreStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastCount = scored
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeRescoreDone, 1,
				map[string]any{"scored": scored}))
		}
		h.RescoreStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
