package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobagent-engine/internal/config"
	"jobagent-engine/internal/events"
)

func testRescoreHandler(run func(ctx context.Context, cfg config.Config) (int, error)) RescoreHandler {
	var cfgVal, status atomic.Value
	cfgVal.Store(config.Config{})
	status.Store(RescoreStatus{})

	return RescoreHandler{
		CfgVal:        &cfgVal,
		RescoreStatus: &status,
		Gate:          new(atomic.Bool),
		Hub:           events.NewHub(),
		RunRescore:    run,
	}
}

// A second trigger while a run is in flight must be turned away, even
// when both arrive before the status store is updated.
func TestRescoreRunRejectsConcurrentTrigger(t *testing.T) {
	release := make(chan struct{})
	h := testRescoreHandler(func(ctx context.Context, cfg config.Config) (int, error) {
		<-release
		return 3, nil
	})

	first := httptest.NewRecorder()
	h.Run(first, httptest.NewRequest(http.MethodPost, "/rescore", nil))
	assert.Contains(t, first.Body.String(), `"ok":true`)

	second := httptest.NewRecorder()
	h.Run(second, httptest.NewRequest(http.MethodPost, "/rescore", nil))
	assert.Contains(t, second.Body.String(), "already running")

	close(release)
	require.Eventually(t, func() bool {
		return !h.Gate.Load()
	}, 2*time.Second, 10*time.Millisecond)

	st := h.RescoreStatus.Load().(RescoreStatus)
	assert.False(t, st.Running)
	assert.Equal(t, 3, st.LastCount)
	assert.Empty(t, st.LastError)
}

func TestRescoreRunReleasesGateOnError(t *testing.T) {
	h := testRescoreHandler(func(ctx context.Context, cfg config.Config) (int, error) {
		return 0, context.DeadlineExceeded
	})

	w := httptest.NewRecorder()
	h.Run(w, httptest.NewRequest(http.MethodPost, "/rescore", nil))

	require.Eventually(t, func() bool {
		return !h.Gate.Load()
	}, 2*time.Second, 10*time.Millisecond)

	st := h.RescoreStatus.Load().(RescoreStatus)
	assert.False(t, st.Running)
	assert.NotEmpty(t, st.LastError)

	// a fresh trigger is admitted again after the failure
	w = httptest.NewRecorder()
	h.Run(w, httptest.NewRequest(http.MethodPost, "/rescore", nil))
	assert.Contains(t, w.Body.String(), `"ok"`)
}
