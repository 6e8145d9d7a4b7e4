package staleness

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobagent-engine/pkg/logging"
)

func newTestValidator(opts Options) *Validator {
	if opts.HostReqPerSec == 0 {
		opts.HostReqPerSec = 1000 // don't rate-limit the test server
	}
	return NewValidator(NewMemoryCache(), logging.Nop(), opts)
}

func TestValidateLivePosting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := newTestValidator(Options{})
	res := v.Validate(context.Background(), srv.URL+"/jobs/123")
	assert.True(t, res.Valid)
	assert.Equal(t, ReasonOK, res.Reason)
	assert.False(t, res.CheckedAt.IsZero())
}

func TestValidateGonePostings(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusGone} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		v := newTestValidator(Options{})
		res := v.Validate(context.Background(), srv.URL)
		assert.False(t, res.Valid, "status %d", status)
		assert.Equal(t, ReasonNotFound, res.Reason)
		srv.Close()
	}
}

func TestValidateServerErrorRetriesOnceThenFailsOpen(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := newTestValidator(Options{})
	res := v.Validate(context.Background(), srv.URL)

	assert.Equal(t, int32(2), hits.Load())
	assert.True(t, res.Valid) // persistent 5xx keeps the job
	assert.Equal(t, ReasonServerError, res.Reason)
}

func TestValidateServerErrorRecoversOnRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := newTestValidator(Options{})
	res := v.Validate(context.Background(), srv.URL)
	assert.True(t, res.Valid)
	assert.Equal(t, ReasonOK, res.Reason)
}

func TestValidateTimeoutFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	v := newTestValidator(Options{Timeout: 50 * time.Millisecond})
	res := v.Validate(context.Background(), srv.URL)
	assert.True(t, res.Valid)
	assert.Equal(t, ReasonTimeout, res.Reason)
}

func TestValidateConnectionErrorFailsOpen(t *testing.T) {
	v := newTestValidator(Options{Timeout: time.Second})
	res := v.Validate(context.Background(), "http://127.0.0.1:1/nope")
	assert.True(t, res.Valid)
	assert.Equal(t, ReasonConnectionError, res.Reason)
}

func TestValidateOddStatusFailsOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden) // login wall
	}))
	defer srv.Close()

	v := newTestValidator(Options{})
	res := v.Validate(context.Background(), srv.URL)
	assert.True(t, res.Valid)
	assert.Equal(t, "status_403", res.Reason)
}

func TestValidateBadURLFailsOpen(t *testing.T) {
	v := newTestValidator(Options{})

	for _, raw := range []string{"", "   ", "not a url", "/relative/path"} {
		res := v.Validate(context.Background(), raw)
		assert.True(t, res.Valid, "url %q", raw)
		assert.Equal(t, ReasonBadURL, res.Reason)
	}
}

func TestValidateUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := newTestValidator(Options{CacheTTL: time.Hour})

	first := v.Validate(context.Background(), srv.URL)
	second := v.Validate(context.Background(), srv.URL)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first.Reason, second.Reason)
	assert.Equal(t, first.CheckedAt, second.CheckedAt)
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache()
	c.Put("http://x", Result{Valid: false, Reason: ReasonNotFound, CheckedAt: time.Now().Add(-2 * time.Hour)})

	_, ok := c.Get("http://x", time.Hour)
	assert.False(t, ok)

	_, ok = c.Get("http://x", 3*time.Hour)
	assert.True(t, ok)
}

func TestPageLooksClosedMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Careers</title></head>
<body><p>This job is no longer available.</p></body></html>`))
	}))
	defer srv.Close()

	v := newTestValidator(Options{})
	assert.True(t, v.pageLooksClosed(context.Background(), srv.URL))

	open := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Apply now</h1></body></html>`))
	}))
	defer open.Close()
	assert.False(t, v.pageLooksClosed(context.Background(), open.URL))
}

func TestIsClosableHost(t *testing.T) {
	assert.True(t, isClosableHost("boards.greenhouse.io"))
	assert.True(t, isClosableHost("jobs.lever.co"))
	assert.True(t, isClosableHost("linkedin.com"))
	assert.False(t, isClosableHost("example.com"))
	assert.False(t, isClosableHost("notgreenhouse.io"))
}

func TestValidateAll(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer gone.Close()

	v := newTestValidator(Options{})
	urls := []string{ok.URL + "/a", gone.URL + "/b", "bad url"}
	results := v.ValidateAll(context.Background(), urls, 5)

	require.Len(t, results, 3)
	assert.True(t, results[urls[0]].Valid)
	assert.False(t, results[urls[1]].Valid)
	assert.True(t, results[urls[2]].Valid)
	assert.Equal(t, ReasonBadURL, results[urls[2]].Reason)
}
