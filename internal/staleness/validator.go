package staleness

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"jobagent-engine/pkg/logging"
)

// Outcome reasons.
const (
	ReasonOK              = "ok"
	ReasonNotFound        = "not_found"
	ReasonClosed          = "closed"
	ReasonTimeout         = "timeout"
	ReasonConnectionError = "connection_error"
	ReasonServerError     = "server_error"
	ReasonUnverifiable    = "unverifiable"
	ReasonBadURL          = "bad_url"
)

// Validator checks whether a posting URL still exists. It is the only
// pipeline component that does I/O. Fail-open throughout: only a
// definitive 404/410 or a detected closed-posting page marks a URL
// invalid; timeouts, connection errors, login walls, and odd statuses
// leave the job eligible, because a falsely rejected live posting is
// worse than an occasionally stale one.
type Validator struct {
	client  *http.Client
	cache   CacheStore
	ttl     time.Duration
	limiter *HostLimiter
	log     *logging.Logger
}

type Options struct {
	Timeout       time.Duration // per request, default 5s
	CacheTTL      time.Duration // default 24h
	HostReqPerSec float64       // default 1
}

func NewValidator(cache CacheStore, log *logging.Logger, opts Options) *Validator {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.HostReqPerSec <= 0 {
		opts.HostReqPerSec = 1
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Validator{
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		cache:   cache,
		ttl:     opts.CacheTTL,
		limiter: NewHostLimiter(opts.HostReqPerSec, 2),
		log:     log,
	}
}

// Validate resolves one URL to a Result. Never returns an error:
// network failures are classified, not propagated.
func (v *Validator) Validate(ctx context.Context, raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{Valid: true, Reason: ReasonBadURL, CheckedAt: time.Now().UTC()}
	}
	if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
		return Result{Valid: true, Reason: ReasonBadURL, CheckedAt: time.Now().UTC()}
	}

	if cached, ok := v.cache.Get(raw, v.ttl); ok {
		return cached
	}

	res := v.check(ctx, raw)
	v.cache.Put(raw, res)
	return res
}

func (v *Validator) check(ctx context.Context, raw string) Result {
	res := v.headOnce(ctx, raw)
	// one retry, only on server errors
	if res.Reason == ReasonServerError {
		res = v.headOnce(ctx, raw)
		if res.Reason == ReasonServerError {
			// still erroring; the posting may well be live behind it
			res.Valid = true
		}
	}
	res.CheckedAt = time.Now().UTC()
	if !res.Valid {
		v.log.Info("stale url", "url", raw, "reason", res.Reason)
	}
	return res
}

func (v *Validator) headOnce(ctx context.Context, raw string) Result {
	if err := v.limiter.WaitURL(ctx, raw); err != nil {
		return Result{Valid: true, Reason: ReasonUnverifiable}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return Result{Valid: true, Reason: ReasonBadURL}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := v.client.Do(req)
	if err != nil {
		return classifyError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if host := strings.ToLower(resp.Request.URL.Host); isClosableHost(host) {
			if closed := v.pageLooksClosed(ctx, raw); closed {
				return Result{Valid: false, Reason: ReasonClosed}
			}
		}
		return Result{Valid: true, Reason: ReasonOK}
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return Result{Valid: false, Reason: ReasonNotFound}
	case resp.StatusCode >= 500:
		return Result{Valid: false, Reason: ReasonServerError}
	default:
		// redirect-to-login walls and friends land here; unverifiable,
		// so keep the job
		return Result{Valid: true, Reason: fmt.Sprintf("status_%d", resp.StatusCode)}
	}
}

func classifyError(err error) Result {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Result{Valid: true, Reason: ReasonTimeout}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Result{Valid: true, Reason: ReasonTimeout}
	}
	return Result{Valid: true, Reason: ReasonConnectionError}
}

// ATS hosts that serve a friendly 200 page for closed postings.
func isClosableHost(host string) bool {
	for _, h := range []string{"greenhouse.io", "lever.co", "linkedin.com", "myworkdayjobs.com"} {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

var closedMarkers = []string{
	"no longer accepting applications",
	"this job is no longer available",
	"job not found",
	"position has been filled",
	"posting has closed",
}

// pageLooksClosed fetches the page body and scans the title and text
// for closed-posting markers. Any failure here fails open.
func (v *Validator) pageLooksClosed(ctx context.Context, raw string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := v.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return false
	}
	text := strings.ToLower(doc.Find("title").Text() + " " + doc.Find("body").Text())
	for _, marker := range closedMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// ValidateAll checks many URLs with a fixed-size worker pool and
// returns a result per URL. Workers should stay in the 5-10 range to
// respect external hosts.
func (v *Validator) ValidateAll(ctx context.Context, urls []string, workers int) map[string]Result {
	if workers <= 0 {
		workers = 8
	}

	out := make([]Result, len(urls))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			out[i] = v.Validate(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]Result, len(urls))
	for i, u := range urls {
		results[u] = out[i]
	}
	return results
}
