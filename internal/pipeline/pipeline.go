package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobagent-engine/internal/company"
	"jobagent-engine/internal/config"
	"jobagent-engine/internal/domain"
	"jobagent-engine/internal/filter"
	"jobagent-engine/internal/rank"
	"jobagent-engine/internal/seniority"
	"jobagent-engine/pkg/logging"
)

// Outcome is the full result for one job: the breakdown plus the
// digest-eligibility verdict consumers rely on.
type Outcome struct {
	Job       domain.JobRecord      `json:"job"`
	Breakdown domain.ScoreBreakdown `json:"breakdown"`
	Eligible  bool                  `json:"eligible"`
}

// Engine wires the pipeline for one run: hard filter, scorer, context
// filter, sharing one run-scoped classification cache. Construct a new
// Engine per batch run and discard it afterwards.
type Engine struct {
	hard   *filter.HardFilter
	scorer rank.Scorer
	ctxf   *filter.ContextFilter
	cache  *company.Cache
	log    *logging.Logger
}

// New builds a run's engine from an already-validated profile.
// Overrides are consulted before any automatic classification.
func New(p config.Profile, overrides company.OverrideStore, log *logging.Logger) *Engine {
	cache := company.NewCache()
	levels := seniority.NewClassifier()
	companies := company.New(overrides, cache, p.CompanyLists)

	hf := config.HardFilters{}
	if p.HardFilterKeywords != nil {
		hf = *p.HardFilterKeywords
	}
	cf := config.ContextFilters{}
	if p.ContextFilters != nil {
		cf = *p.ContextFilters
	}

	return &Engine{
		hard:   filter.NewHardFilter(hf, p.AvoidKeywords),
		scorer: rank.NewRelativeScorer(p, levels, companies),
		ctxf:   filter.NewContextFilter(cf, p.FilteringAggression),
		cache:  cache,
		log:    log,
	}
}

// Evaluate runs one job through the pipeline. A hard-filter reject
// terminates before scoring; the breakdown then carries only the
// reason. Deterministic: the same job and profile always produce the
// same outcome.
func (e *Engine) Evaluate(job domain.JobRecord) Outcome {
	if keep, why := e.hard.Check(job); !keep {
		e.log.Debug("hard filter reject",
			"title", job.Title, "company", job.Company, "reason", why)
		return Outcome{
			Job:       job,
			Breakdown: domain.ScoreBreakdown{Grade: rank.GradeFor(0), FilterReason: why},
		}
	}

	b := e.scorer.Score(job)

	if keep, why := e.ctxf.Check(job, b); !keep {
		b.FilterReason = why
		e.log.Debug("context filter reject",
			"title", job.Title, "company", job.Company, "reason", why,
			"total", b.Total)
		return Outcome{Job: job, Breakdown: b}
	}

	return Outcome{Job: job, Breakdown: b, Eligible: true}
}

// EvaluateBatch scores jobs in parallel. No job's score depends on
// another's; the only shared state is the classification cache, which
// tolerates duplicate computation. Output order matches input order.
func (e *Engine) EvaluateBatch(ctx context.Context, jobs []domain.JobRecord, parallelism int) ([]Outcome, error) {
	if parallelism <= 0 {
		parallelism = 4
	}

	out := make([]Outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = e.Evaluate(job)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
