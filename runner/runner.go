package runner

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"amazon-reviews-scraper/config"
	"amazon-reviews-scraper/extractor"
	"amazon-reviews-scraper/internal/types"
)

// ReviewFetcher collects the records for one product
type ReviewFetcher interface {
	FetchReviews(ctx context.Context, req extractor.Request) ([]types.ReviewRecord, error)
}

// Result is the outcome of one ASIN
type Result struct {
	ASIN       string
	DomainCode string
	Mock       bool
	Records    int
	Duration   time.Duration
	Err        error
}

// Runner resolves jobs against the settings defaults and collects their reviews
type Runner struct {
	fetcher           ReviewFetcher
	defaults          config.JobSpec
	defaultDomainCode string
	logger            types.Logger
}

// NewRunner creates a runner. Overrides are applied to the settings defaults
// once, before any job is merged.
func NewRunner(fetcher ReviewFetcher, settings config.Settings, overrides config.Overrides, logger types.Logger) *Runner {
	return &Runner{
		fetcher:           fetcher,
		defaults:          settings.WithOverrides(overrides),
		defaultDomainCode: settings.DefaultDomainCode(),
		logger:            logger,
	}
}

// Resolve merges the defaults into spec and validates the result
func (r *Runner) Resolve(spec config.JobSpec) (config.Job, error) {
	job, err := config.Resolve(spec, r.defaults, r.defaultDomainCode)
	if err != nil {
		return config.Job{}, err
	}
	if err := job.Validate(); err != nil {
		return config.Job{}, err
	}
	return job, nil
}

// Run processes the jobs in order. Invalid jobs are skipped and a failing
// ASIN does not stop the others.
func (r *Runner) Run(ctx context.Context, specs []config.JobSpec) ([]types.ReviewRecord, []Result) {
	var (
		records []types.ReviewRecord
		results []Result
	)

	for i, spec := range specs {
		job, err := r.Resolve(spec)
		if err != nil {
			r.logger.Warnf("Skipping job %d: %v", i+1, err)
			continue
		}

		r.logger.Infof("Starting job | domain=%s | asins=%s | max_pages=%d | sort=%s | mock=%t",
			job.DomainCode, strings.Join(job.ASINs, ","), job.MaxPages, job.SortBy, job.Mock)

		for _, req := range job.Requests() {
			if ctx.Err() != nil {
				r.logger.Warnf("Run cancelled: %v", ctx.Err())
				return records, results
			}

			startTime := time.Now()
			got, err := r.fetch(ctx, req)
			result := Result{
				ASIN:       req.ASIN,
				DomainCode: req.DomainCode,
				Mock:       req.Mock,
				Records:    len(got),
				Duration:   time.Since(startTime),
				Err:        err,
			}
			results = append(results, result)

			if err != nil {
				r.logger.Errorf("Failed to collect reviews for %s: %v", req.ASIN, err)
				// Pages finished before a cancellation are kept.
				if ctx.Err() != nil {
					records = append(records, got...)
				}
				continue
			}
			records = append(records, got...)
			r.logger.Infof("Collected %d reviews for ASIN %s", len(got), req.ASIN)
		}
	}

	return records, results
}

// fetch runs one product and turns a panic into an error for that product
func (r *Runner) fetch(ctx context.Context, req extractor.Request) (records []types.ReviewRecord, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorf("Panic while collecting reviews for %s: %v\n%s", req.ASIN, rec, debug.Stack())
			records, err = nil, fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.fetcher.FetchReviews(ctx, req)
}

// Status is the short outcome shown in summaries
func (res Result) Status() string {
	if res.Err != nil {
		return fmt.Sprintf("failed: %v", res.Err)
	}
	if res.Records == 0 {
		return "no reviews"
	}
	return "ok"
}
