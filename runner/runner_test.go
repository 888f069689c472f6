package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-reviews-scraper/adapters"
	"amazon-reviews-scraper/config"
	"amazon-reviews-scraper/extractor"
	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/utils"
)

type fakeFetcher struct {
	failing  map[string]bool
	panics   map[string]bool
	cancel   context.CancelFunc
	requests []extractor.Request
}

func (f *fakeFetcher) FetchReviews(ctx context.Context, req extractor.Request) ([]types.ReviewRecord, error) {
	f.requests = append(f.requests, req)
	if f.failing[req.ASIN] {
		return nil, errors.New("boom")
	}
	if f.panics[req.ASIN] {
		panic("nil review entry")
	}
	if f.cancel != nil {
		f.cancel()
		return []types.ReviewRecord{{ASIN: req.ASIN, CurrentPage: 1}}, ctx.Err()
	}
	return []types.ReviewRecord{{ASIN: req.ASIN, DomainCode: req.DomainCode}}, nil
}

func TestRun_MergesDefaultsAndOverrides(t *testing.T) {
	fetcher := &fakeFetcher{}
	settings := config.Settings{Defaults: config.JobSpec{DomainCode: "de", MaxPages: utils.Ptr(4), SortBy: "helpful"}}
	r := NewRunner(fetcher, settings, config.Overrides{MaxPages: utils.Ptr(1)}, logrus.New())

	records, results := r.Run(context.Background(), []config.JobSpec{
		{ASIN: "A1"},
		{ASINs: []string{"B1", "B2"}, DomainCode: "fr", SortBy: "recent"},
	})

	require.Len(t, records, 3)
	require.Len(t, results, 3)
	require.Len(t, fetcher.requests, 3)

	assert.Equal(t, extractor.Request{ASIN: "A1", DomainCode: "de", MaxPages: 1, SortBy: "helpful"}, fetcher.requests[0])
	assert.Equal(t, "fr", fetcher.requests[2].DomainCode)
	assert.Equal(t, "recent", fetcher.requests[2].SortBy)
	assert.Equal(t, 1, fetcher.requests[2].MaxPages)
}

func TestRun_SkipsInvalidJobs(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewRunner(fetcher, config.Settings{}, config.Overrides{}, logrus.New())

	records, results := r.Run(context.Background(), []config.JobSpec{
		{},
		{ASIN: "A1", MaxPages: utils.Ptr(0)},
		{ASIN: "A2"},
	})

	require.Len(t, records, 1)
	require.Len(t, results, 1)
	assert.Equal(t, "A2", records[0].ASIN)
	assert.Equal(t, "com", records[0].DomainCode)
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	fetcher := &fakeFetcher{failing: map[string]bool{"A1": true}}
	r := NewRunner(fetcher, config.Settings{}, config.Overrides{}, logrus.New())

	records, results := r.Run(context.Background(), []config.JobSpec{{ASINs: []string{"A1", "A2"}}})

	require.Len(t, records, 1)
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Status(), "failed")
	assert.Equal(t, "ok", results[1].Status())
}

func TestRun_PanicCostsOnlyThatProduct(t *testing.T) {
	fetcher := &fakeFetcher{panics: map[string]bool{"A1": true}}
	r := NewRunner(fetcher, config.Settings{}, config.Overrides{}, logrus.New())

	var (
		records []types.ReviewRecord
		results []Result
	)
	require.NotPanics(t, func() {
		records, results = r.Run(context.Background(), []config.JobSpec{{ASINs: []string{"A1", "A2"}}})
	})

	require.Len(t, results, 2)
	assert.ErrorContains(t, results[0].Err, "panic")
	assert.Equal(t, 0, results[0].Records)
	require.Len(t, records, 1)
	assert.Equal(t, "A2", records[0].ASIN)
}

func TestRun_CancelKeepsCollectedPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fetcher := &fakeFetcher{cancel: cancel}
	r := NewRunner(fetcher, config.Settings{}, config.Overrides{}, logrus.New())

	records, results := r.Run(ctx, []config.JobSpec{{ASINs: []string{"A1", "A2"}}})

	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].ASIN)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Equal(t, 1, results[0].Records)
	assert.Len(t, fetcher.requests, 1)
}

func TestRun_Cancelled(t *testing.T) {
	fetcher := &fakeFetcher{}
	r := NewRunner(fetcher, config.Settings{}, config.Overrides{}, logrus.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records, results := r.Run(ctx, []config.JobSpec{{ASIN: "A1"}})

	assert.Empty(t, records)
	assert.Empty(t, results)
	assert.Empty(t, fetcher.requests)
}

func TestRun_MockExtractor(t *testing.T) {
	logger := logrus.New()
	ext := extractor.NewReviewExtractor(types.DefaultConfig(), logger, adapters.NewDomainResolver(nil, ""))
	r := NewRunner(ext, config.Settings{}, config.Overrides{Mock: true}, logger)

	records, results := r.Run(context.Background(), []config.JobSpec{{ASIN: "B000MOCK1", MaxPages: utils.Ptr(1)}})

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, len(records), results[0].Records)
	assert.GreaterOrEqual(t, len(records), 5)
	for _, rec := range records {
		assert.Equal(t, "B000MOCK1", rec.ASIN)
		assert.Equal(t, 1, rec.CurrentPage)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, []Result{
		{ASIN: "A1", DomainCode: "com", Records: 12},
		{ASIN: "A2", DomainCode: "de", Err: errors.New("boom")},
		{ASIN: "A3", DomainCode: "fr"},
	})

	out := buf.String()
	assert.Contains(t, out, "A1")
	assert.Contains(t, out, "failed: boom")
	assert.Contains(t, out, "no reviews")
	assert.Contains(t, out, "12")
}
