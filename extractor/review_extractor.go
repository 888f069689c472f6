package extractor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"amazon-reviews-scraper/adapters"
	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/utils"
)

// Request describes the reviews to collect for one product
type Request struct {
	ASIN       string
	DomainCode string
	MaxPages   int
	SortBy     string
	Filters    types.Filters
	Mock       bool
}

// PageFetcher retrieves the markup of a page
type PageFetcher interface {
	GetPageContent(ctx context.Context, url string) (string, error)
}

// ReviewExtractor pages through a product's review listing and assembles records
type ReviewExtractor struct {
	adapter *adapters.AmazonAdapter
	fetcher PageFetcher
	config  *types.Config
	logger  types.Logger
	now     func() time.Time
	pause   func(ctx context.Context) error
}

// NewReviewExtractor creates a new review extractor
func NewReviewExtractor(config *types.Config, logger types.Logger, domains *adapters.DomainResolver) *ReviewExtractor {
	adapter := adapters.NewAmazonAdapter(config, logger, domains)
	e := &ReviewExtractor{
		adapter: adapter,
		fetcher: adapter,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
	e.pause = e.pageDelay
	return e
}

// Adapter returns the site adapter used for URLs and parsing
func (e *ReviewExtractor) Adapter() *adapters.AmazonAdapter {
	return e.adapter
}

// FetchReviews collects the records for one product. Mock requests are served
// by the generator; live requests page through the listing until MaxPages or
// the first page that yields no markup.
func (e *ReviewExtractor) FetchReviews(ctx context.Context, req Request) ([]types.ReviewRecord, error) {
	if req.Mock {
		records := GenerateMock(req, e.now())
		e.logger.Debugf("Generated %d mock reviews for %s", len(records), req.ASIN)
		return records, nil
	}

	startTime := time.Now()
	var (
		records []types.ReviewRecord
		product *types.ProductInfo
		summary *types.SummaryInfo
	)

	for page := 1; page <= req.MaxPages; page++ {
		url := e.adapter.BuildReviewsURL(req.ASIN, req.DomainCode, page, req.SortBy, req.Filters)
		e.logger.Debugf("Fetching page %d: %s", page, url)

		content, err := e.fetcher.GetPageContent(ctx, url)
		if ctx.Err() != nil {
			return records, ctx.Err()
		}
		if err != nil || content == "" {
			e.logger.Warnf("Empty HTML for %s page %d", req.ASIN, page)
			break
		}

		doc, err := e.adapter.ParseHTML(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %d of %s: %w", page, req.ASIN, err)
		}

		// Page-level metadata is taken from the first parsed page only.
		if product == nil {
			info := e.adapter.ExtractProductInfo(doc)
			product = &info
		}
		if summary == nil {
			info := e.adapter.ExtractSummary(doc)
			summary = &info
		}

		reviews := e.adapter.ExtractReviews(doc)
		e.logger.Debugf("Parsed %d reviews on page %d", len(reviews), page)

		p := pageRecords{request: req, page: page, count: len(reviews), product: *product, summary: *summary}
		records = append(records, p.buildAll(reviews)...)

		if page < req.MaxPages {
			if err := e.pause(ctx); err != nil {
				return records, err
			}
		}
	}

	e.logger.Debugf("Fetched %d reviews for %s in %v", len(records), req.ASIN, time.Since(startTime))
	return records, nil
}

// pageDelay sleeps a random duration between PageDelayMin and PageDelayMax
func (e *ReviewExtractor) pageDelay(ctx context.Context) error {
	delay := e.config.PageDelayMin
	if spread := e.config.PageDelayMax - e.config.PageDelayMin; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}
	return utils.Sleep(ctx, delay)
}
