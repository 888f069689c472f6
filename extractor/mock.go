package extractor

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/utils"
)

var (
	mockUserNames  = []string{"Alex", "Jordan", "Taylor", "Sam", "Casey", "Riley"}
	mockVariations = []string{"Color: Black", "Size: Large", "Style: Single"}
	mockStars      = []int{5, 4, 3, 2, 1}
	mockVerified   = []bool{true, false, true}
)

// MockSeed derives the mock generator seed from the product and domain code
func MockSeed(asin, domainCode string) int64 {
	h := fnv.New64a()
	h.Write([]byte(asin))
	h.Write([]byte{0})
	h.Write([]byte(domainCode))
	return int64(h.Sum64())
}

// GenerateMock produces synthetic records for req without touching the network.
// Output depends only on the request, except Date which is taken from now.
func GenerateMock(req Request, now time.Time) []types.ReviewRecord {
	rng := rand.New(rand.NewSource(MockSeed(req.ASIN, req.DomainCode)))
	between := func(lo, hi int) int { return lo + rng.Intn(hi-lo+1) }

	total := between(5, 15) * req.MaxPages
	product := types.ProductInfo{Title: utils.Ptr(fmt.Sprintf("Mock Product for %s", req.ASIN))}
	summary := types.SummaryInfo{
		CountRatings:  utils.Ptr(total),
		ProductRating: utils.Ptr(fmt.Sprintf("%.1f out of 5", 3.8+rng.Float64()*1.1)),
		Summary: map[string]types.StarPercentage{
			"fiveStar":  {Percentage: between(50, 90)},
			"fourStar":  {Percentage: between(5, 30)},
			"threeStar": {Percentage: between(1, 15)},
			"twoStar":   {Percentage: between(0, 5)},
			"oneStar":   {Percentage: between(0, 5)},
		},
	}
	date := now.UTC().Format("Reviewed on 02 January 2006")

	var records []types.ReviewRecord
	for page := 1; page <= req.MaxPages; page++ {
		pageSize := between(5, 12)
		reviews := make([]types.ReviewFields, 0, pageSize)
		for i := 0; i < pageSize; i++ {
			id := fmt.Sprintf("R%d", 1_000_000_000_000+rng.Int63n(9_000_000_000_000))
			stars := mockStars[rng.Intn(len(mockStars))]
			reviews = append(reviews, types.ReviewFields{
				ID:          utils.Ptr(id),
				Text:        utils.Ptr(fmt.Sprintf("This is a mock review text %s for ASIN %s. Works well.", id, req.ASIN)),
				Date:        utils.Ptr(date),
				Rating:      utils.Ptr(fmt.Sprintf("%d.0 out of 5 stars", stars)),
				Title:       utils.Ptr(fmt.Sprintf("Great product (%d★)", stars)),
				UserName:    utils.Ptr(mockUserNames[rng.Intn(len(mockUserNames))]),
				Helpful:     utils.Ptr(between(0, 25)),
				VariationID: utils.Ptr(req.ASIN),
				Variations:  []string{mockVariations[rng.Intn(len(mockVariations))]},
				Verified:    mockVerified[rng.Intn(len(mockVerified))],
				Vine:        false,
			})
		}

		p := pageRecords{request: req, page: page, count: pageSize, product: product, summary: summary}
		records = append(records, p.buildAll(reviews)...)
	}
	return records
}
