package extractor

import (
	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/utils"
)

// pageRecords assembles the records of one page. Page-level metadata and the
// request echo are shared; per-review values come from each ReviewFields.
type pageRecords struct {
	request Request
	page    int
	count   int
	product types.ProductInfo
	summary types.SummaryInfo
}

func (p pageRecords) build(fields types.ReviewFields) types.ReviewRecord {
	return types.ReviewRecord{
		StatusCode:      types.StatusCodeFound,
		StatusMessage:   types.StatusMessageFound,
		ASIN:            p.request.ASIN,
		ProductTitle:    p.product.Title,
		CurrentPage:     p.page,
		SortStrategy:    p.request.SortBy,
		CountReviews:    p.count,
		DomainCode:      p.request.DomainCode,
		Filters:         p.request.Filters,
		CountRatings:    p.summary.CountRatings,
		ProductRating:   p.summary.ProductRating,
		ReviewSummary:   p.summary.Summary,
		ReviewID:        fields.ID,
		Text:            fields.Text,
		Date:            fields.Date,
		Rating:          fields.Rating,
		Title:           fields.Title,
		UserName:        fields.UserName,
		NumberOfHelpful: fields.Helpful,
		VariationID:     fields.VariationID,
		ImageURLList:    nilIfEmpty(fields.Images),
		VideoURLList:    nilIfEmpty(fields.Videos),
		VariationList:   nilIfEmpty(fields.Variations),
		Verified:        utils.Ptr(fields.Verified),
		Vine:            utils.Ptr(fields.Vine),
	}
}

func (p pageRecords) buildAll(reviews []types.ReviewFields) []types.ReviewRecord {
	records := make([]types.ReviewRecord, 0, len(reviews))
	for _, r := range reviews {
		records = append(records, p.build(r))
	}
	return records
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
