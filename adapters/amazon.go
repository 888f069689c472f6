package adapters

import (
	"fmt"
	"net/url"

	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/utils"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the reviews listing markup.
const (
	productTitleSelector = "#cm_cr-product_info .product-title, #cm_cr-product_info h1"
	productLinkSelector  = "#cm_cr-product_info a[data-hook='product-link']"

	averageRatingSelector = "span[data-hook='rating-out-of-text']"
	ratingCountSelector   = "div[data-hook='total-review-count'] span"
	histogramRowSelector  = "table#histogramTable tr.%s-star .a-text-right"

	reviewSelector         = "div[data-hook='review']"
	reviewTitleSelector    = "a[data-hook='review-title'] span"
	reviewRatingSelector   = "i[data-hook='review-star-rating'] span"
	compactRatingSelector  = "i[data-hook='cmps-review-star-rating'] span"
	reviewAuthorSelector   = "span.a-profile-name"
	reviewDateSelector     = "span[data-hook='review-date']"
	reviewBodySelector     = "span[data-hook='review-body'] span"
	helpfulVotesSelector   = "span[data-hook='helpful-vote-statement']"
	verifiedBadgeSelector  = "span[data-hook='avp-badge']"
	vineBadgeSelector      = "span[data-hook='vine-review-badge']"
	reviewImageSelector    = "img.review-image-tile"
	reviewVideoSelector    = "div[data-hook='video-cmp'] video source"
	formatStripSelector    = "a[data-hook='format-strip']"
	verifiedReviewerFilter = "avp_only_reviews"
)

// StarLevels are the histogram rows, highest first
var StarLevels = []string{"five", "four", "three", "two", "one"}

// AmazonAdapter handles URL construction and extraction for Amazon review listings
type AmazonAdapter struct {
	*BaseAdapter
	domains *DomainResolver
}

// NewAmazonAdapter creates a new Amazon adapter
func NewAmazonAdapter(config *types.Config, logger types.Logger, domains *DomainResolver) *AmazonAdapter {
	return &AmazonAdapter{
		BaseAdapter: NewBaseAdapter(config, logger),
		domains:     domains,
	}
}

// GetStoreName returns the store name
func (a *AmazonAdapter) GetStoreName() string {
	return "amazon"
}

// Domains returns the resolver used to build URLs
func (a *AmazonAdapter) Domains() *DomainResolver {
	return a.domains
}

// BuildReviewsURL composes the URL of one page of a product's review listing.
// Query parameters are encoded in key order so equal inputs give equal URLs.
func (a *AmazonAdapter) BuildReviewsURL(asin, domainCode string, page int, sortBy string, filters types.Filters) string {
	domain := a.domains.Resolve(domainCode)

	params := url.Values{}
	params.Set("pageNumber", fmt.Sprint(page))
	params.Set("sortBy", SortParam(sortBy))
	if filters.FilterByStar != nil && *filters.FilterByStar != "" {
		params.Set("filterByStar", *filters.FilterByStar)
	}
	if filters.FilterByKeyword != nil && *filters.FilterByKeyword != "" {
		params.Set("filterByKeyword", *filters.FilterByKeyword)
	}
	if filters.VerifiedOnly {
		params.Set("reviewerType", verifiedReviewerFilter)
	}

	return fmt.Sprintf("https://www.amazon.%s/product-reviews/%s/ref=cm_cr_arp_d_paging_btm_next_%d?%s",
		domain, asin, page, params.Encode())
}

// SortParam maps a requested sort mode onto the two values the site accepts
func SortParam(sortBy string) string {
	if sortBy == "recent" {
		return "recent"
	}
	return "helpful"
}

// ExtractProductInfo reads the product title, falling back to the product link text
func (a *AmazonAdapter) ExtractProductInfo(doc *goquery.Document) types.ProductInfo {
	root := doc.Selection

	title := TextOf(root, productTitleSelector, "")
	if title == nil || *title == "" {
		title = TextOf(root, productLinkSelector, "")
	}
	if title != nil && *title == "" {
		title = nil
	}
	return types.ProductInfo{Title: title}
}

// ExtractSummary reads the average rating, total rating count and star distribution
func (a *AmazonAdapter) ExtractSummary(doc *goquery.Document) types.SummaryInfo {
	root := doc.Selection
	info := types.SummaryInfo{
		ProductRating: TextOf(root, averageRatingSelector, ""),
	}

	if cnt := root.Find(ratingCountSelector).First(); cnt.Length() > 0 {
		info.CountRatings = utils.DigitsOnly(cnt.Text())
		if info.CountRatings == nil {
			a.logger.Debugf("Could not parse rating count from %q", cnt.Text())
		}
	}

	summary := make(map[string]types.StarPercentage)
	for _, star := range StarLevels {
		el := root.Find(fmt.Sprintf(histogramRowSelector, star)).First()
		if el.Length() == 0 {
			continue
		}
		if pct := utils.Percentage(el.Text()); pct != nil {
			summary[star+"Star"] = types.StarPercentage{Percentage: *pct}
		}
	}
	if len(summary) > 0 {
		info.Summary = summary
	}
	return info
}

// ExtractReviews parses every review entry on the page in document order
func (a *AmazonAdapter) ExtractReviews(doc *goquery.Document) []types.ReviewFields {
	reviews := []types.ReviewFields{}
	doc.Find(reviewSelector).Each(func(i int, rev *goquery.Selection) {
		reviews = append(reviews, a.extractReview(rev))
	})
	return reviews
}

func (a *AmazonAdapter) extractReview(rev *goquery.Selection) types.ReviewFields {
	fields := types.ReviewFields{
		Title:    TextOf(rev, reviewTitleSelector, ""),
		// The full star rating wins over the compact one regardless of document order.
		Rating:   FirstTextOf(rev, "", reviewRatingSelector, compactRatingSelector),
		UserName: TextOf(rev, reviewAuthorSelector, ""),
		Date:     TextOf(rev, reviewDateSelector, ""),
		Text:     TextOf(rev, reviewBodySelector, " "),
		Verified: Exists(rev, verifiedBadgeSelector),
		Vine:     Exists(rev, vineBadgeSelector),
		Images:   AttrList(rev, reviewImageSelector, "src"),
		Videos:   AttrList(rev, reviewVideoSelector, "src"),
		// No extraction rule exists for the variation id; it stays nil for live pages.
		VariationID: nil,
	}
	if id, ok := rev.Attr("id"); ok {
		fields.ID = &id
	}

	if helpful := rev.Find(helpfulVotesSelector).First(); helpful.Length() > 0 {
		fields.Helpful = utils.FirstNumber(helpful.Text())
		if fields.Helpful == nil {
			fields.Helpful = utils.Ptr(0)
		}
	}

	if variation := TextOf(rev, formatStripSelector, " "); variation != nil {
		fields.Variations = []string{*variation}
	}
	return fields
}

// NamedSelector pairs an extracted field with the CSS selector it is read from
type NamedSelector struct {
	Field    string
	Selector string
}

// Selectors lists every selector the extractor relies on, page-level first.
// Review-level selectors are relative to a review entry.
func Selectors() []NamedSelector {
	selectors := []NamedSelector{
		{"productTitle", productTitleSelector},
		{"productLink", productLinkSelector},
		{"productRating", averageRatingSelector},
		{"countRatings", ratingCountSelector},
	}
	for _, star := range StarLevels {
		selectors = append(selectors, NamedSelector{star + "Star", fmt.Sprintf(histogramRowSelector, star)})
	}
	return append(selectors,
		NamedSelector{"review", reviewSelector},
		NamedSelector{"title", reviewTitleSelector},
		NamedSelector{"rating", reviewRatingSelector},
		NamedSelector{"ratingCompact", compactRatingSelector},
		NamedSelector{"userName", reviewAuthorSelector},
		NamedSelector{"date", reviewDateSelector},
		NamedSelector{"text", reviewBodySelector},
		NamedSelector{"numberOfHelpful", helpfulVotesSelector},
		NamedSelector{"verified", verifiedBadgeSelector},
		NamedSelector{"vine", vineBadgeSelector},
		NamedSelector{"imageUrlList", reviewImageSelector},
		NamedSelector{"videoUrlList", reviewVideoSelector},
		NamedSelector{"variationList", formatStripSelector},
	)
}
