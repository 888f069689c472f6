package types

import "time"

// Fixed status markers carried by every assembled record.
const (
	StatusCodeFound    = 200
	StatusMessageFound = "FOUND"
)

// Filters is the filter set applied to a reviews request and echoed on each record
type Filters struct {
	FilterByStar    *string `json:"filterByStar"`
	FilterByKeyword *string `json:"filterByKeyword"`
	VerifiedOnly    bool    `json:"verifiedOnly"`
	WithMediaOnly   bool    `json:"withMediaOnly"`
}

// StarPercentage is one bucket of the rating distribution
type StarPercentage struct {
	Percentage int `json:"percentage"`
}

// ReviewRecord is one scraped (or synthesized) review.
// Pointer, slice and map fields marshal to null when absent.
type ReviewRecord struct {
	StatusCode      int                       `json:"statusCode"`
	StatusMessage   string                    `json:"statusMessage"`
	ASIN            string                    `json:"asin"`
	ProductTitle    *string                   `json:"productTitle"`
	CurrentPage     int                       `json:"currentPage"`
	SortStrategy    string                    `json:"sortStrategy"`
	CountReviews    int                       `json:"countReviews"`
	DomainCode      string                    `json:"domainCode"`
	Filters         Filters                   `json:"filters"`
	CountRatings    *int                      `json:"countRatings"`
	ProductRating   *string                   `json:"productRating"`
	ReviewSummary   map[string]StarPercentage `json:"reviewSummary"`
	ReviewID        *string                   `json:"reviewId"`
	Text            *string                   `json:"text"`
	Date            *string                   `json:"date"`
	Rating          *string                   `json:"rating"`
	Title           *string                   `json:"title"`
	UserName        *string                   `json:"userName"`
	NumberOfHelpful *int                      `json:"numberOfHelpful"`
	VariationID     *string                   `json:"variationId"`
	ImageURLList    []string                  `json:"imageUrlList"`
	VideoURLList    []string                  `json:"videoUrlList"`
	VariationList   []string                  `json:"variationList"`
	Verified        *bool                     `json:"verified"`
	Vine            *bool                     `json:"vine"`
}

// ProductInfo holds product metadata parsed from a reviews page
type ProductInfo struct {
	Title *string
}

// SummaryInfo holds the rating summary parsed from a reviews page
type SummaryInfo struct {
	ProductRating *string
	CountRatings  *int
	// Summary is nil when no distribution bar matched.
	Summary map[string]StarPercentage
}

// ReviewFields are the per-review values parsed from one review entry.
// Multi-valued fields are nil rather than empty.
type ReviewFields struct {
	ID          *string
	Title       *string
	Rating      *string
	UserName    *string
	Date        *string
	Text        *string
	Helpful     *int
	Verified    bool
	Vine        bool
	Images      []string
	Videos      []string
	Variations  []string
	VariationID *string
}

// Config holds the configuration for the scraper
type Config struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Proxy        string
	UserAgent    string
	PageDelayMin time.Duration
	PageDelayMax time.Duration
}

// DefaultUserAgent is sent unless the settings override it
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Timeout:      20 * time.Second,
		MaxRetries:   3,
		RetryBackoff: 500 * time.Millisecond,
		UserAgent:    DefaultUserAgent,
		PageDelayMin: 800 * time.Millisecond,
		PageDelayMax: 1800 * time.Millisecond,
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
