package adapters

import (
	"context"
	"strings"

	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// BaseAdapter provides common functionality for site adapters: fetching pages
// through the retrying HTTP client and null-safe goquery helpers.
// Every helper returns nil for markup that is not there instead of an error.
type BaseAdapter struct {
	config     *types.Config
	logger     types.Logger
	httpClient *utils.HTTPClient
}

// NewBaseAdapter creates a new base adapter with an initialized HTTP client
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:     config,
		logger:     logger,
		httpClient: utils.NewHTTPClient(config, logger),
	}
}

// GetPageContent retrieves the HTML content of a page
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	return b.httpClient.Get(ctx, url)
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(content string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(content))
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}

// StrippedText joins the trimmed, non-empty text fragments under every node of
// sel with sep. A fragment is one text node.
func StrippedText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectFragments(n, &parts)
	}
	return strings.Join(parts, sep)
}

func collectFragments(node *html.Node, parts *[]string) {
	if node.Type == html.TextNode {
		if s := strings.TrimSpace(node.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectFragments(child, parts)
	}
}

// TextOf returns the stripped text of the first element matching selector
// under root, or nil when nothing matches.
func TextOf(root *goquery.Selection, selector, sep string) *string {
	el := root.Find(selector).First()
	if el.Length() == 0 {
		return nil
	}
	return utils.Ptr(StrippedText(el, sep))
}

// FirstTextOf tries each selector in order and returns the text of the first match
func FirstTextOf(root *goquery.Selection, sep string, selectors ...string) *string {
	for _, selector := range selectors {
		if text := TextOf(root, selector, sep); text != nil {
			return text
		}
	}
	return nil
}

// Exists reports whether any element under root matches selector
func Exists(root *goquery.Selection, selector string) bool {
	return root.Find(selector).Length() > 0
}

// AttrList collects the non-empty values of attr over every match of selector
// in document order. It returns nil, not an empty slice, when there are none.
func AttrList(root *goquery.Selection, selector, attr string) []string {
	var values []string
	root.Find(selector).Each(func(i int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok && v != "" {
			values = append(values, v)
		}
	})
	return values
}
