package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-reviews-scraper/internal/types"
)

func TestNewBaseAdapter(t *testing.T) {
	config := types.DefaultConfig()
	logger := logrus.New()

	adapter := NewBaseAdapter(config, logger)

	assert.NotNil(t, adapter)
	assert.Equal(t, config, adapter.Config())
	assert.NotNil(t, adapter.httpClient)
}

func TestBaseAdapter_GetPageContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div data-hook="review" id="R1"></div>`))
	}))
	defer server.Close()

	config := types.DefaultConfig()
	config.RetryBackoff = time.Millisecond
	adapter := NewBaseAdapter(config, logrus.New())

	content, err := adapter.GetPageContent(context.Background(), server.URL)
	require.NoError(t, err)

	doc, err := adapter.ParseHTML(content)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("div[data-hook='review']").Length())
}

func TestStrippedText(t *testing.T) {
	doc := mustParse(t, `<p id="x"> one <b> two </b><!-- hidden -->  <i></i> three </p>`)

	assert.Equal(t, "onetwothree", StrippedText(doc.Find("#x"), ""))
	assert.Equal(t, "one two three", StrippedText(doc.Find("#x"), " "))
	assert.Equal(t, "", StrippedText(doc.Find("#missing"), " "))
}

func TestTextOf(t *testing.T) {
	doc := mustParse(t, `<div><span class="a">first</span><span class="a">second</span><span class="empty"> </span></div>`)

	assert.Equal(t, "first", *TextOf(doc.Selection, "span.a", ""))
	assert.Equal(t, "", *TextOf(doc.Selection, "span.empty", ""))
	assert.Nil(t, TextOf(doc.Selection, "span.none", ""))
}

func TestFirstTextOf(t *testing.T) {
	doc := mustParse(t, `<div><em>fallback</em></div>`)

	assert.Equal(t, "fallback", *FirstTextOf(doc.Selection, "", "strong", "em"))
	assert.Nil(t, FirstTextOf(doc.Selection, "", "strong", "b"))
}

func TestAttrList(t *testing.T) {
	doc := mustParse(t, `<div><img src="a.jpg"><img><img src=""><img src="b.jpg"></div>`)

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, AttrList(doc.Selection, "img", "src"))
	assert.Nil(t, AttrList(doc.Selection, "video", "src"))
}

func TestExists(t *testing.T) {
	doc := mustParse(t, `<span data-hook="avp-badge">Verified Purchase</span>`)

	assert.True(t, Exists(doc.Selection, "span[data-hook='avp-badge']"))
	assert.False(t, Exists(doc.Selection, "span[data-hook='vine-review-badge']"))
}
