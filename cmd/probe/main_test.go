package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsPage = `<html><body>
<div id="cm_cr-product_info"><h1>Probe Kettle</h1></div>
<div data-hook="review"><span class="a-profile-name">Ann</span></div>
<div data-hook="review"><span class="a-profile-name">Bob</span><span data-hook="avp-badge">Verified Purchase</span></div>
</body></html>`

func TestCountSelectors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reviewsPage))
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, c := range countSelectors(doc) {
		counts[c.Field] = c.Matches
	}
	assert.Equal(t, 1, counts["productTitle"])
	assert.Equal(t, 2, counts["review"])
	assert.Equal(t, 2, counts["userName"])
	assert.Equal(t, 1, counts["verified"])
	assert.Equal(t, 0, counts["vine"])
}

func TestSelectorReport_File(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(reviewsPage), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--file", page, "--settings", filepath.Join(dir, "none.json")})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "review")
	assert.Contains(t, out.String(), "Product: Probe Kettle")
}

func TestSelectorReport_NoSource(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--settings", filepath.Join(t.TempDir(), "none.json")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestSelectorReport_MalformedSettings(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(reviewsPage), 0o644))
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"network": {"proxy": "http://corp:3128"`), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--file", page, "--settings", settings})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings")
	assert.Empty(t, out.String())
}
