package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amazon-reviews-scraper/config"
	"amazon-reviews-scraper/extractor"
	"amazon-reviews-scraper/internal/types"
	"amazon-reviews-scraper/runner"
)

// emptyFetcher finds no reviews for any product
type emptyFetcher struct{}

func (emptyFetcher) FetchReviews(ctx context.Context, req extractor.Request) ([]types.ReviewRecord, error) {
	return nil, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := NewServer(config.Settings{}, logrus.New())
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReviews_Mock(t *testing.T) {
	ts := newTestServer(t)

	payload := []byte(`{"asin": "B000MOCK1", "mock": true, "maxPages": 1, "domainCode": "co.uk"}`)
	resp, err := http.Post(ts.URL+"/reviews", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Data)
	assert.Equal(t, "B000MOCK1", body.Data[0]["asin"])
	assert.Equal(t, "co.uk", body.Data[0]["domainCode"])
}

func TestReviews_Invalid(t *testing.T) {
	ts := newTestServer(t)

	for _, payload := range []string{`{"mock": true}`, `not json`, `{"asin": "A1", "maxPages": 0}`} {
		resp, err := http.Post(ts.URL+"/reviews", "application/json", bytes.NewReader([]byte(payload)))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
	}
}

func TestReviews_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/reviews")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestReviews_NoRecordsKeepsDataKey(t *testing.T) {
	logger := logrus.New()
	server := &Server{
		logger:  logger,
		runner:  runner.NewRunner(emptyFetcher{}, config.Settings{}, config.Overrides{}, logger),
		timeout: time.Minute,
	}
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/reviews", "application/json", bytes.NewReader([]byte(`{"asin": "B000NONE1"}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "data": []}`, string(body))
}
