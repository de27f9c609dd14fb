package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGA4RunReport(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody ga4Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"rows": [
				{"dimensionValues": [{"value": "/"}], "metricValues": [{"value": "100"}, {"value": "80"}]},
				{"dimensionValues": [{"value": "/about"}], "metricValues": [{"value": "20"}, {"value": "15"}]}
			]
		}`))
	}))
	defer server.Close()

	ga := NewGA4("token-abc", server.URL)
	rows, err := ga.RunReport(context.Background(), Request{
		PropertyID: "123456",
		StartDate:  "7daysAgo",
		EndDate:    "today",
		Dimensions: []string{"pagePath"},
		Metrics:    []string{"screenPageViews", "activeUsers"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/properties/123456:runReport", gotPath)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	require.Len(t, gotBody.DateRanges, 1)
	assert.Equal(t, "7daysAgo", gotBody.DateRanges[0].StartDate)
	require.Len(t, gotBody.Metrics, 2)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"/"}, rows[0].Dimensions)
	assert.Equal(t, []string{"100", "80"}, rows[0].Metrics)
}

func TestGA4RunReportErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid property"}`, http.StatusForbidden)
	}))
	defer server.Close()

	ga := NewGA4("token", server.URL)
	_, err := ga.RunReport(context.Background(), Request{PropertyID: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGA4RequiresPropertyID(t *testing.T) {
	ga := NewGA4("token", "http://unused")
	_, err := ga.RunReport(context.Background(), Request{})
	assert.Error(t, err)
}

func TestDemoReporterAlwaysReturnsRows(t *testing.T) {
	rows, err := Demo{}.RunReport(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
	for _, row := range rows {
		assert.Len(t, row.Metrics, 2)
	}
}
