package analytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const defaultEndpoint = "https://analyticsdata.googleapis.com/v1beta"

// GA4 talks to the Google Analytics Data API runReport endpoint over plain
// JSON HTTP. The endpoint is configurable so tests can point it at a local
// server.
type GA4 struct {
	endpoint    string
	accessToken string
	client      *http.Client
}

func NewGA4(accessToken string, endpoint string) *GA4 {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &GA4{
		endpoint:    endpoint,
		accessToken: accessToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type ga4Name struct {
	Name string `json:"name"`
}

type ga4DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ga4Request struct {
	DateRanges []ga4DateRange `json:"dateRanges"`
	Dimensions []ga4Name      `json:"dimensions,omitempty"`
	Metrics    []ga4Name      `json:"metrics"`
}

type ga4Response struct {
	Rows []struct {
		DimensionValues []struct {
			Value string `json:"value"`
		} `json:"dimensionValues"`
		MetricValues []struct {
			Value string `json:"value"`
		} `json:"metricValues"`
	} `json:"rows"`
}

func (g *GA4) RunReport(ctx context.Context, req Request) ([]Row, error) {
	if req.PropertyID == "" {
		return nil, fmt.Errorf("analytics: no property id")
	}

	payload := ga4Request{
		DateRanges: []ga4DateRange{{StartDate: req.StartDate, EndDate: req.EndDate}},
	}
	for _, d := range req.Dimensions {
		payload.Dimensions = append(payload.Dimensions, ga4Name{Name: d})
	}
	for _, m := range req.Metrics {
		payload.Metrics = append(payload.Metrics, ga4Name{Name: m})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding report request: %w", err)
	}

	url := fmt.Sprintf("%s/properties/%s:runReport", g.endpoint, req.PropertyID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building report request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.accessToken)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("running report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analytics API returned %d: %s", resp.StatusCode, snippet)
	}

	var out ga4Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding report response: %w", err)
	}

	rows := make([]Row, 0, len(out.Rows))
	for _, r := range out.Rows {
		row := Row{}
		for _, v := range r.DimensionValues {
			row.Dimensions = append(row.Dimensions, v.Value)
		}
		for _, v := range r.MetricValues {
			row.Metrics = append(row.Metrics, v.Value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
