package analytics

import "context"

// Request describes one report query.
type Request struct {
	PropertyID string
	StartDate  string // YYYY-MM-DD or GA relative forms like "7daysAgo"
	EndDate    string
	Dimensions []string
	Metrics    []string
}

// Row is one result row: dimension values followed by metric values, in
// request order.
type Row struct {
	Dimensions []string
	Metrics    []string
}

// Reporter runs analytics reports. The studio swaps implementations per
// request mode: the GA4 client when live and configured, the demo dataset
// otherwise.
type Reporter interface {
	RunReport(ctx context.Context, req Request) ([]Row, error)
}
