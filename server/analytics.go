package server

import (
	"net/http"

	"github.com/mdrahmanz/curator/analytics"
)

type analyticsPage struct {
	Title    string
	Demo     bool
	DemoData bool
	Rows     []analytics.Row
}

// handleAnalytics renders the page-views report. Live mode uses the GA4
// reporter when a property is configured; everything else falls back to the
// demo dataset so the page always renders.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	m := s.mode(r)

	reporter := m.Backend.Reports
	demoData := m.Demo
	if !m.Demo && !s.cfg.AnalyticsConfigured() {
		reporter = analytics.Demo{}
		demoData = true
	}

	rows, err := reporter.RunReport(r.Context(), analytics.Request{
		PropertyID: s.cfg.GAPropertyID,
		StartDate:  "28daysAgo",
		EndDate:    "today",
		Dimensions: []string{"pagePath"},
		Metrics:    []string{"screenPageViews", "activeUsers"},
	})
	if err != nil {
		// a broken GA call degrades to sample data rather than erroring the page
		s.log.Warn("analytics report failed, serving sample data")
		rows, _ = analytics.Demo{}.RunReport(r.Context(), analytics.Request{})
		demoData = true
	}

	s.render(w, "analytics", analyticsPage{Title: "Analytics", Demo: m.Demo, DemoData: demoData, Rows: rows})
}
