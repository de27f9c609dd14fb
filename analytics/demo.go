package analytics

import "context"

// Demo serves a fixed dataset so the analytics page renders without a GA
// property. Used in demo mode and whenever analytics is unconfigured.
type Demo struct{}

func (Demo) RunReport(ctx context.Context, req Request) ([]Row, error) {
	return []Row{
		{Dimensions: []string{"/"}, Metrics: []string{"1843", "1211"}},
		{Dimensions: []string{"/posts/launching-the-new-portfolio"}, Metrics: []string{"1204", "987"}},
		{Dimensions: []string{"/posts/notes-on-schema-inference"}, Metrics: []string{"356", "301"}},
		{Dimensions: []string{"/projects"}, Metrics: []string{"220", "178"}},
		{Dimensions: []string{"/about"}, Metrics: []string{"97", "84"}},
	}, nil
}
