package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mdrahmanz/curator/analytics"
	"github.com/mdrahmanz/curator/config"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Run analytics reports",
}

var analyticsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a page-views report",
	Long: `Print a page-views report from the configured GA4 property. Without
GA_PROPERTY_ID and GA_ACCESS_TOKEN the built-in sample data is shown.

Examples:
  curator analytics report
  curator analytics report --start 7daysAgo --end today`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		ctx := context.Background()

		var reporter analytics.Reporter = analytics.Demo{}
		if cfg.AnalyticsConfigured() {
			reporter = analytics.NewGA4(cfg.GAAccessToken, cfg.GAEndpoint)
		} else {
			fmt.Println("⚠️  Analytics not configured, showing sample data")
		}

		rows, err := reporter.RunReport(ctx, analytics.Request{
			PropertyID: cfg.GAPropertyID,
			StartDate:  reportStart,
			EndDate:    reportEnd,
			Dimensions: []string{"pagePath"},
			Metrics:    []string{"screenPageViews", "activeUsers"},
		})
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan)
		fmt.Printf("%-50s %12s %12s\n", "PAGE", "VIEWS", "USERS")
		for _, row := range rows {
			page := ""
			if len(row.Dimensions) > 0 {
				page = row.Dimensions[0]
			}
			cyan.Printf("%-50s", page)
			for _, m := range row.Metrics {
				fmt.Printf(" %12s", m)
			}
			fmt.Println()
		}
	},
}

var (
	reportStart string
	reportEnd   string
)

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsReportCmd)

	analyticsReportCmd.Flags().StringVar(&reportStart, "start", "28daysAgo", "Report start date")
	analyticsReportCmd.Flags().StringVar(&reportEnd, "end", "today", "Report end date")
}
