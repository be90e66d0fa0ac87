package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newCrawlCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Fetch configured feeds and index new entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			report, err := app.crawler.Run(cmd.Context(), force)
			if err != nil {
				return err
			}
			switch getOutput() {
			case OutputJSON:
				return writeJSON(os.Stdout, report)
			default:
				writeCrawlReport(os.Stdout, report)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Crawl even if the last crawl was recent")
	return cmd
}
