package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newSearchCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var sortKey string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			resp, err := app.searcher.Search(cmd.Context(), args[0], sortKey)
			if err != nil {
				return err
			}
			switch getOutput() {
			case OutputJSON:
				return writeJSON(os.Stdout, resp)
			case OutputWide:
				writeResultsTable(os.Stdout, resp, true)
			default:
				writeResultsTable(os.Stdout, resp, false)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", SortRelevance, "Sort order: relevance or date")
	return cmd
}
