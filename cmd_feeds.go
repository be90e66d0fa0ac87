package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newFeedsCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feeds",
		Short: "List stored feeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			feeds, err := app.store.ListFeeds(cmd.Context())
			if err != nil {
				return err
			}
			switch getOutput() {
			case OutputJSON:
				return writeJSON(os.Stdout, feeds)
			case OutputWide:
				writeFeedsTable(os.Stdout, feeds, true)
			default:
				writeFeedsTable(os.Stdout, feeds, false)
			}
			return nil
		},
	}
	return cmd
}

func newEntriesCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries [feed-id]",
		Short: "List stored entries, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			var feedID int64
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				feedID = id
			}
			entries, err := app.store.ListEntries(cmd.Context(), feedID)
			if err != nil {
				return err
			}
			switch getOutput() {
			case OutputJSON:
				return writeJSON(os.Stdout, entries)
			case OutputWide:
				writeEntriesTable(os.Stdout, entries, true)
			default:
				writeEntriesTable(os.Stdout, entries, false)
			}
			return nil
		},
	}
	return cmd
}

func newExportCmd(getApp func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored feeds as OPML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			feeds, err := app.store.ListFeeds(cmd.Context())
			if err != nil {
				return err
			}
			return WriteOPML(os.Stdout, feeds)
		},
	}
	return cmd
}
