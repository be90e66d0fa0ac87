package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "data/config.toml"

func NewRootCmd() *cobra.Command {
	var configPath string
	var output string
	var outFmt OutputFormat
	var app *App

	output = string(OutputTable)

	getApp := func() *App { return app }
	getOutput := func() OutputFormat { return outFmt }

	cmd := &cobra.Command{
		Use:           "feedseek",
		Short:         "Crawl configured feeds and search them locally",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsedFmt, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			outFmt = parsedFmt
			if !requiresApp(cmd) {
				return nil
			}
			if app != nil {
				return nil
			}
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			a, err := NewApp(cfg, os.Stderr)
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "TOML config file path")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", output, "Output format: table, json, wide")

	cmd.AddCommand(newCrawlCmd(getApp, getOutput))
	cmd.AddCommand(newSearchCmd(getApp, getOutput))
	cmd.AddCommand(newFeedsCmd(getApp, getOutput))
	cmd.AddCommand(newEntriesCmd(getApp, getOutput))
	cmd.AddCommand(newExportCmd(getApp))

	return cmd
}

func requireApp(getApp func() *App) (*App, error) {
	app := getApp()
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

func parseOutputFormat(raw string) (OutputFormat, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputWide:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected table|json|wide)", raw)
	}
}

func printCmdError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func requiresApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		name := c.Name()
		if name == "help" || name == "completion" {
			return false
		}
	}
	return true
}
