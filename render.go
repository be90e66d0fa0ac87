package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultsTable(out io.Writer, resp *SearchResponse, wide bool) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(out, "no results")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "SCORE\tTITLE\tDATE\tAUTHOR\tFEED\tLINK")
		for _, r := range resp.Results {
			fmt.Fprintf(
				tw,
				"%.3f\t%s\t%s\t%s\t%s\t%s\n",
				r.Score,
				compactText(r.Title, 56),
				fallback(r.PublishedFormatted, "-"),
				compactText(fallback(r.Author, "-"), 24),
				compactText(r.FeedTitle, 24),
				compactText(r.Link, 60),
			)
		}
	} else {
		fmt.Fprintln(tw, "SCORE\tTITLE\tDATE\tFEED")
		for _, r := range resp.Results {
			fmt.Fprintf(
				tw,
				"%.3f\t%s\t%s\t%s\n",
				r.Score,
				compactText(r.Title, 56),
				fallback(r.PublishedFormatted, "-"),
				compactText(r.FeedTitle, 24),
			)
		}
	}
	_ = tw.Flush()
	if resp.Cached {
		fmt.Fprintln(out, "(served from cache)")
	}
}

func writeFeedsTable(out io.Writer, feeds []Feed, wide bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "ID\tTITLE\tSITE_URL\tFEED_URL\tCONFIG_URL")
		for _, f := range feeds {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%s\t%s\t%s\n",
				f.ID,
				compactText(fallback(f.Title, f.ConfigURL), 30),
				compactText(f.SiteURL, 46),
				compactText(f.FeedURL, 46),
				compactText(f.ConfigURL, 46),
			)
		}
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tSITE_URL")
		for _, f := range feeds {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%s\n",
				f.ID,
				compactText(fallback(f.Title, f.ConfigURL), 30),
				compactText(f.SiteURL, 46),
			)
		}
	}
	_ = tw.Flush()
}

func writeEntriesTable(out io.Writer, entries []Entry, wide bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "ID\tFEED\tTITLE\tDATE\tAUTHOR\tLINK")
		for _, e := range entries {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%s\t%s\t%s\t%s\n",
				e.ID,
				compactText(e.FeedTitle, 24),
				compactText(fallback(e.Title, e.Link), 56),
				formatDate(e.Published),
				compactText(fallback(e.Author, "-"), 24),
				compactText(e.Link, 60),
			)
		}
	} else {
		fmt.Fprintln(tw, "ID\tFEED\tTITLE\tDATE")
		for _, e := range entries {
			fmt.Fprintf(
				tw,
				"%d\t%s\t%s\t%s\n",
				e.ID,
				compactText(e.FeedTitle, 24),
				compactText(fallback(e.Title, e.Link), 56),
				formatDate(e.Published),
			)
		}
	}
	_ = tw.Flush()
}

func writeCrawlReport(out io.Writer, report CrawlReport) {
	if !report.Ran {
		fmt.Fprintln(out, "crawl skipped: too soon since last crawl (use --force to override)")
		return
	}
	fmt.Fprintf(
		out,
		"crawl finished in %s: %d feeds fetched, %d skipped, %d new entries, %d documents indexed\n",
		report.EndedAt.Sub(report.StartedAt).Round(time.Millisecond),
		report.FeedsFetched,
		report.FeedsSkipped,
		report.NewEntries,
		report.Indexed,
	)
}
