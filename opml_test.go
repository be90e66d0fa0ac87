package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadOPMLRoundTrip(t *testing.T) {
	feeds := []Feed{
		{
			ID:        1,
			Title:     "A Blog",
			SiteURL:   "https://a.example.com",
			FeedURL:   "https://a.example.com/atom.xml",
			ConfigURL: "https://a.example.com/atom.xml",
		},
		{
			ID:        2,
			Title:     "",
			SiteURL:   "https://b.example.com",
			FeedURL:   "",
			ConfigURL: "https://b.example.com/rss",
		},
	}

	var buf bytes.Buffer
	if err := WriteOPML(&buf, feeds); err != nil {
		t.Fatalf("write opml: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `xmlUrl="https://a.example.com/atom.xml"`) {
		t.Fatalf("missing feed url in output:\n%s", out)
	}
	// Feed without a discovered URL falls back to the configured one.
	if !strings.Contains(out, `xmlUrl="https://b.example.com/rss"`) {
		t.Fatalf("missing config url fallback in output:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "subs.opml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	urls, err := ReadOPML(path)
	if err != nil {
		t.Fatalf("read opml: %v", err)
	}
	want := []string{"https://a.example.com/atom.xml", "https://b.example.com/rss"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %v", len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("url %d: got %q want %q", i, urls[i], want[i])
		}
	}
}

func TestReadOPMLNestedAndDuplicates(t *testing.T) {
	doc := `<?xml version="1.0"?>
<opml version="1.0">
  <body>
    <outline text="Tech">
      <outline text="A" type="rss" xmlUrl="https://a.example.com/feed"/>
      <outline text="Nested">
        <outline text="B" type="rss" xmlurl="https://b.example.com/feed"/>
      </outline>
    </outline>
    <outline text="A again" type="rss" xmlUrl="https://a.example.com/feed"/>
  </body>
</opml>`

	path := filepath.Join(t.TempDir(), "nested.opml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	urls, err := ReadOPML(path)
	if err != nil {
		t.Fatalf("read opml: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected nested walk with dedup, got %v", urls)
	}
	if urls[0] != "https://a.example.com/feed" || urls[1] != "https://b.example.com/feed" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}
