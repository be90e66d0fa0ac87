package main

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// ErrEmptyContent reports that normalization produced no text at all. Callers
// are expected to try the fallback scraper before giving up on an entry.
var ErrEmptyContent = errors.New("empty content")

// NormalizeContent strips markup from raw entry content and returns the
// single-spaced plain text together with its sha256 fingerprint.
func NormalizeContent(raw string) (string, string, error) {
	text := CleanText(raw)
	if text == "" {
		return "", "", ErrEmptyContent
	}
	return text, fingerprint(text), nil
}

// CleanText reduces HTML (or plain text) to whitespace-collapsed text.
// Script and style subtrees are dropped entirely.
func CleanText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader("<body>" + raw + "</body>"))
	if err != nil {
		return collapseWhitespace(raw)
	}
	body := findBodyNode(doc)
	if body == nil {
		return collapseWhitespace(raw)
	}

	var b strings.Builder
	collectText(body, &b)
	return collapseWhitespace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style":
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func findBodyNode(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "body") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBodyNode(c); b != nil {
			return b
		}
	}
	return nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
