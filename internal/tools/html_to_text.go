package tools

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlToText flattens markup in a search snippet to plain text. Input without
// any tags is only whitespace-compacted.
func htmlToText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return compactWhitespace(s)
	}
	node, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return compactWhitespace(s)
	}
	var b strings.Builder
	extractText(node, &b, false)
	return compactWhitespace(b.String())
}

func extractText(n *html.Node, b *strings.Builder, inHidden bool) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			inHidden = true
		case "br", "p", "div", "li", "tr":
			b.WriteString("\n")
		}
	}
	if !inHidden && n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, b, inHidden)
	}
}

// compactWhitespace collapses runs of spaces and drops blank lines.
func compactWhitespace(s string) string {
	s = strings.NewReplacer("\t", " ", "\r", " ").Replace(s)
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.Join(strings.Fields(ln), " "); ln != "" {
			out = append(out, ln)
		}
	}
	return strings.Join(out, " ")
}
