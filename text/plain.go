// Package text turns chapter markup into plain text.
package text

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var (
	paragraphBoundary = strings.NewReplacer("</p><p", "</p>\n<p")
	lineBreakRun      = regexp.MustCompile(`[\r\n]+`)
)

// LineBreak separates paragraphs in the produced text.
const LineBreak = "\r\n\r\n"

// Plain strips all markup from body. Every non-blank text node becomes its own
// paragraph and any run of line breaks is widened to a single blank line. The
// result is NFC-normalised, so decomposed sequences in body come back composed.
func Plain(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(paragraphBoundary.Replace(body)))
	if err != nil {
		return "", fmt.Errorf("failed to parse chapter body: %w", err)
	}
	doc.Find("script, style, img").Remove()

	var paragraphs []string
	for _, n := range doc.Nodes {
		collectStrings(n, &paragraphs)
	}
	text := strings.Join(paragraphs, "\n\n")
	text = lineBreakRun.ReplaceAllString(text, LineBreak)
	return norm.NFC.String(text), nil
}

func collectStrings(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*out = append(*out, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStrings(c, out)
	}
}
