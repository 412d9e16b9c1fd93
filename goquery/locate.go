package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/flyingtimes/presstran"
	"golang.org/x/net/html"
)

// locateSnippetLen is how much of the content text is used as the
// fingerprint when searching the original DOM.
const locateSnippetLen = 40

// Locate finds the tightest identifiable container in rawHTML whose text
// holds the given content. Generic readers report WHAT the article text is;
// Locate answers WHERE it lives in the original markup, so the finding can
// be turned into a selector.
func Locate(rawHTML, contentText string) (*presstran.ContentHint, bool) {
	normalized := normalizeSpace(contentText)
	if utf8.RuneCountInString(normalized) < locateSnippetLen {
		return nil, false
	}
	snippet := headRunes(normalized, locateSnippetLen)
	minLen := utf8.RuneCountInString(normalized) * 3 / 5

	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, false
	}
	body := findBody(root)
	if body == nil {
		body = root
	}

	// Descend toward the deepest element that still contains the snippet
	// and holds the bulk of the content text.
	node := body
	depth := 0
	for {
		var next *html.Node
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || skipTags[c.Data] {
				continue
			}
			if textLen(c) < minLen {
				continue
			}
			if !strings.Contains(normalizeSpace(flattenNode(c)), snippet) {
				continue
			}
			next = c
			break
		}
		if next == nil {
			break
		}
		node = next
		depth++
	}

	if node == body {
		return nil, false
	}

	// Walk back up until the container is identifiable enough to name.
	for n, d := node, depth; n != nil && d >= 0; n, d = n.Parent, d-1 {
		if hint, ok := hintFor(n, d); ok {
			return &hint, true
		}
	}
	return nil, false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func flattenNode(n *html.Node) string {
	var lines []string
	collectText(n, &lines)
	return strings.Join(lines, " ")
}
