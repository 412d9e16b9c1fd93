package goquery

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/flyingtimes/presstran"
	"golang.org/x/net/html"
)

// DefaultMinTextLength is the shortest extracted body accepted as an
// article, in characters. Shorter matches are navigation, teasers, or
// boilerplate rather than article prose.
const DefaultMinTextLength = 200

// Ensure Extractor implements presstran.Extractor at compile time.
var _ presstran.Extractor = (*Extractor)(nil)

// Extractor applies content rules to raw documents using CSS selection.
// Extraction is deterministic: no IO, no clock, no randomness. The repair
// loop relies on identical (document, rule) inputs producing identical
// results.
type Extractor struct {
	// MinTextLength is the shortest body accepted as an article, in
	// characters. Zero selects DefaultMinTextLength.
	MinTextLength int

	// TitleSuffix is trimmed from document titles when present,
	// e.g. " - The Daily Chronicle".
	TitleSuffix string

	mu       sync.Mutex
	compiled map[string]cascadia.Selector
}

// NewExtractor creates an Extractor with default settings.
func NewExtractor() *Extractor {
	return &Extractor{
		MinTextLength: DefaultMinTextLength,
		compiled:      make(map[string]cascadia.Selector),
	}
}

// Extract evaluates one content rule against one document. The rule's
// selector locates the article body container; the first match wins.
func (e *Extractor) Extract(doc *presstran.RawDocument, rule presstran.ContentRule) *presstran.ExtractionResult {
	res := &presstran.ExtractionResult{
		DocID:       doc.ID,
		RuleVersion: rule.Version,
	}

	if strings.TrimSpace(doc.HTML) == "" {
		res.Status = presstran.ExtractionError
		res.Reason = "document is blank"
		return res
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		res.Status = presstran.ExtractionError
		res.Reason = "failed to parse HTML: " + err.Error()
		return res
	}

	matcher, err := e.matcher(rule.Selector)
	if err != nil {
		res.Status = presstran.ExtractionError
		res.Reason = "rule selector does not compile: " + err.Error()
		return res
	}

	res.Title = e.title(parsed)

	sel := parsed.FindMatcher(matcher).First()
	if sel.Length() == 0 {
		res.Status = presstran.ExtractionEmpty
		res.Reason = "rule matched no elements"
		return res
	}

	text := flatten(sel)
	if n := utf8.RuneCountInString(text); n < e.minTextLength() {
		res.Status = presstran.ExtractionEmpty
		res.Reason = fmt.Sprintf("extracted %d characters, need at least %d", n, e.minTextLength())
		return res
	}

	res.Status = presstran.ExtractionSuccess
	res.Text = text
	if content, err := goquery.OuterHtml(sel); err == nil {
		res.ContentHTML = content
	}
	return res
}

// matcher returns the compiled selector, caching compilations since the
// same rule is applied to every document in a corpus.
func (e *Extractor) matcher(selector string) (cascadia.Selector, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m, ok := e.compiled[selector]; ok {
		return m, nil
	}
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	if e.compiled == nil {
		e.compiled = make(map[string]cascadia.Selector)
	}
	e.compiled[selector] = m
	return m, nil
}

func (e *Extractor) minTextLength() int {
	if e.MinTextLength > 0 {
		return e.MinTextLength
	}
	return DefaultMinTextLength
}

func (e *Extractor) title(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if e.TitleSuffix != "" {
		title = strings.TrimSuffix(title, e.TitleSuffix)
	}
	return strings.TrimSpace(title)
}

// skipTags are elements whose text is never article prose.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"svg":      true,
}

// flatten renders a selection as plain text: each text fragment is
// trimmed, empty fragments are dropped, and the rest joined with newlines.
func flatten(sel *goquery.Selection) string {
	var lines []string
	for _, n := range sel.Nodes {
		collectText(n, &lines)
	}
	return strings.Join(lines, "\n")
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.ElementNode && skipTags[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*lines = append(*lines, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}
