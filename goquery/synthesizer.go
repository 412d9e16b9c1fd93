package goquery

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"github.com/flyingtimes/presstran"
	"golang.org/x/net/html"
)

// maxFailingSamples bounds how many failing documents the synthesizer
// inspects per revision. Scoring still runs over the whole corpus.
const maxFailingSamples = 5

// Ensure Synthesizer implements presstran.RuleSynthesizer at compile time.
var _ presstran.RuleSynthesizer = (*Synthesizer)(nil)

// Synthesizer derives content rules from corpus evidence. Candidates come
// from three places: container patterns harvested from failing documents,
// hints from an optional rule-free prober, and conventional seed selectors.
// Each candidate is scored by replaying extraction over the corpus; the
// highest projected success count wins, with ties going to the shallower
// and then lexically smaller selector.
type Synthesizer struct {
	extractor presstran.Extractor
	prober    presstran.ContentProber
	seeds     []string
}

// NewSynthesizer creates a Synthesizer that scores candidates with the
// given extractor. The prober is optional and may be nil.
func NewSynthesizer(extractor presstran.Extractor, prober presstran.ContentProber) *Synthesizer {
	return &Synthesizer{
		extractor: extractor,
		prober:    prober,
		seeds:     DefaultSeedSelectors,
	}
}

// candidate is one scored rule proposal.
type candidate struct {
	selector string
	source   string
	depth    int
	score    int
}

// Synthesize proposes a rule projected to extract more documents than prev.
// With a nil prev it always returns a concrete bootstrap rule. It never
// proposes prev's own selector; when nothing is projected to improve on
// prev it returns ESTALLED.
func (s *Synthesizer) Synthesize(ctx context.Context, corpus []*presstran.RawDocument, report *presstran.ExtractionReport, prev *presstran.ContentRule) (presstran.ContentRule, error) {
	candidates := s.gather(ctx, corpus, report)

	scored := make([]*candidate, 0, len(candidates))
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return presstran.ContentRule{}, err
		}
		if prev != nil && cand.selector == prev.Selector {
			continue
		}
		if _, err := cascadia.Compile(cand.selector); err != nil {
			continue
		}
		cand.score = s.project(cand.selector, corpus)
		scored = append(scored, cand)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].depth != scored[j].depth {
			return scored[i].depth < scored[j].depth
		}
		return scored[i].selector < scored[j].selector
	})

	if prev == nil {
		if len(scored) == 0 || scored[0].score == 0 {
			return presstran.ContentRule{Version: 1, Selector: s.seeds[0], Source: presstran.RuleSourceSeed}, nil
		}
		best := scored[0]
		return presstran.ContentRule{Version: 1, Selector: best.selector, Source: best.source}, nil
	}

	prevScore, total := 0, len(corpus)
	if report != nil {
		prevScore, total = report.Succeeded, report.Total
	}
	if len(scored) == 0 || scored[0].score <= prevScore {
		return presstran.ContentRule{}, presstran.Errorf(presstran.ESTALLED,
			"no candidate improves on rule v%d (%d/%d extracted)", prev.Version, prevScore, total)
	}

	best := scored[0]
	return presstran.ContentRule{
		Version:  prev.Version + 1,
		Selector: best.selector,
		Source:   best.source,
	}, nil
}

// gather collects candidate selectors in a deterministic order,
// deduplicated by selector with the shallowest observed depth kept.
func (s *Synthesizer) gather(ctx context.Context, corpus []*presstran.RawDocument, report *presstran.ExtractionReport) []*candidate {
	bySelector := make(map[string]*candidate)
	var ordered []*candidate

	add := func(selector, source string, depth int) {
		if selector == "" {
			return
		}
		if existing, ok := bySelector[selector]; ok {
			if depth < existing.depth {
				existing.depth = depth
			}
			return
		}
		cand := &candidate{selector: selector, source: source, depth: depth}
		bySelector[selector] = cand
		ordered = append(ordered, cand)
	}

	// Seeds enter first at depth zero: score ties prefer the conventional
	// pattern, and a harvested duplicate keeps seed provenance.
	for _, seed := range s.seeds {
		add(seed, presstran.RuleSourceSeed, 0)
	}

	for _, doc := range failingSample(corpus, report) {
		if ctx.Err() != nil {
			break
		}
		for _, hint := range harvest(doc.HTML) {
			add(hint.Selector(), presstran.RuleSourceSynthesized, hint.Depth)
		}
		if s.prober != nil {
			if hint, err := s.prober.Probe(doc.HTML); err == nil && hint != nil {
				add(hint.Selector(), presstran.RuleSourceSynthesized, hint.Depth)
			}
		}
	}

	return ordered
}

// project counts how many corpus documents would extract successfully
// under the candidate selector.
func (s *Synthesizer) project(selector string, corpus []*presstran.RawDocument) int {
	rule := presstran.ContentRule{Selector: selector}
	n := 0
	for _, doc := range corpus {
		if res := s.extractor.Extract(doc, rule); res.Status == presstran.ExtractionSuccess {
			n++
		}
	}
	return n
}

// failingSample returns up to maxFailingSamples failing documents in
// corpus order. With no report yet, every document counts as failing.
func failingSample(corpus []*presstran.RawDocument, report *presstran.ExtractionReport) []*presstran.RawDocument {
	if report == nil || len(report.Failing) == 0 {
		if len(corpus) <= maxFailingSamples {
			return corpus
		}
		return corpus[:maxFailingSamples]
	}

	failing := make(map[string]bool, len(report.Failing))
	for _, id := range report.Failing {
		failing[id] = true
	}

	var sample []*presstran.RawDocument
	for _, doc := range corpus {
		if !failing[doc.ID] {
			continue
		}
		sample = append(sample, doc)
		if len(sample) == maxFailingSamples {
			break
		}
	}
	return sample
}

// harvest proposes container hints from one document: it descends from the
// body along the child holding the bulk of the page text to find the
// tightest container of the main prose, then proposes that element and
// every identifiable ancestor on the way back up.
func harvest(rawHTML string) []presstran.ContentHint {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	body := findBody(root)
	if body == nil {
		body = root
	}

	node := body
	for {
		child, childLen := dominantChild(node)
		if child == nil || childLen < DefaultMinTextLength {
			break
		}
		// The child must hold at least 70% of the text at this level,
		// otherwise the prose is split between siblings and descending
		// further would cut the article apart.
		if childLen*10 < textLen(node)*7 {
			break
		}
		node = child
	}

	var chain []*html.Node
	for n := node; n != nil; n = n.Parent {
		chain = append(chain, n)
		if n == body {
			break
		}
	}

	var hints []presstran.ContentHint
	for i, n := range chain {
		depth := len(chain) - 1 - i
		if hint, ok := hintFor(n, depth); ok {
			hints = append(hints, hint)
		}
	}
	return hints
}

// hintFor renders an element as a hint when it is identifiable enough to
// make a plausible selector: an id, a class, or a semantic container tag.
func hintFor(n *html.Node, depth int) (presstran.ContentHint, bool) {
	if n.Type != html.ElementNode {
		return presstran.ContentHint{}, false
	}

	hint := presstran.ContentHint{Tag: n.Data, Depth: depth}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			hint.ID = strings.TrimSpace(attr.Val)
		case "class":
			hint.Class = distinctiveClass(attr.Val)
		}
	}

	if hint.ID != "" || hint.Class != "" {
		return hint, true
	}
	if n.Data == "article" || n.Data == "main" {
		return hint, true
	}
	return presstran.ContentHint{}, false
}

// distinctiveClass picks the longest class token, on the theory that
// semantic names ("article-content-body") run longer than presentational
// utilities ("mt-4"). Ties keep the earlier token.
func distinctiveClass(classAttr string) string {
	best := ""
	for _, token := range strings.Fields(classAttr) {
		if len(token) > len(best) {
			best = token
		}
	}
	return best
}

func dominantChild(n *html.Node) (*html.Node, int) {
	var best *html.Node
	bestLen := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || skipTags[c.Data] {
			continue
		}
		if l := textLen(c); l > bestLen {
			best, bestLen = c, l
		}
	}
	return best, bestLen
}

func textLen(n *html.Node) int {
	if n.Type == html.ElementNode && skipTags[n.Data] {
		return 0
	}
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(strings.TrimSpace(n.Data))
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLen(c)
	}
	return total
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
