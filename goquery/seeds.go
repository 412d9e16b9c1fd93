package goquery

// DefaultSeedSelectors are conventional article container patterns tried
// when no corpus evidence suggests anything better. Ordered from the most
// article-specific to the most generic; bootstrap runs with no signal fall
// back to the first entry.
var DefaultSeedSelectors = []string{
	".article-content-body",
	"article",
	".article-body",
	".post-content",
	".entry-content",
	"[data-event-surface='article']",
	"main",
	"div[role='main']",
	"#main",
	"#content",
	".markdown-body",
}
