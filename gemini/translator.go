// Package gemini implements the translation capability and token counting
// using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/flyingtimes/presstran"
	"google.golang.org/genai"
)

// DefaultModel is used when the translation config does not name one.
const DefaultModel = "gemini-3-flash-preview"

// Ensure Translator implements presstran.Translator at compile time.
var _ presstran.Translator = (*Translator)(nil)

// Translator implements presstran.Translator using Google Gemini. The
// model, system instruction, and sampling parameters are fixed at
// construction from one TranslationConfig; every call in a run is
// configured identically so the translated corpus reads uniformly.
type Translator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewTranslator creates a Translator bound to the given configuration.
func NewTranslator(client *genai.Client, cfg *presstran.TranslationConfig) (*Translator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Translator{
		client: client,
		model:  model,
		config: BuildConfig(cfg),
	}, nil
}

// Translate translates one article body. Each call carries exactly one
// article; callers never batch multiple articles into a single request.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", presstran.Errorf(presstran.EINVALID, "text required")
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		t.config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", presstran.Errorf(presstran.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig derived from a translation
// configuration. The same value is reused for every call in a run.
func BuildConfig(cfg *presstran.TranslationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildSystemInstruction(cfg)}},
		},
	}
	if cfg.Temperature != nil {
		temp := *cfg.Temperature
		out.Temperature = &temp
	}
	return out
}

// BuildSystemInstruction renders the fixed style contract for a run: the
// target language, tone, and formatting conventions, enumerated once.
func BuildSystemInstruction(cfg *presstran.TranslationConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a professional translator. Translate the article you are given into %s.\n", cfg.Target)
	sb.WriteString("Translate the complete article. Do not summarize, add commentary, or answer questions about it.\n")
	if cfg.Tone != "" {
		fmt.Fprintf(&sb, "Tone and style: %s\n", cfg.Tone)
	}
	if len(cfg.Formatting) > 0 {
		sb.WriteString("Formatting rules:\n")
		for _, rule := range cfg.Formatting {
			fmt.Fprintf(&sb, "- %s\n", rule)
		}
	}
	sb.WriteString("Return only the translated article text.")
	return sb.String()
}

// BuildUserPrompt wraps one article body for translation.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<article>\n")
	sb.WriteString(text)
	sb.WriteString("\n</article>")
	return sb.String()
}
