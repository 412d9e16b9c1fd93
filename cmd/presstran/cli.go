package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB       *sqlite.DB
	Rules    presstran.RuleService
	Articles presstran.ArticleService
	Tasks    presstran.TaskService

	Translator   presstran.Translator
	TokenCounter presstran.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	DB      string `help:"Ledger database path (default: $PRESSTRAN_DB or ~/.presstran/presstran.db)"`

	Extract   ExtractCmd   `cmd:"" help:"Extract article text from a raw HTML corpus, repairing the content rule as needed"`
	Translate TranslateCmd `cmd:"" help:"Translate extracted articles one at a time"`
	Run       RunCmd       `cmd:"" help:"Extract and then translate in one invocation"`
	Rules     RulesCmd     `cmd:"" help:"List recorded content rule versions"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Corpus        string `arg:"" help:"Directory of raw HTML artifacts"`
	Out           string `short:"o" default:"." help:"Base directory for the articles output"`
	Rule          string `help:"Starting CSS selector; bootstrapped from seed patterns when omitted"`
	Tolerance     int    `default:"3" help:"Failing documents a run may leave behind and still be accepted"`
	MaxIterations int    `default:"5" help:"Evaluation passes before the repair loop gives up"`
	MinLength     int    `default:"200" help:"Shortest extracted body accepted as an article, in characters"`
	Concurrency   int    `short:"c" default:"10" help:"Concurrent extraction limit"`
	TitleSuffix   string `help:"Publication suffix stripped from document titles"`
	Prober        string `default:"trafilatura" enum:"trafilatura,readability,none" help:"Rule-free prober feeding candidate hints to the synthesizer"`
	Markdown      bool   `help:"Store article bodies as markdown instead of plain text"`
}

// TranslateCmd is the "translate" subcommand.
type TranslateCmd struct {
	Articles string        `default:"articles" help:"Directory of extracted articles"`
	Out      string        `short:"o" default:"." help:"Base directory for the translated output"`
	Config   string        `help:"YAML file with the translation style configuration"`
	Target   string        `help:"Target language tag, e.g. zh-CN; overrides the config file"`
	Model    string        `help:"Capability model name; overrides the config file"`
	Timeout  time.Duration `default:"5m" help:"Per-article translation timeout"`
	RPS      float64       `name:"rps" default:"0.5" help:"Translation calls per second; 0 disables pacing"`
}

// RunCmd is the "run" subcommand: extract followed by translate.
type RunCmd struct {
	Corpus        string        `arg:"" help:"Directory of raw HTML artifacts"`
	Out           string        `short:"o" default:"." help:"Base directory for articles and translated output"`
	Rule          string        `help:"Starting CSS selector; bootstrapped from seed patterns when omitted"`
	Tolerance     int           `default:"3" help:"Failing documents a run may leave behind and still be accepted"`
	MaxIterations int           `default:"5" help:"Evaluation passes before the repair loop gives up"`
	MinLength     int           `default:"200" help:"Shortest extracted body accepted as an article, in characters"`
	Concurrency   int           `short:"c" default:"10" help:"Concurrent extraction limit"`
	TitleSuffix   string        `help:"Publication suffix stripped from document titles"`
	Prober        string        `default:"trafilatura" enum:"trafilatura,readability,none" help:"Rule-free prober feeding candidate hints to the synthesizer"`
	Markdown      bool          `help:"Store article bodies as markdown instead of plain text"`
	Config        string        `help:"YAML file with the translation style configuration"`
	Target        string        `help:"Target language tag, e.g. zh-CN; overrides the config file"`
	Model         string        `help:"Capability model name; overrides the config file"`
	Timeout       time.Duration `default:"5m" help:"Per-article translation timeout"`
	RPS           float64       `name:"rps" default:"0.5" help:"Translation calls per second; 0 disables pacing"`
}

// RulesCmd is the "rules" subcommand.
type RulesCmd struct{}

// extract returns the extraction stage configured by the run command.
func (c *RunCmd) extract() *ExtractCmd {
	return &ExtractCmd{
		Corpus:        c.Corpus,
		Out:           c.Out,
		Rule:          c.Rule,
		Tolerance:     c.Tolerance,
		MaxIterations: c.MaxIterations,
		MinLength:     c.MinLength,
		Concurrency:   c.Concurrency,
		TitleSuffix:   c.TitleSuffix,
		Prober:        c.Prober,
		Markdown:      c.Markdown,
	}
}

// translate returns the translation stage configured by the run command.
func (c *RunCmd) translate() *TranslateCmd {
	return &TranslateCmd{
		Articles: filepath.Join(c.Out, "articles"),
		Out:      c.Out,
		Config:   c.Config,
		Target:   c.Target,
		Model:    c.Model,
		Timeout:  c.Timeout,
		RPS:      c.RPS,
	}
}
