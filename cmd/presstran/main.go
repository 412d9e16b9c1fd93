package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/gemini"
	presslog "github.com/flyingtimes/presstran/slog"
	"github.com/flyingtimes/presstran/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Optional overrides, set by end-to-end tests to avoid live API calls.
	Translator   presstran.Translator
	TokenCounter presstran.TokenCounter

	// Services for end-to-end testing.
	RuleService    presstran.RuleService
	ArticleService presstran.ArticleService
	TaskService    presstran.TaskService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("presstran"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'presstran --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PRESSTRAN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.RuleService = sqlite.NewRuleService(m.DB)
	m.ArticleService = sqlite.NewArticleService(m.DB)
	m.TaskService = sqlite.NewTaskService(m.DB)
	deps.DB = m.DB
	deps.Rules = m.RuleService
	deps.Articles = m.ArticleService
	deps.Tasks = m.TaskService

	// Wire command-specific dependencies based on command
	if cmd == "extract" || cmd == "run" {
		deps.TokenCounter = m.TokenCounter
		if deps.TokenCounter == nil {
			if counter, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
				deps.TokenCounter = counter
			}
			// Token counting is advisory; extraction proceeds without it.
		}
	}

	if cmd == "translate" || cmd == "run" {
		deps.Translator = m.Translator
		if deps.Translator == nil {
			style, err := translationStyle(cli, cmd)
			if err != nil {
				return err
			}
			translator, err := m.buildTranslator(ctx, style, stderr)
			if err != nil {
				return err
			}
			deps.Translator = presslog.NewLoggingTranslator(translator, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

// translationStyle resolves the fixed translation configuration for the
// invoked command.
func translationStyle(cli *CLI, cmd string) (*presstran.TranslationConfig, error) {
	if cmd == "run" {
		return LoadStyle(cli.Run.Config, cli.Run.Target, cli.Run.Model)
	}
	return LoadStyle(cli.Translate.Config, cli.Translate.Target, cli.Translate.Model)
}

// buildTranslator connects to the Gemini API with the run's fixed style.
func (m *Main) buildTranslator(ctx context.Context, style *presstran.TranslationConfig, stderr io.Writer) (presstran.Translator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewTranslator(client, style)
}

// tokenizerModel is used for token counting. Using gemini-2.5-flash until
// gemini-3-flash-preview is supported by google.golang.org/genai/tokenizer.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("PRESSTRAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "presstran.db"
	}
	dir := filepath.Join(home, ".presstran")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "presstran.db")
}
