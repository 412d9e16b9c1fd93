package main

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Parse(t *testing.T) {
	t.Parallel()

	parse := func(t *testing.T, args ...string) *CLI {
		t.Helper()
		cli := &CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse(args)
		require.NoError(t, err)
		return cli
	}

	t.Run("extract defaults", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "extract", "corpus")

		assert.Equal(t, "corpus", cli.Extract.Corpus)
		assert.Equal(t, ".", cli.Extract.Out)
		assert.Equal(t, 3, cli.Extract.Tolerance)
		assert.Equal(t, 5, cli.Extract.MaxIterations)
		assert.Equal(t, 200, cli.Extract.MinLength)
		assert.Equal(t, 10, cli.Extract.Concurrency)
		assert.Equal(t, "trafilatura", cli.Extract.Prober)
		assert.False(t, cli.Extract.Markdown)
	})

	t.Run("extract flags", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "extract", "corpus",
			"--rule", ".article-body", "--tolerance", "0", "--prober", "none", "--markdown")

		assert.Equal(t, ".article-body", cli.Extract.Rule)
		assert.Zero(t, cli.Extract.Tolerance)
		assert.Equal(t, "none", cli.Extract.Prober)
		assert.True(t, cli.Extract.Markdown)
	})

	t.Run("rejects an unknown prober", func(t *testing.T) {
		t.Parallel()

		cli := &CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"extract", "corpus", "--prober", "magic"})
		assert.Error(t, err)
	})

	t.Run("translate defaults", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "translate")

		assert.Equal(t, "articles", cli.Translate.Articles)
		assert.Equal(t, 5*time.Minute, cli.Translate.Timeout)
		assert.InDelta(t, 0.5, cli.Translate.RPS, 0.001)
	})

	t.Run("run composes both stages", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "run", "corpus", "-o", "out", "--target", "fr", "--tolerance", "1")

		extract := cli.Run.extract()
		assert.Equal(t, "corpus", extract.Corpus)
		assert.Equal(t, "out", extract.Out)
		assert.Equal(t, 1, extract.Tolerance)

		translate := cli.Run.translate()
		assert.Equal(t, "out/articles", translate.Articles)
		assert.Equal(t, "out", translate.Out)
		assert.Equal(t, "fr", translate.Target)
	})
}

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	t.Run("defaults to Chinese with a fixed style", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadStyle("", "", "")
		require.NoError(t, err)

		assert.Equal(t, "zh-CN", cfg.Target)
		assert.NotEmpty(t, cfg.Tone)
		assert.NotEmpty(t, cfg.Formatting)
	})

	t.Run("flag overrides win over defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadStyle("", "ja", "some-model")
		require.NoError(t, err)

		assert.Equal(t, "ja", cfg.Target)
		assert.Equal(t, "some-model", cfg.Model)
	})

	t.Run("rejects an invalid target", func(t *testing.T) {
		t.Parallel()

		_, err := LoadStyle("", "not a language", "")
		assert.Error(t, err)
	})
}
