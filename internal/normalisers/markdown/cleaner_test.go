package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

func newCleaner(strategy domain.CleaningStrategy) *Cleaner {
	return New(Config{
		Strategy:                  strategy,
		PreserveCodeBlocks:        true,
		PreserveHeadingsAsContext: true,
	})
}

func TestNew_UnknownStrategyFallsBackToBalanced(t *testing.T) {
	c := New(Config{Strategy: domain.CleaningStrategy("extreme")})
	assert.Equal(t, domain.StrategyBalanced, c.Strategy())
}

func TestClean_EmptyContent(t *testing.T) {
	c := newCleaner(domain.StrategyBalanced)
	assert.Equal(t, "", c.Clean(""))
	assert.Equal(t, "", c.Clean("   "))
	assert.Equal(t, "", c.Clean("\n\n\t\n"))
}

func TestClean_Conservative(t *testing.T) {
	c := newCleaner(domain.StrategyConservative)

	t.Run("bold and italic", func(t *testing.T) {
		result := c.Clean("this is **bold** and *italic* text")
		assert.NotContains(t, result, "*")
		assert.Contains(t, result, "bold")
		assert.Contains(t, result, "italic")
	})

	t.Run("inline code", func(t *testing.T) {
		result := c.Clean("run `go test` locally")
		assert.NotContains(t, result, "`")
		assert.Contains(t, result, "go test")
	})

	t.Run("horizontal rules", func(t *testing.T) {
		result := c.Clean("above\n---\nbelow\n***\nend")
		assert.Contains(t, result, "above")
		assert.Contains(t, result, "below")
		assert.NotContains(t, result, "---")
		assert.NotContains(t, result, "***")
	})

	t.Run("link text survives", func(t *testing.T) {
		result := c.Clean("see [the docs](http://example.com) here")
		assert.Contains(t, result, "the docs")
	})
}

func TestClean_Balanced(t *testing.T) {
	c := newCleaner(domain.StrategyBalanced)

	t.Run("links keep text drop target", func(t *testing.T) {
		result := c.Clean("see [the docs](http://example.com) here")
		assert.Contains(t, result, "the docs")
		assert.NotContains(t, result, "example.com")
		assert.NotContains(t, result, "[")
		assert.NotContains(t, result, "]")
	})

	t.Run("reference links keep text", func(t *testing.T) {
		result := c.Clean("see [the docs][ref] here")
		assert.Contains(t, result, "the docs")
		assert.NotContains(t, result, "[ref]")
	})

	t.Run("images keep alt text", func(t *testing.T) {
		result := c.Clean("diagram ![system overview](arch.png) shown above")
		assert.Contains(t, result, "system overview")
		assert.NotContains(t, result, "arch.png")
		assert.NotContains(t, result, "!")
	})

	t.Run("blockquotes", func(t *testing.T) {
		result := c.Clean("> quoted wisdom")
		assert.NotContains(t, result, ">")
		assert.Contains(t, result, "quoted wisdom")
	})

	t.Run("bullet lists", func(t *testing.T) {
		result := c.Clean("- first\n* second\n+ third")
		assert.Contains(t, result, "first")
		assert.Contains(t, result, "second")
		assert.Contains(t, result, "third")
		assert.NotContains(t, result, "+")
	})

	t.Run("numbered lists", func(t *testing.T) {
		result := c.Clean("1. first\n2. second")
		assert.NotContains(t, result, "1.")
		assert.NotContains(t, result, "2.")
		assert.Contains(t, result, "first")
		assert.Contains(t, result, "second")
	})
}

func TestClean_Aggressive(t *testing.T) {
	c := newCleaner(domain.StrategyAggressive)

	t.Run("extended markers", func(t *testing.T) {
		result := c.Clean("~~strike~~ ==mark== ^sup^ ~sub~")
		assert.Contains(t, result, "strike")
		assert.Contains(t, result, "mark")
		assert.Contains(t, result, "sup")
		assert.Contains(t, result, "sub")
		assert.NotContains(t, result, "~")
		assert.NotContains(t, result, "==")
		assert.NotContains(t, result, "^")
	})

	t.Run("no structural symbols remain", func(t *testing.T) {
		result := c.Clean("# Title\n**bold** and *italic* text")
		assert.Contains(t, result, "Title")
		assert.Contains(t, result, "bold")
		assert.Contains(t, result, "italic")
		for _, symbol := range []string{"#", "*", "`"} {
			assert.NotContains(t, result, symbol)
		}
	})
}

func TestClean_CodeBlocks(t *testing.T) {
	content := "before\n```go\nfmt.Println(1)\n```\nafter"

	t.Run("preserved keeps inner code", func(t *testing.T) {
		c := New(Config{Strategy: domain.StrategyBalanced, PreserveCodeBlocks: true})
		result := c.Clean(content)
		assert.Contains(t, result, "fmt.Println(1)")
		assert.NotContains(t, result, "```")
		assert.NotContains(t, result, "go\n")
	})

	t.Run("dropped removes whole block", func(t *testing.T) {
		c := New(Config{Strategy: domain.StrategyBalanced, PreserveCodeBlocks: false})
		result := c.Clean(content)
		assert.NotContains(t, result, "fmt.Println")
		assert.Contains(t, result, "before")
		assert.Contains(t, result, "after")
	})
}

func TestClean_HeadingFlagHasNoEffect(t *testing.T) {
	// Both settings strip the marker and keep the heading text.
	content := "# Top\n\nsome text\n\n## Sub\n\nmore text"

	keep := New(Config{Strategy: domain.StrategyBalanced, PreserveHeadingsAsContext: true})
	drop := New(Config{Strategy: domain.StrategyBalanced, PreserveHeadingsAsContext: false})

	a := keep.Clean(content)
	b := drop.Clean(content)

	assert.Equal(t, a, b)
	assert.Contains(t, a, "Top")
	assert.Contains(t, a, "Sub")
	assert.NotContains(t, a, "#")
}

func TestClean_Tables(t *testing.T) {
	c := newCleaner(domain.StrategyConservative)

	content := "| Name | Role |\n|------|------|\n| Ada | Engineer |"
	result := c.Clean(content)

	assert.NotContains(t, result, "|")
	assert.NotContains(t, result, "---")
	assert.Contains(t, result, "Name Role")
	assert.Contains(t, result, "Ada Engineer")
}

func TestClean_CustomRules(t *testing.T) {
	c := New(Config{
		Strategy: domain.StrategyBalanced,
		CustomRules: []Rule{
			LiteralRule(`TODO:?`, ""),
			ComputedRule(`\bv\d+\.\d+\.\d+\b`, func(match string) string {
				return strings.TrimPrefix(match, "v")
			}),
		},
	})

	result := c.Clean("TODO: release v1.2.3 notes")
	assert.NotContains(t, result, "TODO")
	assert.Contains(t, result, "1.2.3")
	assert.NotContains(t, result, "v1.2.3")
}

func TestClean_ReadingOrderPreserved(t *testing.T) {
	c := newCleaner(domain.StrategyAggressive)

	result := c.Clean("# One\n\nfirst paragraph\n\n# Two\n\nsecond paragraph")
	one := strings.Index(result, "One")
	first := strings.Index(result, "first")
	two := strings.Index(result, "Two")
	second := strings.Index(result, "second")

	require.True(t, one >= 0 && first >= 0 && two >= 0 && second >= 0)
	assert.True(t, one < first && first < two && two < second)
}

func TestStats(t *testing.T) {
	c := newCleaner(domain.StrategyBalanced)

	t.Run("reduction ratio", func(t *testing.T) {
		original := "**bold**"
		cleaned := c.Clean(original)
		stats := c.Stats(original, cleaned)

		assert.Equal(t, len(original), stats.OriginalLength)
		assert.Equal(t, len(cleaned), stats.CleanedLength)
		assert.InDelta(t, 0.5, stats.ReductionRatio, 0.001)
	})

	t.Run("empty original has zero ratio", func(t *testing.T) {
		stats := c.Stats("", "")
		assert.Zero(t, stats.ReductionRatio)
		assert.Zero(t, stats.OriginalLines)
	})

	t.Run("line counts", func(t *testing.T) {
		stats := c.Stats("a\nb\nc", "a b c")
		assert.Equal(t, 3, stats.OriginalLines)
		assert.Equal(t, 1, stats.CleanedLines)
	})
}

func TestPreview(t *testing.T) {
	c := newCleaner(domain.StrategyBalanced)

	t.Run("short content untruncated", func(t *testing.T) {
		p := c.Preview("**bold**", 500)
		assert.Equal(t, "**bold**", p.OriginalPreview)
		assert.Equal(t, "bold", p.CleanedPreview)
		assert.Equal(t, 8, p.Stats.OriginalLength)
	})

	t.Run("long content truncated with ellipsis", func(t *testing.T) {
		content := strings.Repeat("word ", 200)
		p := c.Preview(content, 50)
		assert.Len(t, p.OriginalPreview, 53)
		assert.True(t, strings.HasSuffix(p.OriginalPreview, "..."))
	})

	t.Run("multibyte content truncated on rune boundary", func(t *testing.T) {
		content := strings.Repeat("中文內容", 20)
		p := c.Preview(content, 10)

		assert.True(t, utf8.ValidString(p.OriginalPreview))
		assert.True(t, utf8.ValidString(p.CleanedPreview))
		assert.Equal(t, strings.Repeat("中文內容", 2)+"中文...", p.OriginalPreview)
	})
}
