// Package markdown provides the strategy-driven markdown cleaner that
// strips structural markup before chunking and embedding.
package markdown

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
	"github.com/custodia-labs/docvec-cli/internal/core/ports/driven"
)

// Ensure Cleaner implements the interface.
var _ driven.ContentCleaner = (*Cleaner)(nil)

// Preprocessing patterns, applied before the strategy rule table.
var (
	// ```lang\n ... \n``` keeping the inner code.
	fencedKeep = regexp.MustCompile("(?s)```\\w*\\n(.*?)\\n```")

	// ```lang\n ... \n``` deleting the whole block.
	fencedDrop = regexp.MustCompile("(?s)```\\w*\\n.*?\\n```")

	// `code` keeping the inner text.
	inlineCode = regexp.MustCompile("`([^`]+)`")

	// Heading marker with the heading text captured.
	headingKeep = regexp.MustCompile(`(?m)^#{1,6}\s+(.*)$`)

	// Heading marker alone.
	headingMark = regexp.MustCompile(`(?m)^#{1,6}\s+`)

	// Whitespace runs, collapsed during postprocessing.
	spaceRuns = regexp.MustCompile(`\s+`)
)

// Config holds cleaner configuration.
type Config struct {
	// Strategy selects the rule tier. Unrecognised values fall back
	// to balanced.
	Strategy domain.CleaningStrategy

	// PreserveCodeBlocks keeps fenced code content with the fence
	// delimiters and language tags removed; false deletes fenced
	// blocks including their content.
	PreserveCodeBlocks bool

	// PreserveHeadingsAsContext keeps heading text as inline context.
	// Both settings strip the marker and keep the text, so the output
	// is identical either way; the flag is kept for configuration
	// compatibility.
	PreserveHeadingsAsContext bool

	// CustomRules are applied in order after the strategy rules.
	CustomRules []Rule
}

// Cleaner strips markdown formatting according to a cleaning strategy.
// It holds no mutable state and is safe for concurrent use.
type Cleaner struct {
	strategy         domain.CleaningStrategy
	preserveCode     bool
	preserveHeadings bool
	rules            []Rule
	custom           []Rule
}

// New creates a cleaner for the given configuration.
func New(cfg Config) *Cleaner {
	strategy := domain.ParseCleaningStrategy(cfg.Strategy.String())

	var rules []Rule
	switch strategy {
	case domain.StrategyConservative:
		rules = conservativeRules()
	case domain.StrategyAggressive:
		rules = aggressiveRules()
	default:
		rules = balancedRules()
	}

	return &Cleaner{
		strategy:         strategy,
		preserveCode:     cfg.PreserveCodeBlocks,
		preserveHeadings: cfg.PreserveHeadingsAsContext,
		rules:            rules,
		custom:           cfg.CustomRules,
	}
}

// Strategy returns the effective cleaning strategy.
func (c *Cleaner) Strategy() domain.CleaningStrategy {
	return c.strategy
}

// Clean strips markup from the content. Human-readable text is kept in
// original reading order; under the aggressive strategy no structural
// markup characters remain.
func (c *Cleaner) Clean(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	cleaned := c.preprocess(content)

	for _, rule := range c.rules {
		cleaned = rule.apply(cleaned)
	}
	for _, rule := range c.custom {
		cleaned = rule.apply(cleaned)
	}

	return postprocess(cleaned)
}

// preprocess handles fenced code and headings before the rule table.
func (c *Cleaner) preprocess(content string) string {
	if c.preserveCode {
		content = fencedKeep.ReplaceAllString(content, "$1")
		content = inlineCode.ReplaceAllString(content, "$1")
	} else {
		content = fencedDrop.ReplaceAllString(content, "")
	}

	// Heading markers are stripped either way; the text stays inline.
	if c.preserveHeadings {
		content = headingKeep.ReplaceAllString(content, "$1")
	} else {
		content = headingMark.ReplaceAllString(content, "")
	}

	return content
}

// postprocess collapses whitespace runs to single spaces and trims.
func postprocess(content string) string {
	content = spaceRuns.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// Stats reports the size reduction achieved by cleaning.
func (c *Cleaner) Stats(original, cleaned string) domain.CleaningStats {
	var ratio float64
	if len(original) > 0 {
		ratio = 1 - float64(len(cleaned))/float64(len(original))
	}

	return domain.CleaningStats{
		OriginalLength: len(original),
		CleanedLength:  len(cleaned),
		OriginalLines:  countLines(original),
		CleanedLines:   countLines(cleaned),
		ReductionRatio: ratio,
	}
}

// Preview cleans the content and returns truncated previews with stats,
// so the cleaning effect can be inspected before ingestion.
func (c *Cleaner) Preview(content string, maxLength int) domain.CleaningPreview {
	cleaned := c.Clean(content)

	return domain.CleaningPreview{
		OriginalPreview: truncate(content, maxLength),
		CleanedPreview:  truncate(cleaned, maxLength),
		Stats:           c.Stats(content, cleaned),
	}
}

// truncate cuts s to maxLength characters. Counting runes keeps
// multibyte previews valid UTF-8.
func truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength]) + "..."
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
