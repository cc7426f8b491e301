package markdown

import (
	"regexp"
	"strings"
)

// ruleKind discriminates the replacement variants of a Rule.
type ruleKind int

const (
	ruleLiteral ruleKind = iota
	ruleComputed
)

// Rule is a single pattern→replacement transformation. The replacement
// is a tagged union: either a literal template (may reference capture
// groups as $1) or a function computed from the matched text.
type Rule struct {
	pattern *regexp.Regexp
	kind    ruleKind
	literal string
	compute func(match string) string
}

// LiteralRule creates a rule that substitutes a fixed template.
func LiteralRule(pattern, replacement string) Rule {
	return Rule{
		pattern: regexp.MustCompile(pattern),
		kind:    ruleLiteral,
		literal: replacement,
	}
}

// ComputedRule creates a rule whose replacement is derived from the match.
func ComputedRule(pattern string, fn func(match string) string) Rule {
	return Rule{
		pattern: regexp.MustCompile(pattern),
		kind:    ruleComputed,
		compute: fn,
	}
}

func (r Rule) apply(content string) string {
	switch r.kind {
	case ruleComputed:
		return r.pattern.ReplaceAllStringFunc(content, r.compute)
	default:
		return r.pattern.ReplaceAllString(content, r.literal)
	}
}

// baseRules are shared by every strategy: horizontal rules, table
// borders and excess blank lines.
func baseRules() []Rule {
	return []Rule{
		LiteralRule(`(?m)^-{3,}\s*$`, ""),
		LiteralRule(`(?m)^={3,}\s*$`, ""),
		LiteralRule(`(?m)^\*{3,}\s*$`, ""),
		// Table separator rows (|---|:--:|) vanish entirely.
		LiteralRule(`(?m)^\|[-:\s|]+\|\s*$`, ""),
		// Data rows collapse to space-joined cell text.
		ComputedRule(`(?m)^\|.*\|\s*$`, collapseTableRow),
		LiteralRule(`\n{3,}`, "\n\n"),
	}
}

// conservativeRules strip only the most obvious formatting symbols.
func conservativeRules() []Rule {
	return append(baseRules(),
		LiteralRule(`\*\*(.*?)\*\*`, "$1"), // bold
		LiteralRule(`\*(.*?)\*`, "$1"),     // italic
		LiteralRule("`(.*?)`", "$1"),       // inline code
	)
}

// balancedRules additionally strip links, images, blockquotes and list
// markers while keeping the human-readable text. The image rule runs
// before the link rule so alt text survives without a stray "!".
func balancedRules() []Rule {
	return append(conservativeRules(),
		LiteralRule(`!\[([^\]]*)\]\([^)]+\)`, "$1"),  // ![alt](src)
		LiteralRule(`\[([^\]]+)\]\([^)]+\)`, "$1"),   // [text](url)
		LiteralRule(`\[([^\]]+)\]\[[^\]]*\]`, "$1"),  // [text][ref]
		LiteralRule(`(?m)^>\s*`, ""),                 // blockquotes
		LiteralRule(`(?m)^\s*[-*+]\s+`, ""),          // bullet lists
		LiteralRule(`(?m)^\s*\d+\.\s+`, ""),          // numbered lists
	)
}

// aggressiveRules additionally strip strikethrough, highlight, super-
// and subscript markers, then sweep away any remaining structural
// symbols.
func aggressiveRules() []Rule {
	return append(balancedRules(),
		LiteralRule(`~~(.*?)~~`, "$1"),    // strikethrough
		LiteralRule(`==(.*?)==`, "$1"),    // highlight
		LiteralRule(`\^([^^]+)\^`, "$1"),  // superscript
		LiteralRule(`~([^~]+)~`, "$1"),    // subscript
		LiteralRule("[#*_~`>|]", ""),      // leftover structural symbols
	)
}

// collapseTableRow turns "| a | b |" into "a b".
func collapseTableRow(row string) string {
	row = strings.Trim(strings.TrimSpace(row), "|")
	cells := strings.Split(row, "|")

	kept := make([]string, 0, len(cells))
	for _, cell := range cells {
		if cell = strings.TrimSpace(cell); cell != "" {
			kept = append(kept, cell)
		}
	}
	return strings.Join(kept, " ")
}
