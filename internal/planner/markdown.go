package planner

import (
	"regexp"
	"strings"
)

// The generator is instructed to emit plain text, but models still slip
// markdown into responses. StripMarkdown removes it deterministically. Pass
// order matters: fenced blocks go first so their contents never leak, line
// markers are consumed in one combined pattern so stacked markers ("- # x")
// cannot survive a pass, and blank-line collapsing runs last, after per-line
// trimming, so stripping its own output is a no-op.
var (
	fencedCodeRe  = regexp.MustCompile("```[\\s\\S]*?```")
	boldStarRe    = regexp.MustCompile(`(?s)\*\*(.*?)\*\*`)
	boldUnderRe   = regexp.MustCompile(`(?s)__(.*?)__`)
	italicStarRe  = regexp.MustCompile(`\*([^*\n]+?)\*`)
	italicUnderRe = regexp.MustCompile(`_([^_\n]+?)_`)
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)

	// Heading, bullet, and numbered-list markers at line start.
	lineMarkerRe = regexp.MustCompile(`(?m)^[ \t]*(?:#+[ \t]*|[-*+][ \t]+|\d+\.[ \t]+)+`)

	hspaceRe   = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown removes markdown formatting while preserving the underlying
// text. Fenced code blocks are dropped entirely; emphasis, inline code, and
// links unwrap to their inner text. The result is a fixed point:
// StripMarkdown(StripMarkdown(x)) == StripMarkdown(x).
func StripMarkdown(text string) string {
	if text == "" {
		return text
	}

	text = fencedCodeRe.ReplaceAllString(text, "")
	text = boldStarRe.ReplaceAllString(text, "$1")
	text = boldUnderRe.ReplaceAllString(text, "$1")
	text = italicStarRe.ReplaceAllString(text, "$1")
	text = italicUnderRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = lineMarkerRe.ReplaceAllString(text, "")
	text = hspaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
