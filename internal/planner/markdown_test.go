package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown_Headings(t *testing.T) {
	assert.Equal(t, "Heading", StripMarkdown("# Heading"))
	assert.Equal(t, "Deep heading", StripMarkdown("###### Deep heading"))
	assert.Equal(t, "No space", StripMarkdown("##No space"))
	assert.Equal(t, "Title", StripMarkdown("## # Title"))
}

func TestStripMarkdown_Emphasis(t *testing.T) {
	assert.Equal(t, "bold text", StripMarkdown("**bold text**"))
	assert.Equal(t, "also bold", StripMarkdown("__also bold__"))
	assert.Equal(t, "italic text", StripMarkdown("*italic text*"))
	assert.Equal(t, "both", StripMarkdown("***both***"))
	assert.Equal(t, "Aspirin 81 mg daily", StripMarkdown("Aspirin **81 mg** *daily*"))
}

func TestStripMarkdown_Lists(t *testing.T) {
	assert.Equal(t, "item one\nitem two", StripMarkdown("- item one\n- item two"))
	assert.Equal(t, "starred\nplussed", StripMarkdown("* starred\n+ plussed"))
	assert.Equal(t, "first\nsecond", StripMarkdown("1. first\n2. second"))
	assert.Equal(t, "indented", StripMarkdown("   - indented"))
}

func TestStripMarkdown_Code(t *testing.T) {
	assert.Equal(t, "", StripMarkdown("```\nsome code\n```"))
	assert.Equal(t, "before\n\nafter", StripMarkdown("before\n```\ncode\n```\nafter"))
	assert.Equal(t, "use tPA now", StripMarkdown("use `tPA` now"))
}

func TestStripMarkdown_Links(t *testing.T) {
	assert.Equal(t, "guidelines", StripMarkdown("[guidelines](https://example.org/stroke)"))
}

func TestStripMarkdown_Whitespace(t *testing.T) {
	assert.Equal(t, "a b c", StripMarkdown("a   b\t\tc"))
	assert.Equal(t, "a\n\nb", StripMarkdown("a\n\n\n\n\nb"))
	assert.Equal(t, "trimmed", StripMarkdown("   trimmed   "))
}

func TestStripMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", StripMarkdown(""))
}

// Stripping must be a fixed point: running the pass on its own output
// changes nothing.
func TestStripMarkdown_Idempotent(t *testing.T) {
	samples := []string{
		"# Heading\n\nSome **bold** and *italic* text.",
		"- one\n- two\n1. three\n2. four",
		"```\nfenced\n```\ninline `code` and [link](http://x)",
		"## # stacked markers\n- # mixed markers",
		"a\n \n \n \nb",
		"***emphasis*** __everywhere__ _here_",
		"1. IMMEDIATE INTERVENTIONS (FIRST 24 HOURS)\nMaintain airway.\n\n\n2. TPA ADMINISTRATION PROTOCOL AND MONITORING\nAlteplase 0.9 mg/kg.",
	}
	for _, s := range samples {
		once := StripMarkdown(s)
		twice := StripMarkdown(once)
		assert.Equal(t, once, twice, "not idempotent for input %q", s)
	}
}
