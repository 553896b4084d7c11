package song

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLineBreaks(t *testing.T) {
	doc, source := parseDoc(t, "Щедрик, щедрик,\nщедрівочка\n\nПрилетіла ластівочка\n")

	NormalizeLineBreaks(doc)
	assert.Equal(t,
		"<p>Щедрик, щедрик,<br>\nщедрівочка</p>\n<p>Прилетіла ластівочка</p>\n",
		renderDoc(t, doc, source))
}

func TestNormalizeLineBreaksIsIdempotent(t *testing.T) {
	doc, source := parseDoc(t, "*Щедрик*\nщедрик\nщедрівочка\n")

	NormalizeLineBreaks(doc)
	once := renderDoc(t, doc, source)
	NormalizeLineBreaks(doc)
	assert.Equal(t, once, renderDoc(t, doc, source))
	assert.Equal(t, 2, strings.Count(once, "<br>"))
}

func TestNormalizeLineBreaksLeavesCodeSpans(t *testing.T) {
	doc, source := parseDoc(t, "`a\nb`\n")

	NormalizeLineBreaks(doc)
	assert.NotContains(t, renderDoc(t, doc, source), "<br>")
}
