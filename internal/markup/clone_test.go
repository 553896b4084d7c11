package markup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

func TestCloneRendersIdentically(t *testing.T) {
	src := ":::chorus\n" +
		"*Щедрик*, **щедрик**, ~~щедрівочка~~\n" +
		"[ластівочка](https://example.com \"title\") `code` <b>raw</b>\n" +
		"<https://example.com/auto> and ![img](a.png)\n" +
		"\n" +
		"- one\n" +
		"- two\n" +
		"\n" +
		"> quoted\n" +
		"\n" +
		"| голос | рядок |\n" +
		"|:------|------:|\n" +
		"| перший | *раз* |\n" +
		"\n" +
		"- [x] заспів\n" +
		"- [ ] приспів\n" +
		":::\n"
	doc, source := parse(t, src)
	before := render(t, doc, source)

	c, err := Clone(doc.FirstChild(), source)
	require.NoError(t, err)
	assert.Nil(t, c.Parent())
	assert.Nil(t, c.NextSibling())

	doc.AppendChild(doc, c)
	assert.Equal(t, before+before, render(t, doc, source))
}

func TestCloneIsIndependent(t *testing.T) {
	doc, source := parse(t, ":::chorus\nrefrain\n:::\n")
	orig := doc.FirstChild()
	orig.SetAttribute([]byte("class"), []byte("chorus"))

	c, err := Clone(orig, source)
	require.NoError(t, err)

	v, ok := c.AttributeString("class")
	require.True(t, ok)
	assert.Equal(t, []byte("chorus"), v)

	c.FirstChild().AppendChild(c.FirstChild(), ast.NewString([]byte("!")))
	assert.Equal(t, 1, orig.FirstChild().ChildCount())
	assert.Equal(t, 2, c.FirstChild().ChildCount())
}

func TestCloneKeepsLineBreakFlags(t *testing.T) {
	doc, source := parse(t, "first\nsecond\n")
	p := doc.FirstChild()
	first := p.FirstChild().(*ast.Text)
	first.SetSoftLineBreak(false)
	first.SetHardLineBreak(true)

	c, err := Clone(p, source)
	require.NoError(t, err)
	ct := c.FirstChild().(*ast.Text)
	assert.True(t, ct.HardLineBreak())
	assert.False(t, ct.SoftLineBreak())
}

func TestCloneKeepsTableAlignment(t *testing.T) {
	doc, source := parse(t, "| a | b |\n|:--|--:|\n| 1 | 2 |\n")
	table, ok := doc.FirstChild().(*extast.Table)
	require.True(t, ok)

	c, err := Clone(table, source)
	require.NoError(t, err)
	ct := c.(*extast.Table)
	assert.Equal(t, table.Alignments, ct.Alignments)
	header := ct.FirstChild().(*extast.TableHeader)
	assert.Equal(t, extast.AlignRight, header.LastChild().(*extast.TableCell).Alignment)
	assert.Len(t, Children(ct), 2)
}

func TestCloneRejectsUnknownKinds(t *testing.T) {
	_, err := Clone(extast.NewFootnoteList(), nil)
	assert.True(t, errors.Is(err, ErrUncloneable))
}
