package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuin/goldmark/ast"
)

func TestWalkOrderAndSkip(t *testing.T) {
	doc, _ := parse(t, "# Title\n\nparagraph *em*\n\n> quoted\n")

	var kinds []string
	Walk(doc, func(n ast.Node) Step {
		kinds = append(kinds, n.Kind().String())
		if n.Kind() == ast.KindBlockquote {
			return Step{Action: SkipChildren}
		}
		return Step{Action: Continue}
	})

	assert.Equal(t, []string{"Heading", "Text", "Paragraph", "Text", "Emphasis", "Text", "Blockquote"}, kinds)
}

func TestWalkStop(t *testing.T) {
	doc, _ := parse(t, "one\n\ntwo\n\nthree\n")

	seen := 0
	completed := Walk(doc, func(n ast.Node) Step {
		seen++
		if seen == 2 {
			return Step{Action: Stop}
		}
		return Step{Action: SkipChildren}
	})
	assert.False(t, completed)
	assert.Equal(t, 2, seen)
}

func TestWalkResumesAfterInsertedNode(t *testing.T) {
	doc, _ := parse(t, "one\n\ntwo\n")

	visits := 0
	Walk(doc, func(n ast.Node) Step {
		visits++
		if _, ok := n.(*ast.Paragraph); !ok {
			return Step{Action: SkipChildren}
		}
		marker := ast.NewThematicBreak()
		if n.NextSibling() == nil {
			doc.AppendChild(doc, marker)
		} else {
			doc.InsertAfter(doc, n, marker)
		}
		return Step{Action: SkipChildren, After: marker}
	})

	assert.Equal(t, 2, visits)
	assert.Len(t, Children(doc), 4)
	assert.Equal(t, 4, doc.ChildCount())
}
