package song

import (
	"fmt"

	"github.com/geocine/koliadnyk/internal/markup"
	"github.com/yuin/goldmark/ast"
)

// ChorusName is the directive name marking a chorus. Matching ignores case.
const ChorusName = "chorus"

var classAttr = []byte("class")

// FindChorus returns the first chorus directive among the direct children of
// body.
func FindChorus(body ast.Node) *markup.Directive {
	for n := body.FirstChild(); n != nil; n = n.NextSibling() {
		if markup.IsDirective(n, ChorusName) {
			return n.(*markup.Directive)
		}
	}
	return nil
}

// RewriteChorus formats the chorus of body and inserts a copy of it after
// every top-level paragraph not already followed by the authored chorus. It
// returns the number of copies inserted. source must be the buffer body was
// parsed from.
func RewriteChorus(body ast.Node, source []byte) (int, error) {
	chorus := FindChorus(body)
	if chorus == nil {
		return 0, nil
	}
	formatChorus(chorus)

	copies := 0
	var err error
	markup.Walk(body, func(n ast.Node) markup.Step {
		if n.Kind() != ast.KindParagraph || n.NextSibling() == chorus {
			return markup.Step{Action: markup.SkipChildren}
		}
		c, cerr := markup.Clone(chorus, source)
		if cerr != nil {
			err = fmt.Errorf("failed to copy chorus: %w", cerr)
			return markup.Step{Action: markup.Stop}
		}
		insertAfter(body, n, c)
		copies++
		return markup.Step{Action: markup.SkipChildren, After: c}
	})
	if err != nil {
		return 0, err
	}
	return copies, nil
}

// insertAfter places c after n. goldmark's InsertAfter counts a node appended
// at the tail twice, so the tail goes through AppendChild.
func insertAfter(parent, n, c ast.Node) {
	if n.NextSibling() == nil {
		parent.AppendChild(parent, c)
		return
	}
	parent.InsertAfter(parent, n, c)
}

// formatChorus marks the chorus with its class and italicizes its direct
// paragraphs.
func formatChorus(chorus *markup.Directive) {
	chorus.SetAttribute(classAttr, []byte(ChorusName))
	for n := chorus.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}
		open := rawInline("<i>")
		if first := n.FirstChild(); first != nil {
			n.InsertBefore(n, first, open)
		} else {
			n.AppendChild(n, open)
		}
		n.AppendChild(n, rawInline("</i>"))
	}
}

func rawInline(s string) *ast.String {
	n := ast.NewString([]byte(s))
	n.SetCode(true)
	return n
}
