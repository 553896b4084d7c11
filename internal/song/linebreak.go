package song

import (
	"github.com/geocine/koliadnyk/internal/markup"
	"github.com/yuin/goldmark/ast"
)

// NormalizeLineBreaks turns every soft line break under n into a hard one so
// each source line of a verse renders on its own line.
func NormalizeLineBreaks(n ast.Node) {
	markup.Walk(n, func(c ast.Node) markup.Step {
		switch c := c.(type) {
		case *ast.CodeSpan:
			return markup.Step{Action: markup.SkipChildren}
		case *ast.Text:
			if c.SoftLineBreak() {
				c.SetSoftLineBreak(false)
				c.SetHardLineBreak(true)
			}
		}
		return markup.Step{Action: markup.Continue}
	})
}
