package markup

import (
	"github.com/yuin/goldmark/ast"
)

// Body groups the verses of a song. It renders as its children only.
type Body struct {
	ast.BaseBlock
}

// KindBody is the NodeKind of Body.
var KindBody = ast.NewNodeKind("Body")

// Kind implements ast.Node.
func (n *Body) Kind() ast.NodeKind {
	return KindBody
}

// Dump implements ast.Node.
func (n *Body) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// NewBody returns an empty body container.
func NewBody() *Body {
	return &Body{}
}

// Footer holds the attribution block that follows the last divider. It
// renders as <footer>.
type Footer struct {
	ast.BaseBlock
}

// KindFooter is the NodeKind of Footer.
var KindFooter = ast.NewNodeKind("Footer")

// Kind implements ast.Node.
func (n *Footer) Kind() ast.NodeKind {
	return KindFooter
}

// Dump implements ast.Node.
func (n *Footer) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// NewFooter returns an empty footer container.
func NewFooter() *Footer {
	return &Footer{}
}

// Children returns the direct children of n as a slice, so callers can move
// them around without breaking the sibling chain they are iterating.
func Children(n ast.Node) []ast.Node {
	out := make([]ast.Node, 0, n.ChildCount())
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, c)
	}
	return out
}
