package markup

import (
	"github.com/yuin/goldmark/ast"
)

// Action tells Walk what to do once a node has been visited.
type Action int

const (
	// Continue descends into the node's children, then moves on.
	Continue Action = iota
	// SkipChildren moves on without visiting the node's children.
	SkipChildren
	// Stop ends the walk.
	Stop
)

// Step is the instruction a Visitor returns. When After is set the walk
// resumes with the sibling that follows After instead of the visited node's
// next sibling, so a visitor can step over nodes it has just inserted.
type Step struct {
	Action Action
	After  ast.Node
}

// Visitor is called once per node in document order.
type Visitor func(n ast.Node) Step

// Walk visits the descendants of parent depth first. It reports false when a
// visitor stopped the walk.
func Walk(parent ast.Node, visit Visitor) bool {
	for n := parent.FirstChild(); n != nil; {
		step := visit(n)
		switch step.Action {
		case Stop:
			return false
		case Continue:
			if !Walk(n, visit) {
				return false
			}
		}
		if step.After != nil {
			n = step.After.NextSibling()
		} else {
			n = n.NextSibling()
		}
	}
	return true
}
