package song

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxHeadingLevel is the deepest heading HTML has.
const MaxHeadingLevel = 6

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// ShiftHeadings demotes every h1-h6 element in nodes by shift levels,
// clamping at h6. A shift below one leaves the nodes untouched.
func ShiftHeadings(nodes []*html.Node, shift int) {
	if shift <= 0 {
		return
	}
	for _, n := range nodes {
		shiftHeading(n, shift)
	}
}

func shiftHeading(n *html.Node, shift int) {
	if level := HeadingLevel(n); level > 0 {
		level = min(level+shift, MaxHeadingLevel)
		n.DataAtom = headingAtoms[level-1]
		n.Data = "h" + strconv.Itoa(level)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		shiftHeading(c, shift)
	}
}

// HeadingLevel returns 1-6 for heading elements and 0 for anything else.
func HeadingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	for i, a := range headingAtoms {
		if n.DataAtom == a {
			return i + 1
		}
	}
	return 0
}
