package song

import (
	"github.com/geocine/koliadnyk/internal/markup"
	"github.com/yuin/goldmark/ast"
)

// Section is a song document taken apart into its title, body and footer.
type Section struct {
	// Title is the first heading of the document, nil when there is none.
	Title  ast.Node
	Body   *markup.Body
	Footer *markup.Footer
}

// Split moves the top-level nodes of doc into a Section. The footer is the
// run of nodes after the last top-level thematic break; the break itself is
// dropped. Without a break the footer is empty and the body holds every node
// but the title.
func Split(doc ast.Node) Section {
	nodes := markup.Children(doc)

	lastDivider := -1
	var title ast.Node
	for i, n := range nodes {
		switch n.Kind() {
		case ast.KindThematicBreak:
			lastDivider = i
		case ast.KindHeading:
			if title == nil {
				title = n
			}
		}
	}

	s := Section{
		Title:  title,
		Body:   markup.NewBody(),
		Footer: markup.NewFooter(),
	}
	doc.RemoveChildren(doc)
	for i, n := range nodes {
		switch {
		case n == title, i == lastDivider:
		case lastDivider >= 0 && i > lastDivider:
			s.Footer.AppendChild(s.Footer, n)
		default:
			s.Body.AppendChild(s.Body, n)
		}
	}
	return s
}

// Reassemble replaces the children of doc with the title, the body and the
// footer. An empty footer is left out.
func (s Section) Reassemble(doc ast.Node) {
	doc.RemoveChildren(doc)
	if s.Title != nil {
		doc.AppendChild(doc, s.Title)
	}
	doc.AppendChild(doc, s.Body)
	if s.Footer.HasChildren() {
		doc.AppendChild(doc, s.Footer)
	}
}
