package renderer

import (
	"errors"
	"fmt"

	"github.com/geocine/koliadnyk/internal/dom"
	"github.com/geocine/koliadnyk/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMissingTemplateTarget is returned when the page template lacks an element
// a group's songs or table of contents go into.
var ErrMissingTemplateTarget = errors.New("template target not found")

// Inject places the songs of c into doc: each song body as an <article>
// appended to the element whose id is the group's section, and a link to it
// appended to the first <ol> inside the element whose id is the group's nav.
// doc is left untouched when a target is missing.
func Inject(doc *html.Node, c *models.Collection) error {
	section := dom.Find(doc, dom.ByID(c.Group.Section))
	if section == nil {
		return fmt.Errorf("%w: no element with id %q for group '%s'", ErrMissingTemplateTarget, c.Group.Section, c.Group.Name)
	}
	nav := dom.Find(doc, dom.ByID(c.Group.Nav))
	if nav == nil {
		return fmt.Errorf("%w: no element with id %q for group '%s'", ErrMissingTemplateTarget, c.Group.Nav, c.Group.Name)
	}
	list := dom.Find(nav, dom.ByAtom(atom.Ol))
	if list == nil {
		return fmt.Errorf("%w: no <ol> inside element %q for group '%s'", ErrMissingTemplateTarget, c.Group.Nav, c.Group.Name)
	}

	articles := make([]*html.Node, len(c.Songs))
	for i, s := range c.Songs {
		article := dom.Element(atom.Article, "id", s.ID)
		nodes, err := dom.ParseFragment(s.Body, article)
		if err != nil {
			return fmt.Errorf("failed to place song '%s': %w", s.ID, err)
		}
		for _, n := range nodes {
			article.AppendChild(n)
		}
		articles[i] = article
	}

	for i, s := range c.Songs {
		section.AppendChild(articles[i])

		link := dom.Element(atom.A, "href", "#"+s.ID)
		link.AppendChild(dom.Text(s.Title))
		item := dom.Element(atom.Li)
		item.AppendChild(link)
		list.AppendChild(item)
	}
	return nil
}
