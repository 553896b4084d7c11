package markup

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrUncloneable is returned by Clone for node kinds it cannot copy.
var ErrUncloneable = errors.New("node cannot be cloned")

// Clone returns a deep copy of n detached from any tree. Text keeps pointing
// into source, so the copy must be rendered with the same source. Autolinks
// come back as plain links.
func Clone(n ast.Node, source []byte) (ast.Node, error) {
	c, err := cloneShallow(n, source)
	if err != nil {
		return nil, err
	}
	for _, a := range n.Attributes() {
		c.SetAttribute(a.Name, a.Value)
	}
	if _, isAutoLink := n.(*ast.AutoLink); isAutoLink {
		return c, nil
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cc, err := Clone(child, source)
		if err != nil {
			return nil, err
		}
		c.AppendChild(c, cc)
	}
	return c, nil
}

func cloneShallow(n ast.Node, source []byte) (ast.Node, error) {
	switch n := n.(type) {
	case *Directive:
		c := NewDirective(n.Name)
		c.fence = n.fence
		return withBlock(c, n), nil
	case *Body:
		return withBlock(NewBody(), n), nil
	case *Footer:
		return withBlock(NewFooter(), n), nil
	case *ast.Paragraph:
		return withBlock(ast.NewParagraph(), n), nil
	case *ast.TextBlock:
		return withBlock(ast.NewTextBlock(), n), nil
	case *ast.Heading:
		return withBlock(ast.NewHeading(n.Level), n), nil
	case *ast.ThematicBreak:
		return withBlock(ast.NewThematicBreak(), n), nil
	case *ast.Blockquote:
		return withBlock(ast.NewBlockquote(), n), nil
	case *ast.List:
		c := ast.NewList(n.Marker)
		c.IsTight = n.IsTight
		c.Start = n.Start
		return withBlock(c, n), nil
	case *ast.ListItem:
		return withBlock(ast.NewListItem(n.Offset), n), nil
	case *ast.CodeBlock:
		return withBlock(ast.NewCodeBlock(), n), nil
	case *ast.FencedCodeBlock:
		var info *ast.Text
		if n.Info != nil {
			info = cloneText(n.Info)
		}
		return withBlock(ast.NewFencedCodeBlock(info), n), nil
	case *ast.HTMLBlock:
		c := ast.NewHTMLBlock(n.HTMLBlockType)
		c.ClosureLine = n.ClosureLine
		return withBlock(c, n), nil
	case *ast.Text:
		return cloneText(n), nil
	case *ast.String:
		c := ast.NewString(bytes.Clone(n.Value))
		c.SetCode(n.IsCode())
		c.SetRaw(n.IsRaw())
		return c, nil
	case *ast.CodeSpan:
		return ast.NewCodeSpan(), nil
	case *ast.Emphasis:
		return ast.NewEmphasis(n.Level), nil
	case *ast.Link:
		c := ast.NewLink()
		c.Destination = bytes.Clone(n.Destination)
		c.Title = bytes.Clone(n.Title)
		return c, nil
	case *ast.Image:
		link := ast.NewLink()
		link.Destination = bytes.Clone(n.Destination)
		link.Title = bytes.Clone(n.Title)
		return ast.NewImage(link), nil
	case *ast.AutoLink:
		c := ast.NewLink()
		url := n.URL(source)
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		c.Destination = url
		c.AppendChild(c, ast.NewString(bytes.Clone(n.Label(source))))
		return c, nil
	case *ast.RawHTML:
		c := ast.NewRawHTML()
		c.Segments = cloneSegments(n.Segments)
		return c, nil
	case *extast.Strikethrough:
		return extast.NewStrikethrough(), nil
	case *extast.Table:
		c := extast.NewTable()
		c.Alignments = slices.Clone(n.Alignments)
		return withBlock(c, n), nil
	case *extast.TableHeader:
		return withBlock(extast.NewTableHeader(extast.NewTableRow(slices.Clone(n.Alignments))), n), nil
	case *extast.TableRow:
		return withBlock(extast.NewTableRow(slices.Clone(n.Alignments)), n), nil
	case *extast.TableCell:
		c := extast.NewTableCell()
		c.Alignment = n.Alignment
		return withBlock(c, n), nil
	case *extast.TaskCheckBox:
		return extast.NewTaskCheckBox(n.IsChecked), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUncloneable, n.Kind())
}

func withBlock(c, n ast.Node) ast.Node {
	c.SetBlankPreviousLines(n.HasBlankPreviousLines())
	if lines := n.Lines(); lines != nil {
		c.SetLines(cloneSegments(lines))
	}
	return c
}

func cloneText(n *ast.Text) *ast.Text {
	c := ast.NewTextSegment(n.Segment)
	c.SetSoftLineBreak(n.SoftLineBreak())
	c.SetHardLineBreak(n.HardLineBreak())
	c.SetRaw(n.IsRaw())
	return c
}

func cloneSegments(s *text.Segments) *text.Segments {
	out := text.NewSegments()
	if s == nil {
		return out
	}
	for i := 0; i < s.Len(); i++ {
		out.Append(s.At(i))
	}
	return out
}
