// Package markup extends goldmark with the block structure song sources need:
// fenced container directives (":::chorus"), and the body and footer
// containers the song pipeline reassembles a document into.
package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MinFence is the shortest run of colons that opens a directive.
const MinFence = 3

// Directive is a container block opened by a fence of colons followed by a
// name and closed by a bare fence at least as long:
//
//	:::chorus
//	Щедрик, щедрик, щедрівочка
//	:::
//
// Anything after the name on the opening line ([label], {attrs}) is ignored.
// Nested directives need a longer outer fence.
type Directive struct {
	ast.BaseBlock
	Name  string
	fence int
}

// KindDirective is the NodeKind of Directive.
var KindDirective = ast.NewNodeKind("Directive")

// Kind implements ast.Node.
func (n *Directive) Kind() ast.NodeKind {
	return KindDirective
}

// Dump implements ast.Node.
func (n *Directive) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// NewDirective returns an empty directive with the given name.
func NewDirective(name string) *Directive {
	return &Directive{Name: name, fence: MinFence}
}

// IsDirective reports whether n is a directive called name, ignoring case.
func IsDirective(n ast.Node, name string) bool {
	d, ok := n.(*Directive)
	return ok && strings.EqualFold(d.Name, name)
}

type directiveParser struct{}

// NewDirectiveParser returns a block parser for container directives.
func NewDirectiveParser() parser.BlockParser {
	return &directiveParser{}
}

func (b *directiveParser) Trigger() []byte {
	return []byte{':'}
}

func (b *directiveParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != ':' {
		return nil, parser.NoChildren
	}
	i := pos
	for ; i < len(line) && line[i] == ':'; i++ {
	}
	fence := i - pos
	if fence < MinFence {
		return nil, parser.NoChildren
	}
	name := directiveName(line[i:])
	if name == "" {
		return nil, parser.NoChildren
	}

	node := NewDirective(name)
	node.fence = fence
	reader.Advance(segment.Stop - segment.Start - newlineLen(line) + segment.Padding)
	return node, parser.HasChildren
}

func (b *directiveParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	d := node.(*Directive)
	line, segment := reader.PeekLine()
	if len(line) == 0 {
		return parser.Continue | parser.HasChildren
	}
	if w, pos := util.IndentWidth(line, reader.LineOffset()); w < 4 {
		i := pos
		for ; i < len(line) && line[i] == ':'; i++ {
		}
		if i-pos >= d.fence && util.IsBlank(line[i:]) {
			reader.Advance(segment.Stop - segment.Start - newlineLen(line) + segment.Padding)
			return parser.Close
		}
	}
	return parser.Continue | parser.HasChildren
}

func (b *directiveParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *directiveParser) CanInterruptParagraph() bool {
	return true
}

func (b *directiveParser) CanAcceptIndentedLine() bool {
	return false
}

// directiveName reads the name that follows an opening fence. Names start with
// a letter and continue with letters, digits, '-' or '_'.
func directiveName(rest []byte) string {
	rest = util.TrimLeftSpace(rest)
	end := 0
	for end < len(rest) {
		r, size := utf8.DecodeRune(rest[end:])
		if end == 0 && !unicode.IsLetter(r) {
			return ""
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			break
		}
		end += size
	}
	return string(rest[:end])
}

func newlineLen(line []byte) int {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return 1
	}
	return 0
}

type containerRenderer struct{}

// NewContainerRenderer renders directives as <div>, footers as <footer> and
// bodies as their bare children.
func NewContainerRenderer() renderer.NodeRenderer {
	return &containerRenderer{}
}

func (r *containerRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDirective, r.renderDirective)
	reg.Register(KindBody, r.renderBody)
	reg.Register(KindFooter, r.renderFooter)
}

func (r *containerRenderer) renderDirective(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<div")
		if node.Attributes() != nil {
			html.RenderAttributes(w, node, nil)
		}
		_, _ = w.WriteString(">\n")
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (r *containerRenderer) renderBody(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *containerRenderer) renderFooter(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<footer>\n")
	} else {
		_, _ = w.WriteString("</footer>\n")
	}
	return ast.WalkContinue, nil
}

type directives struct{}

// Directives is a goldmark extension adding container directives and the
// body/footer containers.
var Directives = &directives{}

func (e *directives) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(NewDirectiveParser(), 150),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewContainerRenderer(), 500),
		),
	)
}

// New returns the goldmark instance songs are converted with. Raw HTML in the
// source is passed through.
func New() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			Directives,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}
