// Package song turns a single markdown song source into an HTML fragment:
// the title, body and footer are split apart, the chorus is repeated after
// every verse, line breaks are kept, and headings are shifted to fit the page
// the fragment lands in.
package song

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/geocine/koliadnyk/internal/dom"
	"github.com/geocine/koliadnyk/internal/frontmatter"
	"github.com/geocine/koliadnyk/internal/markup"
	"github.com/geocine/koliadnyk/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// ErrParse is returned when a song source cannot be turned into a fragment.
var ErrParse = errors.New("failed to parse song")

const bom = "\ufeff"

// Options configures an Assembler.
type Options struct {
	// HeadingShift is how many levels headings are demoted by.
	HeadingShift int
	Logger       *slog.Logger
}

// Assembler runs the song pipeline. It holds no per-song state, so one
// Assembler can process many songs concurrently.
type Assembler struct {
	md     goldmark.Markdown
	shift  int
	logger *slog.Logger
}

// NewAssembler builds an Assembler. A negative shift is treated as zero.
func NewAssembler(opts Options) *Assembler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		md:     markup.New(),
		shift:  max(opts.HeadingShift, 0),
		logger: logger,
	}
}

// HeadingShift returns the shift the Assembler applies.
func (a *Assembler) HeadingShift() int {
	return a.shift
}

// Process turns the source src read from name into a Song.
func (a *Assembler) Process(name string, src []byte) (*models.Song, error) {
	id := ID(name)

	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w '%s': invalid UTF-8", ErrParse, name)
	}
	content := strings.TrimPrefix(string(src), bom)
	content = strings.ReplaceAll(content, "\r\n", "\n")

	meta, content, err := frontmatter.Split(content)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrParse, name, err)
	}

	source := []byte(content)
	doc := a.md.Parser().Parse(text.NewReader(source))

	section := Split(doc)
	NormalizeLineBreaks(section.Body)
	copies, err := RewriteChorus(section.Body, source)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrParse, name, err)
	}
	section.Reassemble(doc)

	var buf bytes.Buffer
	if err := a.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("%w '%s': failed to render: %w", ErrParse, name, err)
	}

	nodes, err := dom.ParseFragment(buf.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrParse, name, err)
	}
	ShiftHeadings(nodes, a.shift)

	title := Title(nodes)
	if title == "" {
		title = strings.TrimSpace(meta.Title)
	}
	if title == "" {
		a.logger.Warn("song has no title, using its id", "source", name, "id", id)
		title = id
	}

	body, err := dom.Render(nodes...)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrParse, name, err)
	}

	a.logger.Debug("processed song", "source", name, "id", id, "title", title, "choruses", copies)
	return &models.Song{
		ID:     id,
		Title:  title,
		Body:   body,
		Source: name,
	}, nil
}

// Title returns the text of the first heading in nodes.
func Title(nodes []*html.Node) string {
	h := dom.FindAll(nodes, func(n *html.Node) bool { return HeadingLevel(n) > 0 })
	if h == nil {
		return ""
	}
	return dom.TextContent(h)
}

// ID derives a song id from its source path: the base name without its
// extension.
func ID(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
