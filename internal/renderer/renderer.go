package renderer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/geocine/koliadnyk/internal/config"
	"github.com/geocine/koliadnyk/internal/dom"
	"github.com/geocine/koliadnyk/internal/models"
	"github.com/geocine/koliadnyk/internal/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderContext holds context for rendering
type RenderContext struct {
	Root        string
	Config      *config.Config
	Collections []*models.Collection
	// If non-empty, pages inject an SSE live-reload client targeting this path.
	LiveReloadEndpointPath string
	// AssetsFS optionally provides the embedded default templates (expects paths under "frontend/")
	AssetsFS fs.FS
}

// HtmlRenderer renders song collections into the host page
type HtmlRenderer struct {
	logger *slog.Logger
}

// NewHtmlRenderer creates a new HTML renderer
func NewHtmlRenderer(logger *slog.Logger) *HtmlRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HtmlRenderer{logger: logger}
}

// OutputPath returns where Render writes the collection page.
func OutputPath(ctx *RenderContext) string {
	out := ctx.Config.Build.Output
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(ctx.Root, out)
}

// Render builds the collection page and writes it to the configured output.
// Nothing is written when any song cannot be placed.
func (r *HtmlRenderer) Render(ctx *RenderContext) error {
	page, err := r.RenderPage(ctx)
	if err != nil {
		return err
	}

	out := OutputPath(ctx)
	if err := utils.WriteFileAtomic(out, []byte(page)); err != nil {
		return err
	}

	total := 0
	for _, c := range ctx.Collections {
		total += len(c.Songs)
	}
	r.logger.Info("wrote book", "path", out, "groups", len(ctx.Collections), "songs", total)
	return nil
}

// RenderPage renders the page template and injects every collection into it.
func (r *HtmlRenderer) RenderPage(ctx *RenderContext) (string, error) {
	if err := models.CheckUnique(ctx.Collections...); err != nil {
		return "", err
	}

	src, err := loadTemplate(ctx, ctx.Config.Build.Template, indexTemplate)
	if err != nil {
		return "", err
	}
	rendered, err := renderTemplate(indexTemplate, src, indexData(ctx))
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered template: %w", err)
	}
	for _, c := range ctx.Collections {
		if err := Inject(doc, c); err != nil {
			return "", err
		}
		r.logger.Debug("injected group", "group", c.Group.Name, "songs", len(c.Songs))
	}

	return finishPage(ctx, doc)
}

// RenderSong renders a standalone page for one song.
func (r *HtmlRenderer) RenderSong(ctx *RenderContext, s *models.Song) (string, error) {
	src, err := loadTemplate(ctx, ctx.Config.Single.Template, singleTemplate)
	if err != nil {
		return "", err
	}
	rendered, err := renderTemplate(singleTemplate, src, map[string]interface{}{
		"language":             language(ctx),
		"book_title":           ctx.Config.Book.Title,
		"title":                s.Title,
		"id":                   s.ID,
		"content":              raymond.SafeString(s.Body),
		"live_reload_endpoint": ctx.LiveReloadEndpointPath,
	})
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered template: %w", err)
	}
	return finishPage(ctx, doc)
}

func finishPage(ctx *RenderContext, doc *html.Node) (string, error) {
	if ctx.LiveReloadEndpointPath != "" {
		injectLiveReload(doc, ctx.LiveReloadEndpointPath)
	}
	return dom.Render(doc)
}

// injectLiveReload appends a script reloading the page on "reload" events.
func injectLiveReload(doc *html.Node, endpoint string) {
	body := dom.Find(doc, dom.ByAtom(atom.Body))
	if body == nil {
		return
	}
	script := dom.Element(atom.Script)
	script.AppendChild(dom.Text(fmt.Sprintf(
		`new EventSource(%s).addEventListener("reload", function () { location.reload(); });`,
		strconv.Quote(endpoint),
	)))
	body.AppendChild(script)
}
