package renderer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymerick/raymond"
	"github.com/geocine/koliadnyk/internal/utils"
)

const (
	indexTemplate  = "index.html.hbs"
	singleTemplate = "single.html.hbs"
	templatesDir   = "frontend/templates/"
)

// loadTemplate returns the template source. A configured path is read
// relative to the book root; otherwise the named default is taken from the
// embedded assets, falling back to frontend/templates on disk.
func loadTemplate(ctx *RenderContext, configured, name string) (string, error) {
	if configured != "" {
		path := configured
		if !filepath.IsAbs(path) {
			path = filepath.Join(ctx.Root, path)
		}
		return utils.ReadToString(path)
	}

	var tmplFS fs.FS
	if ctx.AssetsFS != nil {
		tmplFS = ctx.AssetsFS
	} else {
		if !utils.DirExists(templatesDir) {
			return "", fmt.Errorf("templates directory not found at %s", templatesDir)
		}
		tmplFS = os.DirFS(".")
	}

	data, err := fs.ReadFile(tmplFS, templatesDir+name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

// DefaultTemplate returns an embedded default template, for scaffolding.
func DefaultTemplate(assets fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(assets, templatesDir+name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// renderTemplate runs the Handlebars template src over data.
func renderTemplate(name, src string, data map[string]interface{}) (string, error) {
	tpl, err := raymond.Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", name, err)
	}
	tpl.RegisterHelpers(map[string]interface{}{
		"eq": func(a interface{}, b interface{}) bool {
			return fmt.Sprint(a) == fmt.Sprint(b)
		},
	})

	out, err := tpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return out, nil
}

func language(ctx *RenderContext) string {
	if ctx.Config.Book.Language == "" {
		return "uk"
	}
	return ctx.Config.Book.Language
}

// indexData is the context of the collection page template.
func indexData(ctx *RenderContext) map[string]interface{} {
	groups := make([]map[string]interface{}, len(ctx.Collections))
	total := 0
	for i, c := range ctx.Collections {
		groups[i] = map[string]interface{}{
			"name":    c.Group.Name,
			"title":   c.Group.Title,
			"section": c.Group.Section,
			"nav":     c.Group.Nav,
			"count":   len(c.Songs),
		}
		total += len(c.Songs)
	}

	return map[string]interface{}{
		"language":             language(ctx),
		"title":                ctx.Config.Book.Title,
		"description":          ctx.Config.Book.Description,
		"groups":               groups,
		"songs_total":          total,
		"live_reload_endpoint": ctx.LiveReloadEndpointPath,
	}
}
