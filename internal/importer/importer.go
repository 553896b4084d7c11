// Package importer scrapes song pages into markdown sources.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/geocine/koliadnyk/internal/dom"
	"github.com/geocine/koliadnyk/internal/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrFetch is returned when a page cannot be downloaded.
	ErrFetch = errors.New("failed to fetch page")
	// ErrNoSong is returned when a page has no title or no content element.
	ErrNoSong = errors.New("no song found on page")
)

// Options configures an Importer.
type Options struct {
	// TitleClass is the class of the element holding the song title.
	TitleClass string
	// ContentClass is the class of the element holding the song text.
	ContentClass string
	// Dir is where imported songs are written.
	Dir    string
	Client *http.Client
	Logger *slog.Logger
}

// Importer downloads song pages and writes them as markdown.
type Importer struct {
	opts Options
	log  *slog.Logger
}

// New creates an Importer.
func New(opts Options) *Importer {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Importer{opts: opts, log: opts.Logger}
}

// ReadURLs reads one URL per line, skipping blank lines and # comments.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read urls: %w", err)
	}
	return urls, nil
}

// ImportAll imports every URL in order. Pages that cannot be fetched or hold
// no song are logged and skipped; other failures and cancellation stop the
// import. It returns the paths written.
func (im *Importer) ImportAll(ctx context.Context, urls []string) ([]string, error) {
	var written []string
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		p, err := im.Import(ctx, u)
		if err != nil && ctx.Err() != nil {
			return written, ctx.Err()
		}
		if errors.Is(err, ErrFetch) || errors.Is(err, ErrNoSong) {
			im.log.Warn("skipping page", "url", u, "error", err)
			continue
		}
		if err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

// Import fetches one page and writes its song to Dir, named after the last
// segment of the URL path. It returns the path written.
func (im *Importer) Import(ctx context.Context, rawURL string) (string, error) {
	name, err := SongName(rawURL)
	if err != nil {
		return "", err
	}

	doc, err := im.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	title, markdown, err := Extract(doc, im.opts.TitleClass, im.opts.ContentClass)
	if err != nil {
		return "", fmt.Errorf("%s: %w", rawURL, err)
	}

	out := filepath.Join(im.opts.Dir, name+".md")
	content := fmt.Sprintf("# %s\n\n%s\n", title, markdown)
	if err := utils.WriteFile(out, []byte(content)); err != nil {
		return "", err
	}
	im.log.Info("imported song", "url", rawURL, "path", out, "title", title)
	return out, nil
}

func (im *Importer) fetch(ctx context.Context, rawURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, rawURL, err)
	}
	resp, err := im.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %s: status %d", ErrFetch, rawURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, rawURL, err)
	}
	return doc, nil
}

// Extract finds the song on a page: the title is the text of the first link
// inside the first titleClass element (or of the element itself), the
// content is the first contentClass element converted to markdown.
func Extract(doc *html.Node, titleClass, contentClass string) (string, string, error) {
	header := dom.Find(doc, dom.ByClass(titleClass))
	if header == nil {
		return "", "", fmt.Errorf("%w: no element with class %q", ErrNoSong, titleClass)
	}
	titleNode := header
	if a := dom.Find(header, dom.ByAtom(atom.A)); a != nil {
		titleNode = a
	}
	title := dom.TextContent(titleNode)
	if title == "" {
		return "", "", fmt.Errorf("%w: empty title", ErrNoSong)
	}

	content := dom.Find(doc, dom.ByClass(contentClass))
	if content == nil {
		return "", "", fmt.Errorf("%w: no element with class %q", ErrNoSong, contentClass)
	}
	raw, err := dom.Render(content)
	if err != nil {
		return "", "", err
	}
	markdown, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		return "", "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return title, strings.TrimSpace(markdown), nil
}

// SongName returns the file stem for a song page: the last segment of the URL
// path without its extension.
func SongName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	// u.Path is already decoded.
	seg := path.Base(strings.TrimSuffix(u.Path, "/"))
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `/\`) {
		return "", fmt.Errorf("invalid url %q: no usable page name in path", rawURL)
	}
	return seg, nil
}
