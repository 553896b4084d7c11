package loader

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/geocine/koliadnyk/internal/config"
	"github.com/geocine/koliadnyk/internal/models"
	"github.com/geocine/koliadnyk/internal/song"
	"github.com/geocine/koliadnyk/internal/utils"
	"golang.org/x/sync/errgroup"
)

// IgnoreFile lists, one glob per line, the files of a group directory to
// leave out of the book.
const IgnoreFile = ".koliadnykignore"

// BookLoader handles loading the song groups of a book from disk
type BookLoader struct {
	rootDir   string
	config    *config.Config
	assembler *song.Assembler
	logger    *slog.Logger
}

// NewBookLoader creates a new book loader. Songs are assembled with the
// collection heading shift.
func NewBookLoader(rootDir string, cfg *config.Config, logger *slog.Logger) *BookLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookLoader{
		rootDir: rootDir,
		config:  cfg,
		assembler: song.NewAssembler(song.Options{
			HeadingShift: cfg.Build.HeadingShift,
			Logger:       logger,
		}),
		logger: logger,
	}
}

type job struct {
	group int
	index int
	path  string
}

// Load processes every song of every group concurrently and returns one
// sorted collection per group, in config order. Song ids must be unique
// across the whole book.
func (bl *BookLoader) Load(ctx context.Context) ([]*models.Collection, error) {
	groups := bl.config.Groups
	results := make([][]*models.Song, len(groups))
	var jobs []job
	for gi, g := range groups {
		paths, err := bl.Sources(g)
		if err != nil {
			return nil, err
		}
		results[gi] = make([]*models.Song, len(paths))
		for i, p := range paths {
			jobs = append(jobs, job{group: gi, index: i, path: p})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(bl.workers())
	for _, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := bl.LoadSong(j.path)
			if err != nil {
				return err
			}
			results[j.group][j.index] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	collections := make([]*models.Collection, len(groups))
	for gi, g := range groups {
		songs := results[gi]
		song.SortByTitle(songs)
		c, err := models.NewCollection(Group(g), songs)
		if err != nil {
			return nil, fmt.Errorf("group '%s': %w", g.Name, err)
		}
		collections[gi] = c
		bl.logger.Debug("loaded group", "group", g.Name, "songs", len(songs))
	}

	if err := models.CheckUnique(collections...); err != nil {
		return nil, err
	}
	return collections, nil
}

// LoadSong reads and processes a single song.
func (bl *BookLoader) LoadSong(path string) (*models.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read song '%s': %w", path, err)
	}
	return bl.assembler.Process(bl.relative(path), data)
}

// Sources lists the song files of a group in lexical order, skipping the
// ones named in the group's ignore file. A missing group directory yields
// no songs.
func (bl *BookLoader) Sources(g config.GroupConfig) ([]string, error) {
	dir := filepath.Join(bl.rootDir, g.Dir)
	if !utils.DirExists(dir) {
		bl.logger.Warn("group directory not found", "group", g.Name, "dir", dir)
		return nil, nil
	}

	ignored, err := readIgnoreFile(filepath.Join(dir, IgnoreFile))
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, pattern := range g.Patterns() {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern '%s' for group '%s': %w", pattern, g.Name, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if isIgnored(filepath.Base(m), ignored) {
				bl.logger.Debug("ignoring song", "path", m)
				continue
			}
			paths = append(paths, m)
		}
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func (bl *BookLoader) workers() int {
	if bl.config.Build.Workers > 0 {
		return bl.config.Build.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (bl *BookLoader) relative(path string) string {
	if rel, err := filepath.Rel(bl.rootDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// Group converts a group config to the model the renderer works with.
func Group(g config.GroupConfig) models.Group {
	return models.Group{
		Name:    g.Name,
		Title:   g.Title,
		Section: g.Section,
		Nav:     g.Nav,
	}
}

func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	defer f.Close()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return patterns, nil
}

func isIgnored(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
