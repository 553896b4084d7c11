package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up in the book root.
const FileName = "koliadnyk.toml"

// EnvPrefix marks environment variables that override config values.
const EnvPrefix = "KOLIADNYK_"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// BookConfig contains metadata about the song book
type BookConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Language    string `toml:"language"`
}

// DefaultBookConfig returns a book config with defaults
func DefaultBookConfig() BookConfig {
	return BookConfig{
		Title:       "Колядки",
		Description: "",
		Language:    "uk",
	}
}

// BuildConfig contains settings for the collection page
type BuildConfig struct {
	Template     string `toml:"template"` // Empty uses the embedded template
	Output       string `toml:"output"`
	HeadingShift int    `toml:"heading-shift"`
	Workers      int    `toml:"workers"` // 0 means GOMAXPROCS
}

// DefaultBuildConfig returns a build config with defaults
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Template:     "",
		Output:       "index.html",
		HeadingShift: 2,
		Workers:      0,
	}
}

// SingleConfig contains settings for single song pages
type SingleConfig struct {
	Template     string `toml:"template"`
	HeadingShift int    `toml:"heading-shift"`
}

// DefaultSingleConfig returns a single page config with defaults
func DefaultSingleConfig() SingleConfig {
	return SingleConfig{}
}

// GroupConfig describes one group of songs and where it goes in the page
type GroupConfig struct {
	Name    string `toml:"name"`
	Title   string `toml:"title"`
	Dir     string `toml:"dir"`     // Defaults to the name
	Pattern string `toml:"pattern"` // Comma separated globs, defaults to *.md
	Section string `toml:"section"` // DOM id of the section, defaults to the name
	Nav     string `toml:"nav"`     // DOM id of the table of contents, defaults to "зміст-" + name
}

// Patterns returns the globs of the group's pattern.
func (g GroupConfig) Patterns() []string {
	var out []string
	for _, p := range strings.Split(g.Pattern, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (g *GroupConfig) applyDefaults() {
	if g.Dir == "" {
		g.Dir = g.Name
	}
	if g.Pattern == "" {
		g.Pattern = "*.md"
	}
	if g.Section == "" {
		g.Section = g.Name
	}
	if g.Nav == "" {
		g.Nav = "зміст-" + g.Name
	}
	if g.Title == "" {
		g.Title = g.Name
	}
}

// DefaultGroups returns the carols and the greetings groups
func DefaultGroups() []GroupConfig {
	groups := []GroupConfig{
		{Name: "колядки", Title: "Колядки"},
		{Name: "віншування", Title: "Віншування"},
	}
	for i := range groups {
		groups[i].applyDefaults()
	}
	return groups
}

// ImportConfig tells the importer where a scraped page keeps its song
type ImportConfig struct {
	TitleClass   string `toml:"title-class"`
	ContentClass string `toml:"content-class"`
}

// DefaultImportConfig returns an import config with defaults
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TitleClass:   "art-postheader",
		ContentClass: "art-article",
	}
}

// Config is the top-level configuration
type Config struct {
	Book   BookConfig    `toml:"book"`
	Build  BuildConfig   `toml:"build"`
	Single SingleConfig  `toml:"single"`
	Groups []GroupConfig `toml:"groups"`
	Import ImportConfig  `toml:"import"`
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Book:   DefaultBookConfig(),
		Build:  DefaultBuildConfig(),
		Single: DefaultSingleConfig(),
		Groups: DefaultGroups(),
		Import: DefaultImportConfig(),
	}
}

// LoadFromFile loads configuration from a koliadnyk.toml file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadFromString loads configuration from a TOML string
func LoadFromString(content string) (*Config, error) {
	cfg, err := parse([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	cfg := NewDefaultConfig()
	// Declared groups replace the defaults rather than merging with them.
	cfg.Groups = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Groups) == 0 {
		cfg.Groups = DefaultGroups()
	}
	for i := range cfg.Groups {
		cfg.Groups[i].applyDefaults()
	}

	cfg.UpdateFromEnv()
	return cfg, nil
}

// UpdateFromEnv updates config from environment variables
// Variables starting with KOLIADNYK_ are used
// KOLIADNYK_FOO_BAR -> foo-bar
// KOLIADNYK_FOO__BAR -> foo.bar
func (c *Config) UpdateFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}

		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], EnvPrefix)
		value := parts[1]

		configKey := strings.ToLower(key)
		configKey = strings.ReplaceAll(configKey, "__", ".")
		configKey = strings.ReplaceAll(configKey, "_", "-")

		c.Set(configKey, value)
	}
}

// Set sets a configuration value using dot notation (e.g., "book.title", "build.heading-shift").
// Unknown keys and values that do not parse are ignored.
func (c *Config) Set(key, value string) {
	section, name, ok := strings.Cut(key, ".")
	if !ok {
		return
	}

	switch section {
	case "book":
		c.setBookValue(name, value)
	case "build":
		c.setBuildValue(name, value)
	case "single":
		c.setSingleValue(name, value)
	case "import":
		c.setImportValue(name, value)
	}
}

func (c *Config) setBookValue(key, value string) {
	switch key {
	case "title":
		c.Book.Title = value
	case "description":
		c.Book.Description = value
	case "language":
		c.Book.Language = value
	}
}

func (c *Config) setBuildValue(key, value string) {
	switch key {
	case "template":
		c.Build.Template = value
	case "output":
		c.Build.Output = value
	case "heading-shift":
		setInt(&c.Build.HeadingShift, value)
	case "workers":
		setInt(&c.Build.Workers, value)
	}
}

func (c *Config) setSingleValue(key, value string) {
	switch key {
	case "template":
		c.Single.Template = value
	case "heading-shift":
		setInt(&c.Single.HeadingShift, value)
	}
}

func (c *Config) setImportValue(key, value string) {
	switch key {
	case "title-class":
		c.Import.TitleClass = value
	case "content-class":
		c.Import.ContentClass = value
	}
}

func setInt(dst *int, value string) {
	if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		*dst = n
	}
}

// Group returns the group called name.
func (c *Config) Group(name string) (GroupConfig, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupConfig{}, false
}

// Validate checks the config for values the build cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Build.Output == "" {
		errs = append(errs, errors.New("build.output is empty"))
	}
	if c.Build.HeadingShift < 0 {
		errs = append(errs, fmt.Errorf("build.heading-shift is negative: %d", c.Build.HeadingShift))
	}
	if c.Single.HeadingShift < 0 {
		errs = append(errs, fmt.Errorf("single.heading-shift is negative: %d", c.Single.HeadingShift))
	}
	if c.Build.Workers < 0 {
		errs = append(errs, fmt.Errorf("build.workers is negative: %d", c.Build.Workers))
	}
	if len(c.Groups) == 0 {
		errs = append(errs, errors.New("no groups configured"))
	}

	names := make(map[string]bool)
	ids := make(map[string]string)
	for i, g := range c.Groups {
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("groups[%d] has no name", i))
			continue
		}
		if names[g.Name] {
			errs = append(errs, fmt.Errorf("group %q is declared twice", g.Name))
		}
		names[g.Name] = true
		if g.Dir == "" {
			errs = append(errs, fmt.Errorf("group %q has no dir", g.Name))
		}
		if len(g.Patterns()) == 0 {
			errs = append(errs, fmt.Errorf("group %q has no pattern", g.Name))
		}
		for _, id := range []string{g.Section, g.Nav} {
			if owner, ok := ids[id]; ok && owner != g.Name {
				errs = append(errs, fmt.Errorf("groups %q and %q share the element id %q", owner, g.Name, id))
			}
			ids[id] = g.Name
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
