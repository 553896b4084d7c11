// Package cli provides the koliadnyk commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/geocine/koliadnyk/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

// app carries the state shared by every command.
type app struct {
	assets     fs.FS
	configPath string
	verbose    bool
	noColor    bool
	logger     *slog.Logger
}

// NewCmdRoot creates the root command. assets holds the embedded default
// templates under frontend/templates.
func NewCmdRoot(assets fs.FS) *cobra.Command {
	a := &app{assets: assets, logger: slog.Default()}

	cmd := &cobra.Command{
		Use:   "koliadnyk",
		Short: "Build a song book of carols from markdown",
		Long: `koliadnyk turns a directory of markdown songs into a single HTML song book.

Each song's chorus is written once and repeated after every verse, headings
are fitted into the page, and songs are listed in Ukrainian alphabetical
order with a table of contents per group.

Get started by running: koliadnyk init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.FileName, "config file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newCmdBuild(a))
	cmd.AddCommand(newCmdRender(a))
	cmd.AddCommand(newCmdServe(a))
	cmd.AddCommand(newCmdClean(a))
	cmd.AddCommand(newCmdInit(a))
	cmd.AddCommand(newCmdImport(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) {
	if a.noColor {
		color.NoColor = true
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		a.logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// loadConfig reads the config file, falling back to defaults when it does not
// exist. It returns the book root: the directory holding the config file.
func (a *app) loadConfig() (*config.Config, string, error) {
	root := filepath.Dir(a.configPath)

	cfg, err := config.LoadFromFile(a.configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", err
		}
		a.logger.Warn("could not load config file, using defaults", "path", a.configPath)
		cfg = config.NewDefaultConfig()
		cfg.UpdateFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

var (
	green = color.New(color.FgGreen)
	bold  = color.New(color.Bold)
	dim   = color.New(color.Faint)
)
