package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/geocine/koliadnyk/internal/config"
	"github.com/geocine/koliadnyk/internal/renderer"
	"github.com/geocine/koliadnyk/internal/utils"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// TemplateFile is the page template written by init.
const TemplateFile = "template.html"

const sampleSong = `---
title: Щедрик
---

# Щедрик

Щедрик, щедрик, щедрівочка,
Прилетіла ластівочка.

:::chorus
Щедрий вечір, добрий вечір,
Добрим людям на здоров'я!
:::

Стала собі щебетати,
Господаря викликати.

Вийди, вийди, господарю,
Подивися на кошару.
`

// InitOptions captures options for scaffolding a new song book
type InitOptions struct {
	Dir      string // default: current directory
	Title    string // default: Колядки
	Template bool   // copy the default page template for editing
}

func newCmdInit(a *app) *cobra.Command {
	var (
		opts InitOptions
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new song book",
		Long: `Create a koliadnyk.toml, a directory per default group with a sample
carol, and optionally a copy of the page template to customize.`,
		Example: `  # Interactive setup in the current directory
  koliadnyk init

  # Non-interactive
  koliadnyk init carols --title "Різдвяні колядки" --template -y`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			if !yes {
				if err := fillInitOptions(&opts); err != nil {
					return err
				}
			}
			if err := Init(opts, a.assets); err != nil {
				return err
			}
			_, _ = green.Fprintf(cmd.OutOrStdout(), "Song book created in %s\n", displayDir(opts.Dir))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "book title")
	cmd.Flags().BoolVar(&opts.Template, "template", false, "copy the default page template")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept defaults without prompting")

	return cmd
}

// Init scaffolds a new song book. It refuses to overwrite an existing config.
func Init(opts InitOptions, assets fs.FS) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}

	cfg := config.NewDefaultConfig()
	if opts.Title != "" {
		cfg.Book.Title = opts.Title
	}

	configPath := filepath.Join(opts.Dir, config.FileName)
	if utils.FileExists(configPath) {
		return fmt.Errorf("%s already exists", configPath)
	}
	if err := utils.CreateDirAll(opts.Dir); err != nil {
		return err
	}

	if opts.Template {
		tmpl, err := renderer.DefaultTemplate(assets, "index.html.hbs")
		if err != nil {
			return err
		}
		if err := utils.WriteFile(filepath.Join(opts.Dir, TemplateFile), tmpl); err != nil {
			return err
		}
		cfg.Build.Template = TemplateFile
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := utils.WriteFile(configPath, data); err != nil {
		return err
	}

	// Seed each group
	for i, g := range cfg.Groups {
		dir := filepath.Join(opts.Dir, g.Dir)
		if err := utils.CreateDirAll(dir); err != nil {
			return err
		}
		if i == 0 {
			if err := utils.WriteFile(filepath.Join(dir, "shchedryk.md"), []byte(sampleSong)); err != nil {
				return err
			}
		}
	}

	gitignore := []byte(cfg.Build.Output + "\n")
	if err := os.WriteFile(filepath.Join(opts.Dir, ".gitignore"), gitignore, 0o644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return nil
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
