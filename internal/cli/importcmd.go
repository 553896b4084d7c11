package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/geocine/koliadnyk/internal/importer"
	"github.com/spf13/cobra"
)

func newCmdImport(a *app) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "import <urls.txt>",
		Short: "Import songs from web pages",
		Long: `Download every page listed in the file (one URL per line) and save
the song on it as markdown in a group's directory. Pages that cannot be
fetched or hold no song are skipped.`,
		Example: `  koliadnyk import urls.txt --group віншування`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, args[0], group)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "group to import into (default: the first group)")

	return cmd
}

func (a *app) runImport(cmd *cobra.Command, list, group string) error {
	cfg, root, err := a.loadConfig()
	if err != nil {
		return err
	}

	g := cfg.Groups[0]
	if group != "" {
		var ok bool
		if g, ok = cfg.Group(group); !ok {
			return fmt.Errorf("unknown group '%s'", group)
		}
	}

	f, err := os.Open(list)
	if err != nil {
		return fmt.Errorf("failed to open url list: %w", err)
	}
	defer f.Close()

	urls, err := importer.ReadURLs(f)
	if err != nil {
		return err
	}

	im := importer.New(importer.Options{
		TitleClass:   cfg.Import.TitleClass,
		ContentClass: cfg.Import.ContentClass,
		Dir:          filepath.Join(root, g.Dir),
		Logger:       a.logger,
	})
	written, err := im.ImportAll(cmd.Context(), urls)
	if err != nil {
		return err
	}

	_, _ = green.Fprintf(cmd.OutOrStdout(), "Imported %d of %d songs into %s\n", len(written), len(urls), g.Name)
	return nil
}
