package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geocine/koliadnyk/internal/renderer"
	"github.com/geocine/koliadnyk/internal/song"
	"github.com/geocine/koliadnyk/internal/utils"
	"github.com/spf13/cobra"
)

func newCmdRender(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <file.md>",
		Short: "Render a single song to its own page",
		Example: `  # Writes колядки/shchedryk.html
  koliadnyk render колядки/shchedryk.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: the song path with .html)")

	return cmd
}

func (a *app) runRender(cmd *cobra.Command, source, output string) error {
	cfg, root, err := a.loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read song '%s': %w", source, err)
	}
	assembler := song.NewAssembler(song.Options{
		HeadingShift: cfg.Single.HeadingShift,
		Logger:       a.logger,
	})
	s, err := assembler.Process(source, data)
	if err != nil {
		return err
	}

	rctx := &renderer.RenderContext{
		Root:     root,
		Config:   cfg,
		AssetsFS: a.assets,
	}
	page, err := renderer.NewHtmlRenderer(a.logger).RenderSong(rctx, s)
	if err != nil {
		return err
	}

	if output == "" {
		output = strings.TrimSuffix(source, filepath.Ext(source)) + ".html"
	}
	if err := utils.WriteFileAtomic(output, []byte(page)); err != nil {
		return err
	}

	_, _ = green.Fprintf(cmd.OutOrStdout(), "Rendered %q to %s\n", s.Title, output)
	return nil
}
