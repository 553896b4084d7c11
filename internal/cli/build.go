package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/geocine/koliadnyk/internal/config"
	"github.com/geocine/koliadnyk/internal/loader"
	"github.com/geocine/koliadnyk/internal/renderer"
	"github.com/spf13/cobra"
)

func newCmdBuild(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the song book",
		Example: `  # Build to the output set in koliadnyk.toml
  koliadnyk build

  # Build somewhere else
  koliadnyk build --output public/index.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: build.output from config)")

	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, output string) error {
	cfg, root, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := overrideOutput(cfg, output); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = bold.Fprintf(out, "Building book: %s\n", cfg.Book.Title)

	rctx, err := a.build(cmd.Context(), cfg, root, "")
	if err != nil {
		return err
	}

	for _, c := range rctx.Collections {
		fmt.Fprintf(out, "  %s: %d songs\n", c.Group.Name, len(c.Songs))
	}
	_, _ = green.Fprintf(out, "Book built successfully to %s!\n", renderer.OutputPath(rctx))
	return nil
}

// overrideOutput points the build at a path given on the command line,
// relative to the working directory.
func overrideOutput(cfg *config.Config, output string) error {
	if output == "" {
		return nil
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("invalid output path '%s': %w", output, err)
	}
	cfg.Build.Output = abs
	return nil
}

// build loads every group and writes the collection page.
func (a *app) build(ctx context.Context, cfg *config.Config, root, liveReload string) (*renderer.RenderContext, error) {
	collections, err := loader.NewBookLoader(root, cfg, a.logger).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}

	rctx := &renderer.RenderContext{
		Root:                   root,
		Config:                 cfg,
		Collections:            collections,
		LiveReloadEndpointPath: liveReload,
		AssetsFS:               a.assets,
	}
	if err := renderer.NewHtmlRenderer(a.logger).Render(rctx); err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	return rctx, nil
}
