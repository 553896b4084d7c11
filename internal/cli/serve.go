package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/geocine/koliadnyk/internal/renderer"
	"github.com/geocine/koliadnyk/internal/server"
	"github.com/spf13/cobra"
)

func newCmdServe(a *app) *cobra.Command {
	var (
		host string
		port int
		open bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the song book with live reload",
		Long: `Build the song book, serve it locally and rebuild whenever a song,
the template or the config changes. Open pages reload themselves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context(), host, port, open)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "hostname to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "port to serve on")
	cmd.Flags().BoolVar(&open, "open", false, "open in browser")

	return cmd
}

func (a *app) runServe(ctx context.Context, host string, port int, open bool) error {
	cfg, root, err := a.loadConfig()
	if err != nil {
		return err
	}

	watch := []string{a.configPath}
	if cfg.Build.Template != "" {
		watch = append(watch, filepath.Join(root, cfg.Build.Template))
	}
	for _, g := range cfg.Groups {
		watch = append(watch, filepath.Join(root, g.Dir))
	}

	srv := server.New(server.Options{
		Host:   host,
		Port:   port,
		Output: renderer.OutputPath(&renderer.RenderContext{Root: root, Config: cfg}),
		Watch:  watch,
		Build: func(ctx context.Context) error {
			// Config is re-read so edits to it apply without a restart.
			cfg, root, err := a.loadConfig()
			if err != nil {
				return err
			}
			_, err = a.build(ctx, cfg, root, server.LiveReloadPath)
			return err
		},
		Logger: a.logger,
	})

	if open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			if err := server.OpenBrowser("http://" + srv.Addr()); err != nil {
				a.logger.Warn("could not open browser", "error", err)
			}
		}()
	}

	return srv.Run(ctx)
}
