package cli

import (
	"fmt"
	"os"

	"github.com/geocine/koliadnyk/internal/renderer"
	"github.com/geocine/koliadnyk/internal/utils"
	"github.com/spf13/cobra"
)

func newCmdClean(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the built song book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runClean(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file to remove (default: build.output from config)")

	return cmd
}

func (a *app) runClean(cmd *cobra.Command, output string) error {
	cfg, root, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := overrideOutput(cfg, output); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	target := renderer.OutputPath(&renderer.RenderContext{Root: root, Config: cfg})
	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		_, _ = dim.Fprintf(out, "Nothing to clean; '%s' does not exist.\n", target)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat '%s': %w", target, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory '%s'", target)
	}

	if err := os.Remove(target); err != nil {
		return fmt.Errorf("failed to remove '%s': %w", target, err)
	}
	_, _ = green.Fprintf(out, "Removed '%s' (%s).\n", target, utils.HumanBytes(info.Size()))
	return nil
}
