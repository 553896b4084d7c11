package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// fillInitOptions prompts the user to confirm or override defaults.
func fillInitOptions(opts *InitOptions) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Title == "" {
		opts.Title = "Колядки"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Directory").
				Description("Where to create the song book").
				Value(&opts.Dir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("directory is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Book title").
				Description("Shown in the page title and header").
				Value(&opts.Title),

			huh.NewConfirm().
				Title("Copy the page template?").
				Description("Lets you edit the layout; the built-in one is used otherwise").
				Value(&opts.Template),
		),
	)

	return form.Run()
}
