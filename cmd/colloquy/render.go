package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/colloquy-dev/colloquy/internal/config"
	"github.com/colloquy-dev/colloquy/internal/errors"
	"github.com/colloquy-dev/colloquy/internal/preview"
	"github.com/colloquy-dev/colloquy/pkg/content"
)

func renderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "Render one page's comment section",
		Long: `Render the comment section for a single page to stdout or a file.

The page is looked up by slug in the project's pages file.

Examples:
  colloquy render hello-world
  colloquy render hello-world -o comments.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write markup to a file instead of stdout")

	return cmd
}

func runRender(slug, output string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pages, err := preview.LoadPages(cfg.PagesPath())
	if err != nil {
		return err
	}

	var page *content.Page
	for _, p := range pages {
		if p.Slug == slug {
			page = p
			break
		}
	}
	if page == nil {
		return errors.Newf(errors.CategoryContent, "no page with slug %q in %s", slug, cfg.Pages)
	}

	engine, cleanup, err := renderEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := engine.RenderPage(context.Background(), page, w); err != nil {
		return err
	}

	if output != "" {
		success("Rendered %s to %s", slug, output)
	}
	return nil
}
