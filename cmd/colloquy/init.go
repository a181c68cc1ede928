package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/colloquy-dev/colloquy/internal/config"
	"github.com/colloquy-dev/colloquy/internal/errors"
	"github.com/colloquy-dev/colloquy/internal/preview"
	"github.com/colloquy-dev/colloquy/pkg/identity"
)

func initCmd() *cobra.Command {
	var liveList bool

	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new colloquy project",
		Long: `Create colloquy.json plus sample page and user fixtures in the
current directory.

Examples:
  colloquy init
  colloquy init my-blog --live`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runInit(name, liveList)
		},
	}

	cmd.Flags().BoolVar(&liveList, "live", false, "Enable the live-polling list layout")

	return cmd
}

func runInit(name string, liveList bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	if config.Exists(wd) {
		return errors.Newf(errors.CategoryCLI, "colloquy.json already exists in %s", wd)
	}

	cfg := config.New()
	cfg.Name = name
	cfg.Comments.LiveList = liveList
	cfg.Sessions.Users = "users.json"

	if err := cfg.SaveTo(filepath.Join(wd, config.ConfigFileName)); err != nil {
		return err
	}
	success("Created %s", config.ConfigFileName)

	if err := writeJSON(filepath.Join(wd, cfg.Pages), preview.SamplePages()); err != nil {
		return err
	}
	success("Created %s with sample pages", cfg.Pages)

	users := preview.SampleUsers()
	list := make([]*identity.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	if err := writeJSON(filepath.Join(wd, "users.json"), list); err != nil {
		return err
	}
	success("Created users.json with sample accounts")

	info("")
	info("Next steps:")
	info("  colloquy preview    start the preview server")
	info("  colloquy publish    render comment sections to %s", cfg.Publish.Output)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}
