package main

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/colloquy-dev/colloquy"
	"github.com/colloquy-dev/colloquy/internal/config"
	"github.com/colloquy-dev/colloquy/internal/preview"
	"github.com/colloquy-dev/colloquy/pkg/publish"
)

func publishCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render every page's comment section to the publish destination",
		Long: `Render the comment section of every page in the project's pages
file and write the results to the configured destination.

The destination is the publish.output directory, or the configured S3
bucket when publish.s3.bucket is set. S3 credentials come from the
usual AWS environment variables (a local .env is honored).

Examples:
  colloquy publish
  colloquy publish --output=dist/comments`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (overrides colloquy.json)")

	return cmd
}

func runPublish(output string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if output != "" {
		cfg.Publish.Output = output
	}

	pages, err := preview.LoadPages(cfg.PagesPath())
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		warn("Nothing to publish: %s is empty", cfg.Pages)
		return nil
	}

	engine, cleanup, err := renderEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := publishStore(cfg)
	if err != nil {
		return err
	}

	n, err := engine.Publish(context.Background(), store, pages)
	if err != nil {
		errorMsg("Published %d of %d page(s) before failing", n, len(pages))
		return err
	}

	if cfg.HasS3() {
		success("Published %d page(s) to s3://%s/%s", n, cfg.Publish.S3.Bucket, cfg.Publish.S3.Prefix)
	} else {
		success("Published %d page(s) to %s", n, cfg.Publish.Output)
	}
	return nil
}

// renderEngine builds an engine for batch rendering. Sessions play no part
// in published output, so the store is forced to memory regardless of the
// project's preview configuration.
func renderEngine(cfg *config.Config) (*colloquy.Engine, func() error, error) {
	batch := *cfg
	batch.Sessions.Store = config.StoreMemory
	return preview.BuildEngine(&batch, nil, nil)
}

// publishStore opens the configured publish destination.
func publishStore(cfg *config.Config) (publish.Store, error) {
	if !cfg.HasS3() {
		return publish.NewDirStore(cfg.OutputPath())
	}

	s3cfg := cfg.Publish.S3
	client := s3.New(s3.Options{
		Region:      s3cfg.Region,
		Credentials: envCredentials(),
	})

	opts := []publish.S3Option{}
	if s3cfg.Prefix != "" {
		opts = append(opts, publish.WithS3Prefix(s3cfg.Prefix))
	}
	if s3cfg.CacheControl != "" {
		opts = append(opts, publish.WithS3CacheControl(s3cfg.CacheControl))
	}
	return publish.NewS3Store(client, s3cfg.Bucket, opts...), nil
}

// envCredentials reads static AWS credentials from the environment. The CLI
// deliberately avoids the full AWS config resolution chain; publishing runs
// in CI where env credentials are the norm.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "colloquy-env",
		}, nil
	})
}
