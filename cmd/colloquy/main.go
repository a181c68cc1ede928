package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬  ┬  ┌─┐┌─┐ ┬ ┬┬ ┬
  │  │ ││  │  │ ││─┼┐│ │└┬┘
  └─┘└─┘┴─┘┴─┘└─┘└─┘└└─┘ ┴
`

func main() {
	// AWS credentials and similar settings may live in a local .env.
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "colloquy",
		Short: "Comment rendering for publishing systems",
		Long: `Colloquy renders blog comment lists and comment forms as HTML.

It supports a static list layout and a live-polling list layout, a
comment form with signed-in state, and publishing rendered comment
sections to static hosting.

  • Static and live-polling comment list markup
  • Preview server with fixture pages and hot reload
  • Publish to a directory or S3
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		previewCmd(),
		renderCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the colloquy ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
