package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/els/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬  ┌─┐
  ├┤ │  └─┐
  └─┘┴─┘└─┘
`

func main() {
	if os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by all commands.
type globalFlags struct {
	dir     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "els",
		Short: "Server-side rendering for web components",
		Long: `els renders custom elements on the server.

Each custom element is expanded into a declarative shadow root built
from its template, stylesheet and script, so browsers can paint it
before any component JavaScript runs. Features include:

  • Attribute data binding and slot distribution
  • One de-duplicated module script per page
  • Resources from disk or S3
  • HTTP server with page transform, metrics and live reload`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", "", "Project directory (default: nearest els.json)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(flags),
		pageCmd(flags),
		buildCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the els banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s\n", fmt.Sprintf(format, args...))
}
