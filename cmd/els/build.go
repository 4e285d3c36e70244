package main

import (
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/els/internal/build"
)

func buildCmd(flags *globalFlags) *cobra.Command {
	var (
		rf          renderFlags
		output      string
		fingerprint bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render all pages into a static site",
		Long: `Render every page of the pages directory into the output directory.

This command:
  • Expands every custom element of every .html page
  • Copies all other files
  • With --fingerprint, hashes asset names, rewrites src/href
    references and writes manifest.json

Examples:
  els build
  els build -o public --fingerprint
  els build --no-css`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}

			opts := rf.apply(p.cfg.RenderOptions())
			if output != "" && !filepath.IsAbs(output) {
				output, err = filepath.Abs(output)
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			builder := build.New(p.cfg, p.renderer, build.Options{
				Output:      output,
				Fingerprint: fingerprint,
				Render:      &opts,
				OnProgress: func(step string) {
					p.logger.Debug(step)
				},
			})

			result, err := builder.Build(ctx)
			if err != nil {
				return err
			}

			success("Built %d pages (%d components, %d assets) to %s in %s",
				result.Pages, result.Components, result.Assets, result.Output, result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from els.json)")
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "Hash asset names and write manifest.json")

	return cmd
}
