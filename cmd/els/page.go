package main

import (
	"github.com/spf13/cobra"
)

func pageCmd(flags *globalFlags) *cobra.Command {
	var (
		rf     renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "page [file]",
		Short: "Render every custom element in an HTML page",
		Long: `Expand every custom element of an HTML document (or stdin),
innermost first, and add one module script with the registrations.

Examples:
  els page pages/index.html -o dist/index.html
  els page < index.html --no-css`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}

			page, err := readInput(firstArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := p.renderer.TransformPage(cmd.Context(), page, rf.apply(p.cfg.RenderOptions()))
			if err != nil {
				return err
			}
			if err := writeOutput(output, cmd.OutOrStdout(), res.Markup); err != nil {
				return err
			}
			if output != "" {
				success("Rendered %d components (%d distinct) to %s", res.Components, len(res.Tags), output)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
