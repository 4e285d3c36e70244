package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/els/pkg/render"
)

// renderFlags override the project's render options.
type renderFlags struct {
	noCSS       bool
	noScript    bool
	noPatch     bool
	closed      bool
	dropSlotted bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCSS, "no-css", false, "Do not embed component stylesheets")
	cmd.Flags().BoolVar(&f.noScript, "no-script", false, "Do not append the registration script")
	cmd.Flags().BoolVar(&f.noPatch, "no-patch", false, "Do not rewrite attachShadow calls")
	cmd.Flags().BoolVar(&f.closed, "closed", false, "Render closed shadow roots")
	cmd.Flags().BoolVar(&f.dropSlotted, "drop-slotted", false, "Omit light DOM consumed by named slots")
}

func (f *renderFlags) apply(opts render.Options) render.Options {
	if f.noCSS {
		opts.EmbedCSS = false
	}
	if f.noScript {
		opts.IncludeScript = false
	}
	if f.noPatch {
		opts.PatchAttachShadow = false
	}
	if f.closed {
		opts.ShadowMode = render.ShadowClosed
	}
	if f.dropSlotted {
		opts.DropSlotted = true
	}
	return opts
}

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		rf     renderFlags
		ov     render.Overrides
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a single custom element",
		Long: `Render the first element of the given markup (or stdin) into its
server-rendered form, followed by its registration script.

Examples:
  els render card.html
  echo '<my-card title="Hi"></my-card>' | els render
  els render card.html --template shared/card.html --no-script`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}

			markup, err := readInput(firstArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			out, err := p.renderer.RenderComponent(markup, ov, rf.apply(p.cfg.RenderOptions()))
			if err != nil {
				return err
			}
			return writeOutput(output, cmd.OutOrStdout(), out+"\n")
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&ov.Template, "template", "", "Template file overriding the naming convention")
	cmd.Flags().StringVar(&ov.CSS, "css", "", "Stylesheet overriding the naming convention")
	cmd.Flags().StringVar(&ov.JS, "js", "", "Script overriding the naming convention")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
