package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/els/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new els project",
		Long: `Create a new els project in dir (default: current directory).

Templates:
  minimal   One component and one page (default)
  showcase  Nested components, named slots and an inline template

Examples:
  els init
  els init my-site
  els init my-site --template=showcase`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := firstArg(args)
			if dir == "" {
				dir = "."
			}
			return runInit(cmd, dir, template, description)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template (minimal, showcase)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func runInit(cmd *cobra.Command, dir, templateName, description string) error {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	info("Creating project from '%s' template...", templateName)
	cfg := templates.Config{
		ProjectName: filepath.Base(projectDir),
		Description: description,
	}
	if err := tmpl.Create(projectDir, cfg); err != nil {
		return err
	}

	success("Created %s", projectDir)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  To get started:")
	fmt.Fprintln(out)
	if dir != "." {
		fmt.Fprintf(out, "    cd %s\n", dir)
	}
	fmt.Fprintln(out, "    els serve")
	fmt.Fprintln(out)
	return nil
}
