// Package templates provides project scaffolding templates.
//
// Each template is a set of files making up a working els project: an
// els.json, component templates, stylesheets, scripts and pages.
//
// # Available Templates
//
//   - minimal: one component and one page
//   - showcase: nested components, named slots and an inline template
//
// # Usage
//
//	tmpl, err := templates.Get("minimal")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(projectDir, templates.Config{ProjectName: "site"}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
//	{{.ProjectName}}     - Name of the project
//	{{.Description}}     - Project description
package templates
