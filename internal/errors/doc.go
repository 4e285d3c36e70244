// Package errors provides structured, actionable error messages for els.
//
// Every failure the renderer can raise has a registered code that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
// Errors are organized into categories:
//   - resource: a template, stylesheet or script could not be read
//   - render: the component pipeline could not produce markup
//   - config: els.json could not be loaded or is invalid
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E001").
//	    WithFile("templates/my-card.html").
//	    WithSuggestion("Create the template or set data-els-template")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Resource not found
//	//
//	//   templates/my-card.html
//	//
//	//   A template, stylesheet or script required by a component could not be read.
//	//
//	//   Hint: Create the template or set data-els-template
//
// Errors compare equal under errors.Is when their codes match, so callers can
// test against a bare New(code) value:
//
//	if errors.Is(err, errors.New("E001")) { ... }
package errors
