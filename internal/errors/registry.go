package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryResource,
		Message:  "Resource not found",
		Detail:   "A template, stylesheet or script required by a component could not be read.",
		DocURL:   "https://els.vango.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Template extraction failed",
		Detail:   "No template file resolved for the component and its script does not assign a template literal to a shadow root's innerHTML.",
		DocURL:   "https://els.vango.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRender,
		Message:  "Not a custom element",
		Detail:   "Custom element names must contain a hyphen (e.g. my-card).",
		DocURL:   "https://els.vango.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRender,
		Message:  "No element in markup",
		Detail:   "The component markup did not contain an element to render.",
		DocURL:   "https://els.vango.dev/docs/errors/E004",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid els.json",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://els.vango.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid shadow root mode",
		Detail:   "render.shadowMode must be \"open\" or \"closed\".",
		DocURL:   "https://els.vango.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 0 and 65535.",
		DocURL:   "https://els.vango.dev/docs/errors/E122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Invalid resource source",
		Detail:   "source.kind must be \"disk\" or \"s3\", and an s3 source needs a bucket.",
		DocURL:   "https://els.vango.dev/docs/errors/E123",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Input not readable",
		Detail:   "The markup file passed to the command could not be read.",
		DocURL:   "https://els.vango.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Not an els project",
		Detail:   "No els.json found in the current directory or any parent.",
		DocURL:   "https://els.vango.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Unknown project template",
		Detail:   "The requested scaffolding template does not exist.",
		DocURL:   "https://els.vango.dev/docs/errors/E142",
	},
	"E143": {
		Category: CategoryCLI,
		Message:  "Project already exists",
		Detail:   "The target directory already contains an els.json.",
		DocURL:   "https://els.vango.dev/docs/errors/E143",
	},
	"E144": {
		Category: CategoryCLI,
		Message:  "Build failed",
		Detail:   "The output directory could not be prepared or written.",
		DocURL:   "https://els.vango.dev/docs/errors/E144",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
