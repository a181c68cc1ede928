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
		Category: CategoryRender,
		Message:  "Comment list render failed",
		Detail:   "The comment list for a page could not be rendered.",
		DocURL:   "https://colloquy.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Comment form render failed",
		Detail:   "The comment form for a page could not be rendered.",
		DocURL:   "https://colloquy.dev/docs/errors/E002",
	},

	// ============================================
	// Content Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryContent,
		Message:  "Pages file not found",
		Detail:   "The pages JSON file does not exist at the configured path.",
		DocURL:   "https://colloquy.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryContent,
		Message:  "Invalid pages file",
		Detail:   "The pages JSON file is malformed and could not be parsed.",
		DocURL:   "https://colloquy.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryContent,
		Message:  "Page missing slug",
		Detail:   "Every page needs a slug; it names the published output directory.",
		DocURL:   "https://colloquy.dev/docs/errors/E022",
	},
	"E023": {
		Category: CategoryContent,
		Message:  "Duplicate page slug",
		Detail:   "Two pages share a slug. Published pages would overwrite each other.",
		DocURL:   "https://colloquy.dev/docs/errors/E023",
	},

	// ============================================
	// Publish Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryPublish,
		Message:  "Publish destination unavailable",
		Detail:   "The output directory or bucket could not be opened for writing.",
		DocURL:   "https://colloquy.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "One or more pages could not be rendered and written.",
		DocURL:   "https://colloquy.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryPublish,
		Message:  "S3 configuration incomplete",
		Detail:   "Publishing to S3 needs a bucket name and AWS credentials in the environment.",
		DocURL:   "https://colloquy.dev/docs/errors/E062",
	},

	// ============================================
	// Session Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategorySession,
		Message:  "Session store unavailable",
		Detail:   "The configured session store could not be opened.",
		DocURL:   "https://colloquy.dev/docs/errors/E080",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid colloquy.json",
		Detail:   "The colloquy.json configuration file is malformed.",
		DocURL:   "https://colloquy.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://colloquy.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number is invalid or already in use.",
		DocURL:   "https://colloquy.dev/docs/errors/E122",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E141": {
		Category: CategoryCLI,
		Message:  "Not a colloquy project",
		Detail:   "The current directory is not a colloquy project. Run this command from a directory with colloquy.json.",
		DocURL:   "https://colloquy.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryCLI,
		Message:  "Preview server failed",
		Detail:   "The preview server could not start or shut down cleanly.",
		DocURL:   "https://colloquy.dev/docs/errors/E142",
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
