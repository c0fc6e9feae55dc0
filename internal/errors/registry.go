package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// Error codes used across the module.
const (
	CodeTeleportArity      = "E120"
	CodeTeleportTarget     = "E121"
	CodeTeleportDestroyed  = "E122"
	CodeRedirectEvent      = "E123"
	CodeConfigRead         = "E130"
	CodeConfigFormat       = "E131"
	CodeConfigInvalid      = "E132"
	CodeDocumentUnreadable = "E140"
	CodeRenderFailed       = "E141"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Teleport Errors (E120-E129)
	// ============================================

	CodeTeleportArity: {
		Category: CategoryValidation,
		Message:  "Teleport must have exactly one element child",
		Detail:   "A teleport relocates a single element. Text, empty results and multiple elements cannot be moved under the target container.",
		DocURL:   "https://vango.dev/docs/errors/E120",
	},
	CodeTeleportTarget: {
		Category: CategoryRuntime,
		Message:  "Teleport target not found",
		Detail:   "The target selector matched no element in the document. Targets must exist before the teleport is rendered.",
		DocURL:   "https://vango.dev/docs/errors/E121",
	},
	CodeTeleportDestroyed: {
		Category: CategoryRuntime,
		Message:  "Teleport used after destroy",
		Detail:   "The teleport's placeholder has left the tree. A new teleport must be rendered instead.",
		DocURL:   "https://vango.dev/docs/errors/E122",
	},
	CodeRedirectEvent: {
		Category: CategoryConfig,
		Message:  "Event cannot be redirected",
		Detail:   "Native interaction events (pointer, keyboard, focus, form, touch, drag, clipboard, scroll) keep their own DOM path and are never re-emitted on the placeholder.",
		DocURL:   "https://vango.dev/docs/errors/E123",
	},

	// ============================================
	// Config Errors (E130-E139)
	// ============================================

	CodeConfigRead: {
		Category: CategoryConfig,
		Message:  "Cannot read config file",
		Detail:   "The config file exists but could not be read or parsed.",
		DocURL:   "https://vango.dev/docs/errors/E130",
	},
	CodeConfigFormat: {
		Category: CategoryConfig,
		Message:  "Unsupported config format",
		Detail:   "Config files must end in .json, .yaml, .yml or .toml.",
		DocURL:   "https://vango.dev/docs/errors/E131",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config value is outside the accepted set.",
		DocURL:   "https://vango.dev/docs/errors/E132",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	CodeDocumentUnreadable: {
		Category: CategoryCLI,
		Message:  "Cannot read document",
		Detail:   "The HTML document given to the command could not be opened or parsed.",
		DocURL:   "https://vango.dev/docs/errors/E140",
	},
	CodeRenderFailed: {
		Category: CategoryCLI,
		Message:  "Render failed",
		Detail:   "Mounting the component into the document returned an error.",
		DocURL:   "https://vango.dev/docs/errors/E141",
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
