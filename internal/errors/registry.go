package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/domkit/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Registry and dispatch errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRegistry,
		Message:  "Unsupported removal shape",
		Detail:   "off accepts either no arguments (remove every listener) or exactly an event name, a selector and a handler (remove the first exact match).",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryDispatch,
		Message:  "Handler is not callable",
		Detail:   "The handler is neither a function nor an object with a HandleEvent method. Handlers are not validated at registration, so this surfaces the first time the event fires.",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategorySelector,
		Message:  "Invalid selector",
		Detail:   "The selector could not be compiled.",
		DocURL:   docBase + "E003",
	},
	"E004": {
		Category: CategorySelector,
		Message:  "Native matching unavailable",
		Detail:   "The engine was configured for native matching but the node does not implement Matches.",
		DocURL:   docBase + "E004",
	},
	"E005": {
		Category: CategoryRegistry,
		Message:  "Invalid argument",
		Detail:   "An argument passed to on or off has the wrong type.",
		DocURL:   docBase + "E005",
	},
	"E006": {
		Category: CategoryDispatch,
		Message:  "Listener panicked",
		Detail:   "A listener panicked while handling an event. The panic was recovered and dispatch continued with the next listener.",
		DocURL:   docBase + "E006",
	},
	"E007": {
		Category: CategoryRegistry,
		Message:  "Unknown listener",
		Detail:   "No listener with this id was bound through the inspect server, or it was already removed.",
		DocURL:   docBase + "E007",
	},

	// ============================================
	// Document errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryDocument,
		Message:  "Document parse failed",
		Detail:   "The HTML input could not be parsed.",
		DocURL:   docBase + "E020",
	},
	"E021": {
		Category: CategoryDocument,
		Message:  "Node not found",
		Detail:   "No node in the document matches the selector.",
		DocURL:   docBase + "E021",
	},
	"E022": {
		Category: CategoryDocument,
		Message:  "Foreign node",
		Detail:   "The node belongs to a different document.",
		DocURL:   docBase + "E022",
	},

	// ============================================
	// Source errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategorySource,
		Message:  "Unsupported source scheme",
		Detail:   "Documents can be loaded from file paths, file://, http://, https:// and s3:// URIs.",
		DocURL:   docBase + "E040",
	},
	"E041": {
		Category: CategorySource,
		Message:  "Source fetch failed",
		Detail:   "The document could not be read from its source.",
		DocURL:   docBase + "E041",
	},

	// ============================================
	// Config errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "domkit.json could not be read or parsed.",
		DocURL:   docBase + "E060",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No domkit.json was found.",
		DocURL:   docBase + "E061",
	},
	"E062": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
		DocURL:   docBase + "E062",
	},

	// ============================================
	// CLI errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryCLI,
		Message:  "Missing flag",
		Detail:   "A required flag was not provided.",
		DocURL:   docBase + "E080",
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
