// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// ImportError carries the header-validation report back to the uploader so
// the UI can say exactly which columns were missing and what was found.
type ImportError struct {
	Detail         string   `json:"detail"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	FoundColumns   []string `json:"found_columns,omitempty"`
}

func NewImport(msg string, missing, found []string) *ImportError {
	return &ImportError{Detail: msg, MissingColumns: missing, FoundColumns: found}
}
