package dto

import "strings"

// Locations used in FieldError.Loc.
const (
	LocBody  = "body"
	LocQuery = "query"
	LocPath  = "path"
)

// Error types used in FieldError.Type.
const (
	TypeMissing          = "missing"
	TypeJSONInvalid      = "json_invalid"
	TypeObjectExpected   = "model_attributes_type"
	TypeStringType       = "string_type"
	TypeIntType          = "int_type"
	TypeIntParsing       = "int_parsing"
	TypeGreaterThanEqual = "greater_than_equal"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError describes one rejected input. Loc is the path to the
// offending value, for example ["body", "email"] or ["query", "limit"].
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationErrorResponse is the 422 body.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

// ValidationError carries field-level failures detected before a handler runs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Type)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Response converts the error to its wire form.
func (e *ValidationError) Response() ValidationErrorResponse {
	return ValidationErrorResponse{Detail: e.Fields}
}

func newValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func loc(parts ...any) []any {
	return parts
}
