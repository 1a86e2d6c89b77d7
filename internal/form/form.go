// Package form holds the structured validation result shared by all
// per-action input structs. A submission either validates cleanly or
// produces a list of field-level errors to re-render with; validation is
// never a transport-level fault.
package form

// FieldError is a single validation message attached to a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects field errors from validating one form submission.
// The zero value is a passing result.
type Result struct {
	Errors []FieldError `json:"errors,omitempty"`
}

// AddError records a validation message for a field.
func (r *Result) AddError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// Valid reports whether the submission passed validation.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// ErrorFor returns the first message recorded for a field, or "".
func (r *Result) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}
