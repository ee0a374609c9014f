package domain

// FieldError names the offending field and a human-readable message.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field failures in the order they were found.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError is a shorthand for a single-field failure.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

// Error returns the first message, which is what a client shows.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// Map returns field -> message. The first message per field wins.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}
	return out
}

// OrNil returns nil when nothing was recorded, so callers can return it
// directly as an error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
