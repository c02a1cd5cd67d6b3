package errors

// FieldErrors is a request-scoped accumulator of validation failures, keyed by
// the JSON field name with the list of messages reported for it. It replaces
// any framework-global validation state: callers build one per request, thread
// it through validation and contact resolution, and convert it to a domain
// error at the end.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Err converts the accumulated errors into a validation error, or nil when
// no error was recorded.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return ValidationWithDetails("validation failed", f)
}
