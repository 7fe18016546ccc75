package validation

// Rule is a pure per-field predicate. Check returns true when the field
// is valid; rules never perform I/O.
type Rule struct {
	Field   string
	Message string
	Check   func() bool
}

// FieldError is one reported violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Run evaluates every rule and collects all violations, not just the
// first, so a response can itemize everything wrong with a payload.
func Run(rules []Rule) []FieldError {
	var errs []FieldError
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}
	return errs
}
