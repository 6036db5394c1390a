package schedule

// ValidationResult accumulates every violation found in one pass rather
// than failing fast, so a caller sees all problems at once.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// validResult returns a passing result with a non-nil empty error list
func validResult() ValidationResult {
	return ValidationResult{Valid: true, Errors: []string{}}
}

// resultFromErrors builds a ValidationResult from collected error messages
func resultFromErrors(errors []string) ValidationResult {
	if len(errors) == 0 {
		return validResult()
	}
	return ValidationResult{Valid: false, Errors: errors}
}
