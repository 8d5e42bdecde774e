package domain

// Result is the uniform outcome of a user-facing mutation. Validation
// failures are reported here, never as errors, so callers can render inline
// feedback without exception handling.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Ok builds a successful result.
func Ok(message string) Result {
	return Result{OK: true, Message: message}
}

// Fail builds a failed result.
func Fail(message string) Result {
	return Result{OK: false, Message: message}
}
