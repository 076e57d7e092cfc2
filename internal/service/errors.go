package service

// ValidationError marks input the caller can correct. Handlers answer
// these with 400; anything else from a service is an internal failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErr(msg string) error {
	return &ValidationError{msg: msg}
}
