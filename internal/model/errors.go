package model

// ValidationError marks a user-facing input problem. Its message is written
// to be shown to the uploader as-is, unlike internal errors which are logged
// in full and rewritten at the request boundary.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
