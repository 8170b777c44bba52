package models

// ValidationError is input rejected before it reaches the server.
type ValidationError struct {
	Field   string // пустое, если ошибка не относится к конкретному полю
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
