// internal/domain/homework/errors.go
package homework

import "fmt"

// ValidationError reports an API payload whose shape doesn't match what the bot expects.
type ValidationError struct {
	Op     string // "parse response", "format status", ...
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// MissingFieldError reports a homework record without a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ответ API не содержит ключа %s", e.Field)
}

// UnknownStatusError reports a status that is not in the verdict table.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("неизвестный статус домашней работы: %q", e.Status)
}
