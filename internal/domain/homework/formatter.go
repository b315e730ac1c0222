// internal/domain/homework/formatter.go
package homework

import "fmt"

// Formatter turns a homework record into a chat message using a fixed verdict table.
type Formatter struct {
	verdicts VerdictTable
}

// NewFormatter copies verdicts; a nil table means DefaultVerdicts.
func NewFormatter(verdicts VerdictTable) *Formatter {
	if verdicts == nil {
		verdicts = DefaultVerdicts()
	}
	cp := make(VerdictTable, len(verdicts))
	for k, v := range verdicts {
		cp[k] = v
	}
	return &Formatter{verdicts: cp}
}

// Format builds the status-change message for one element of Response.Homeworks.
func (f *Formatter) Format(record any) (string, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return "", &ValidationError{Op: "format status", Reason: fmt.Sprintf("домашняя работа имеет тип %s, ожидается словарь", jsonKind(record))}
	}

	name, ok := fields["homework_name"].(string)
	if !ok {
		return "", &MissingFieldError{Field: "homework_name"}
	}

	status, ok := fields["status"].(string)
	if !ok {
		return "", &MissingFieldError{Field: "status"}
	}

	verdict, ok := f.verdicts[Status(status)]
	if !ok {
		return "", &UnknownStatusError{Status: status}
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
