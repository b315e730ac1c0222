// internal/domain/homework/response.go
package homework

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is a validated homework_statuses payload.
type Response struct {
	// Homeworks is the raw list as returned by the API. Elements are checked
	// only when they are formatted.
	Homeworks []any
	// CurrentDate is nil when the server omitted current_date.
	CurrentDate *int64
}

// ParseResponse checks that raw is a JSON object holding a "homeworks" list.
func ParseResponse(raw json.RawMessage) (*Response, error) {
	const op = "parse response"

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	fields, ok := body.(map[string]any)
	if !ok {
		return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("ответ API имеет тип %s, ожидается словарь", jsonKind(body))}
	}

	list, ok := fields["homeworks"].([]any)
	if !ok {
		return nil, &ValidationError{Op: op, Reason: "домашние работы не возвращаются в виде списка"}
	}

	resp := &Response{Homeworks: list}

	if v, present := fields["current_date"]; present && v != nil {
		n, ok := v.(json.Number)
		if !ok {
			return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("current_date имеет тип %s, ожидается число", jsonKind(v))}
		}
		ts, err := n.Int64()
		if err != nil {
			return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("current_date %q не является целым числом", n.String())}
		}
		resp.CurrentDate = &ts
	}

	return resp, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
