package practicum

import "fmt"

// ConnectivityError is a transport-level failure reaching the API.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("нет связи с API %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ResponseError is a non-200 answer or an undecodable body.
type ResponseError struct {
	StatusCode int
	Reason     string
	Body       string
	Err        error // Decode failure, nil for bad status codes
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("некорректный ответ API (код %d): %v. Содержание ответа - %s", e.StatusCode, e.Err, e.Body)
	}
	return fmt.Sprintf("ожидался код 200, но получен код %d. Ответ от API - %s. Содержание ответа - %s", e.StatusCode, e.Reason, e.Body)
}

func (e *ResponseError) Unwrap() error { return e.Err }
