// Ошибки классификации.
//
// Все сбои адаптера типизированы: Plan Builder записывает причину на
// FileEntry, фронтенды показывают её человеку. Поддерживают errors.Is().
package classify

import "fmt"

// ErrTimeout — inference-сервер не ответил за отведённое время.
var ErrTimeout = fmt.Errorf("classification timeout")

// ErrInvalidResponse — ответ модели не удалось свести к метке словаря.
var ErrInvalidResponse = fmt.Errorf("invalid classifier response")

// ErrUnavailable — inference-сервер недоступен (сеть, 5xx).
var ErrUnavailable = fmt.Errorf("classifier unavailable")

// FailureKind — класс сбоя классификации.
type FailureKind int

const (
	FailureTimeout FailureKind = iota
	FailureInvalidResponse
	FailureUnavailable
)

func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureInvalidResponse:
		return "invalid response"
	default:
		return "unavailable"
	}
}

// Error — типизированный сбой классификации.
//
// Answer заполняется для InvalidResponse: сырой ответ модели нужен
// в логе чтобы подбирать промпт под конкретную модель.
type Error struct {
	Kind   FailureKind
	Answer string
	Err    error
}

func (e *Error) Error() string {
	if e.Answer != "" {
		return fmt.Sprintf("classify (%s): %q", e.Kind, e.Answer)
	}
	return fmt.Sprintf("classify (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сопоставляет типизированную ошибку с сентинелами пакета.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == FailureTimeout
	case ErrInvalidResponse:
		return e.Kind == FailureInvalidResponse
	case ErrUnavailable:
		return e.Kind == FailureUnavailable
	}
	return false
}
