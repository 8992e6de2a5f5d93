// Ошибки извлечения текста.
//
// Неподдерживаемый формат — не сбой, а отдельный сентинел: Plan Builder
// превращает его в статус Unsupported, а не Failed.
package extract

import "fmt"

// ErrUnsupported возвращается для расширения без зарегистрированного экстрактора.
var ErrUnsupported = fmt.Errorf("unsupported format")

// FailureKind — класс сбоя извлечения.
type FailureKind int

const (
	// FailureIO — файл не читается (права, диск, исчез).
	FailureIO FailureKind = iota
	// FailureParse — файл читается, но формат битый или нераспознаваемый.
	FailureParse
)

func (k FailureKind) String() string {
	if k == FailureParse {
		return "parse"
	}
	return "io"
}

// Error — типизированный сбой извлечения с контекстом файла.
type Error struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ioError оборачивает ошибку чтения файла.
func ioError(path string, err error) *Error {
	return &Error{Kind: FailureIO, Path: path, Err: err}
}

// parseError оборачивает ошибку разбора формата.
func parseError(path string, err error) *Error {
	return &Error{Kind: FailureParse, Path: path, Err: err}
}
