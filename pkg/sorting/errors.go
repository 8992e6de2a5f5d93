// Ошибки редактирования плана.
//
// Все ошибки возвращаются синхронно вызывающему и не мутируют план.
// Поддерживают errors.Is() для проверки на верхних уровнях (CLI/TUI).
package sorting

import "fmt"

// ErrUnknownCategory возвращается когда категория отсутствует в словаре.
//
// Пример использования:
//
//	if errors.Is(err, sorting.ErrUnknownCategory) {
//	    // показать пользователю список допустимых категорий
//	}
var ErrUnknownCategory = fmt.Errorf("unknown category")

// ErrUnknownPath возвращается когда путь отсутствует в плане.
var ErrUnknownPath = fmt.Errorf("unknown path")

// UnknownCategoryError — ошибка с контекстом категории.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %q", e.Category)
}

// Is проверяет что ошибка является ErrUnknownCategory.
func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// UnknownPathError — ошибка с контекстом пути.
type UnknownPathError struct {
	Path string
}

func (e *UnknownPathError) Error() string {
	return fmt.Sprintf("unknown path: %q", e.Path)
}

// Is проверяет что ошибка является ErrUnknownPath.
func (e *UnknownPathError) Is(target error) bool {
	return target == ErrUnknownPath
}
