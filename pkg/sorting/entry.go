// Package sorting реализует ядро сортировщика: построение плана
// категоризации файлов, его интерактивное редактирование и применение
// к файловой системе.
//
// Жизненный цикл: пути файлов → Builder (extract + classify на воркер-пуле)
// → Plan (редактируемый человеком) → Engine.Apply → ApplyReport.
package sorting

import (
	"path/filepath"
	"strings"
)

// ExtractionStatus — статус извлечения текста из файла.
type ExtractionStatus int

const (
	ExtractionPending ExtractionStatus = iota
	ExtractionSucceeded
	ExtractionUnsupported
	ExtractionFailed
)

// String возвращает человекочитаемый статус для отображения в превью.
func (s ExtractionStatus) String() string {
	switch s {
	case ExtractionSucceeded:
		return "extracted"
	case ExtractionUnsupported:
		return "unsupported"
	case ExtractionFailed:
		return "extract failed"
	default:
		return "pending"
	}
}

// ClassificationStatus — статус классификации извлечённого текста.
//
// Имеет смысл только после успешного извлечения.
type ClassificationStatus int

const (
	ClassificationPending ClassificationStatus = iota
	ClassificationSucceeded
	ClassificationFailed
)

func (s ClassificationStatus) String() string {
	switch s {
	case ClassificationSucceeded:
		return "classified"
	case ClassificationFailed:
		return "classify failed"
	default:
		return "pending"
	}
}

// OverrideSource — кто назначил текущую категорию записи.
type OverrideSource int

const (
	// OverrideModel — категория предложена классификатором.
	OverrideModel OverrideSource = iota
	// OverrideHuman — категория назначена человеком в превью.
	OverrideHuman
)

func (s OverrideSource) String() string {
	if s == OverrideHuman {
		return "human"
	}
	return "model"
}

// FileEntry — один файл в плане сортировки.
//
// Создаётся один раз при построении плана; дальше мутируются только
// поля (категория, исключение), но никогда — ключ SourcePath.
type FileEntry struct {
	// SourcePath — абсолютный путь, уникальный ключ внутри плана.
	SourcePath string

	// SizeBytes и Kind — описательные, неизменяемые.
	SizeBytes int64
	Kind      string // расширение без точки: "pdf", "docx"

	Extraction    ExtractionStatus
	ExtractionErr string // причина при Extraction == ExtractionFailed

	// Text — извлечённый текст; заполнен только при ExtractionSucceeded.
	Text string

	Classification    ClassificationStatus
	ClassificationErr string // причина при Classification == ClassificationFailed

	// Category — действующая категория: результат классификатора,
	// перекрываемый человеком. Пустая строка = не назначена.
	Category string

	// Source — кто назначил Category (для отображения и идемпотентности).
	Source OverrideSource

	// Excluded — запись не применяется, но остаётся в плане
	// (человек может вернуть её до apply).
	Excluded bool
}

// HasCategory сообщает, назначена ли записи категория.
func (e *FileEntry) HasCategory() bool {
	return e.Category != ""
}

// Eligible сообщает, попадёт ли запись в apply:
// не исключена и категория определена.
func (e *FileEntry) Eligible() bool {
	return !e.Excluded && e.HasCategory()
}

// Status возвращает сводный статус записи для колонки превью.
func (e *FileEntry) Status() string {
	if e.Excluded {
		return "excluded"
	}
	switch {
	case e.Extraction == ExtractionUnsupported:
		if e.Source == OverrideHuman {
			return "manual"
		}
		return "unsupported"
	case e.Extraction == ExtractionFailed:
		if e.Source == OverrideHuman {
			return "manual"
		}
		return "extract failed: " + e.ExtractionErr
	case e.Classification == ClassificationFailed && e.Source != OverrideHuman:
		return "classify failed: " + e.ClassificationErr
	case e.Source == OverrideHuman:
		return "manual"
	case e.Classification == ClassificationSucceeded:
		return "classified"
	default:
		return "pending"
	}
}

// KindOf возвращает Kind для пути: расширение в нижнем регистре без точки.
func KindOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
