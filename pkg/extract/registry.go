// Package extract реализует адаптеры извлечения текста из файлов.
//
// Каждый формат — отдельный экстрактор; Registry диспетчеризует по
// расширению. Ядро сортировщика (pkg/sorting) видит только интерфейс
// Extractor и ничего не знает про форматы.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ilkoid/smart-sorter/pkg/config"
)

// Extractor — извлечение текста из одного файла.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry диспетчеризует извлечение по расширению файла.
//
// Расширения сравниваются в нижнем регистре; незарегистрированное
// расширение даёт ErrUnsupported.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry создаёт реестр со стандартным набором форматов:
// PDF, DOCX, XLSX и изображения через OCR.
func NewRegistry(ocrCfg config.OCRConfig) *Registry {
	ocr := NewOCRExtractor(ocrCfg)
	return &Registry{
		byExt: map[string]Extractor{
			".pdf":  &PDFExtractor{},
			".docx": &DocxExtractor{},
			".xlsx": &XlsxExtractor{},
			".png":  ocr,
			".jpg":  ocr,
			".jpeg": ocr,
		},
	}
}

// Register добавляет или заменяет экстрактор для расширения.
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Supports сообщает, есть ли экстрактор для расширения (с точкой).
func (r *Registry) Supports(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Extensions возвращает список зарегистрированных расширений.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	return out
}

// Extract выбирает экстрактор по расширению пути и делегирует ему.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return "", ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return "", ioError(path, err)
	}
	return e.Extract(ctx, path)
}
