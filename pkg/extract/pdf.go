package extract

import (
	"bytes"
	"context"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor извлекает текстовый слой PDF.
//
// Сканы без текстового слоя дают пустую строку — билдер пометит такую
// запись как "no text extracted", и человек назначит категорию вручную.
type PDFExtractor struct{}

// Extract возвращает plain text всех страниц документа.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", ioError(path, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", parseError(path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", parseError(path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", parseError(path, err)
	}
	return buf.String(), nil
}
