package extract

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XlsxExtractor извлекает содержимое ячеек всех листов книги.
type XlsxExtractor struct{}

// Extract возвращает текст книги: лист за листом, строка ячеек —
// строка текста, ячейки разделены табом.
func (e *XlsxExtractor) Extract(ctx context.Context, path string) (string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return "", parseError(path, err)
	}
	defer book.Close()

	var sb strings.Builder
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", parseError(path, err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
