package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DocxExtractor извлекает текст абзацев из DOCX.
//
// DOCX — это zip с word/document.xml внутри; текст лежит в элементах
// <w:t>, абзацы — <w:p>. Этого достаточно для классификации, таблицы
// и колонтитулы не нужны.
type DocxExtractor struct{}

// Extract возвращает текст документа, по абзацу на строку.
func (e *DocxExtractor) Extract(ctx context.Context, path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return "", parseError(path, err)
		}
		return "", ioError(path, err)
	}
	defer archive.Close()

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", parseError(path, fmt.Errorf("word/document.xml not found"))
	}

	rc, err := doc.Open()
	if err != nil {
		return "", parseError(path, err)
	}
	defer rc.Close()

	text, err := parseDocumentXML(rc)
	if err != nil {
		return "", parseError(path, err)
	}
	return text, nil
}

// parseDocumentXML стримит document.xml и собирает текст:
// содержимое <w:t> конкатенируется, конец <w:p> даёт перенос строки.
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
