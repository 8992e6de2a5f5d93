package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/ilkoid/smart-sorter/pkg/config"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// OCRExtractor распознаёт текст на изображениях через tesseract.
//
// Tesseract вызывается как внешний процесс: cgo-биндинги тянут
// системные заголовки libtesseract и ломают кросс-компиляцию,
// а бинарник и так нужен в системе. Большие сканы перед распознаванием
// даунскейлятся (utils.DownscaleImage) — многомегапиксельные фото
// замедляют OCR без выигрыша в качестве.
type OCRExtractor struct {
	cfg config.OCRConfig
}

// NewOCRExtractor создаёт OCR адаптер с настройками из конфигурации.
func NewOCRExtractor(cfg config.OCRConfig) *OCRExtractor {
	return &OCRExtractor{cfg: cfg}
}

// Extract возвращает распознанный текст изображения.
func (e *OCRExtractor) Extract(ctx context.Context, path string) (string, error) {
	input := path

	if e.cfg.MaxWidth > 0 {
		resized, err := e.prepareImage(path)
		if err != nil {
			return "", err
		}
		if resized != "" {
			defer os.Remove(resized)
			input = resized
		}
	}

	// "stdout" вместо выходного файла: tesseract печатает текст в stdout
	args := []string{input, "stdout", "-l", e.cfg.Language}
	cmd := exec.CommandContext(ctx, e.cfg.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		utils.Warn("OCR failed", "path", path, "stderr", stderr.String())
		return "", parseError(path, fmt.Errorf("tesseract: %w", err))
	}

	return stdout.String(), nil
}

// prepareImage даунскейлит изображение во временный PNG.
//
// Возвращает пустой путь если картинка не декодируется — в этом случае
// отдаём оригинал tesseract'у как есть, его декодер может справиться.
func (e *OCRExtractor) prepareImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError(path, err)
	}

	resized, err := utils.DownscaleImage(data, e.cfg.MaxWidth)
	if err != nil {
		utils.Debug("Image not decodable, passing original to tesseract",
			"path", path, "error", err)
		return "", nil
	}

	tmp, err := os.CreateTemp("", "sorter-ocr-*.png")
	if err != nil {
		return "", ioError(path, err)
	}
	if _, err := tmp.Write(resized); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", ioError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", ioError(path, err)
	}

	return tmp.Name(), nil
}
