// Package utils предоставляет утилиты для обработки изображений.
package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg" // Регистрируем JPEG декодер

	"github.com/nfnt/resize"
)

// DownscaleImage уменьшает изображение до указанной ширины, сохраняя пропорции.
//
// Используется перед OCR: tesseract на многомегапиксельных сканах работает
// в разы медленнее без выигрыша в качестве распознавания.
//
// Параметры:
//   - data: байты исходного изображения (JPEG, PNG)
//   - maxWidth: целевая ширина в пикселях. Если 0 или больше исходной — ресайз не применяется.
//
// Возвращает байты PNG (lossless, чтобы не добавлять JPEG-артефакты перед OCR).
func DownscaleImage(data []byte, maxWidth int) ([]byte, error) {
	// 1. Декодируем изображение
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()

	// 2. Ресайзим только если изображение шире лимита
	if maxWidth > 0 && width > maxWidth {
		ratio := float64(bounds.Dy()) / float64(width)
		newHeight := uint(float64(maxWidth) * ratio)
		img = resize.Resize(uint(maxWidth), newHeight, img, resize.Lanczos3)
	}

	// 3. Кодируем в PNG
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode to png: %w", err)
	}

	return buf.Bytes(), nil
}
