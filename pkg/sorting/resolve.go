package sorting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCollisionLimit возвращается когда лимит подбора суффикса исчерпан.
var ErrCollisionLimit = fmt.Errorf("collision attempts exhausted")

// ExistsFunc — проба существования пути. В тестах подменяется картой,
// в бою — os.Stat.
type ExistsFunc func(path string) bool

// pathExists — боевая реализация ExistsFunc.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// ResolveCollision подбирает свободное имя файла в директории назначения.
//
// Чистая функция относительно exists: перезаписи не бывает, занятое имя
// получает числовой суффикс перед расширением:
//
//	report.pdf → report (1).pdf → report (2).pdf → ...
//
// Возвращает ErrCollisionLimit после maxAttempts неудачных проб —
// патологически забитая папка не должна крутить цикл вечно.
func ResolveCollision(dir, filename string, maxAttempts int, exists ExistsFunc) (string, error) {
	candidate := filepath.Join(dir, filename)
	if !exists(candidate) {
		return candidate, nil
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for n := 1; n <= maxAttempts; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if !exists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s in %s after %d attempts",
		ErrCollisionLimit, filename, dir, maxAttempts)
}
