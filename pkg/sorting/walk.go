package sorting

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// CollectFiles рекурсивно обходит исходную папку и возвращает абсолютные
// пути всех обычных файлов в лексикографическом порядке обхода.
//
// Фильтрации по расширению здесь нет: неподдерживаемые файлы тоже
// попадают в план (как Unsupported), чтобы человек видел их в превью
// и мог назначить категорию вручную.
//
// Скрытые файлы (".DS_Store" и прочие dotfiles) пропускаются.
func CollectFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve source dir: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Ошибка на самом корне (не существует, нет прав) фатальна
			if path == absRoot {
				return err
			}
			// Недоступная поддиректория не должна ронять весь обход
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if len(name) > 0 && name[0] == '.' {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source dir: %w", err)
	}

	return paths, nil
}
