// Smart-sorter — сортировка файлов по папкам категорий через локальную LLM.
//
// Использование:
//   smart-sorter sort --src ~/Downloads --tgt ~/Sorted
//   smart-sorter tui  --src ~/Downloads --tgt ~/Sorted
//   smart-sorter models
package main

import (
	"fmt"
	"os"

	"github.com/ilkoid/smart-sorter/internal/cli"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// Version — версия утилиты (заполняется при сборке)
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "логгер: %v\n", err)
	}
	defer utils.Close()

	cli.SetVersion(Version)
	return cli.Execute()
}
