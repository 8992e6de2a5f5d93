package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ilkoid/smart-sorter/pkg/classify"
	"github.com/ilkoid/smart-sorter/pkg/config"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Показать модели, доступные на сервере Ollama",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		names, err := classify.ListModels(context.Background(), cfg.Model)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("На сервере %s нет моделей.\n", cfg.Model.BaseURL)
			return nil
		}

		settings := config.LoadSettings(settingsPath(cfg))
		for _, name := range names {
			mark := " "
			if name == settings.LastModel {
				mark = "*"
			}
			fmt.Printf(" %s %s\n", mark, name)
		}
		return nil
	},
}
