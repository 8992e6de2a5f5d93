// Package cli собирает команды smart-sorter на cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ilkoid/smart-sorter/pkg/config"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "smart-sorter",
	Version: "dev",
	Short:   "Сортировка файлов по категориям через локальную LLM",
	Long: `smart-sorter строит план сортировки папки: извлекает текст из
документов, классифицирует его локальной моделью (Ollama) и раскладывает
файлы по папкам категорий. Перед переносом план можно отредактировать.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion подставляет версию сборки из main.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute запускает разбор аргументов.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig читает конфиг по флагу --config либо берёт значения по умолчанию.
func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.App.LogFile != "" {
		if err := utils.InitLoggerAt(cfg.App.LogFile); err != nil {
			utils.Warn("не удалось переключить лог-файл", "path", cfg.App.LogFile, "error", err)
		}
	}
	return cfg, nil
}

// settingsPath возвращает путь к файлу запомненных настроек.
func settingsPath(cfg *config.AppConfig) string {
	if cfg.App.SettingsFile != "" {
		return cfg.App.SettingsFile
	}
	return config.DefaultSettingsFile
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "путь к YAML конфигу (по умолчанию встроенные значения)")
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(modelsCmd)
}
