package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ilkoid/smart-sorter/internal/ui"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

var (
	tuiSrc     string
	tuiTgt     string
	tuiModel   string
	tuiWorkers int
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Построить план и отредактировать его в терминале",
	Long: `Строит план сортировки для --src и открывает интерактивную таблицу:
категории можно менять, файлы исключать, затем применить план в --tgt
прямо из интерфейса.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if tuiWorkers > 0 {
			cfg.Sorting.Workers = tuiWorkers
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stop := utils.SetupGracefulShutdown(cancel)
		defer stop()

		model, err := resolveModel(ctx, cfg, tuiModel)
		if err != nil {
			return err
		}

		plan, err := buildPlan(ctx, cfg, tuiSrc, model, false)
		if err != nil {
			return err
		}

		program := tea.NewProgram(ui.NewModel(plan, cfg, tuiTgt), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiSrc, "src", "", "папка с исходными файлами")
	tuiCmd.Flags().StringVar(&tuiTgt, "tgt", "", "корневая папка назначения")
	tuiCmd.Flags().StringVar(&tuiModel, "model", "", "имя модели Ollama (по умолчанию из конфига)")
	tuiCmd.Flags().IntVar(&tuiWorkers, "workers", 0, "число воркеров (по умолчанию из конфига)")
	_ = tuiCmd.MarkFlagRequired("src")
	_ = tuiCmd.MarkFlagRequired("tgt")
}
