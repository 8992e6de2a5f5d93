package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ilkoid/smart-sorter/pkg/sorting"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

var (
	sortSrc     string
	sortTgt     string
	sortModel   string
	sortWorkers int
	sortYes     bool
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Построить план и разложить файлы без интерактива",
	Long: `Строит план сортировки для --src, печатает его и после подтверждения
переносит файлы в папки категорий под --tgt. С флагом --yes подтверждение
не запрашивается.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if sortWorkers > 0 {
			cfg.Sorting.Workers = sortWorkers
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stop := utils.SetupGracefulShutdown(cancel)
		defer stop()

		model, err := resolveModel(ctx, cfg, sortModel)
		if err != nil {
			return err
		}

		plan, err := buildPlan(ctx, cfg, sortSrc, model, false)
		if err != nil {
			return err
		}

		printPlan(plan)

		eligible := len(plan.EligibleForApply())
		if eligible == 0 {
			fmt.Println("Нет файлов, готовых к переносу.")
			return nil
		}

		if !sortYes && !confirm(fmt.Sprintf("Перенести %d файлов в %s?", eligible, sortTgt)) {
			fmt.Println("Отменено.")
			return nil
		}

		engine := sorting.NewEngine(sorting.ApplyConfig{
			TargetRoot:        sortTgt,
			FolderFor:         cfg.FolderFor,
			CollisionAttempts: cfg.Sorting.CollisionAttempts,
			Workers:           cfg.Sorting.Workers,
		})

		report, err := engine.Apply(ctx, plan)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(report.Summary())
		for _, r := range report.Failures() {
			fmt.Printf("  ошибка: %s: %s\n", filepath.Base(r.SourcePath), r.Reason)
		}
		return nil
	},
}

// printPlan печатает план в виде простой таблицы.
func printPlan(plan *sorting.Plan) {
	fmt.Printf("\nПлан сортировки (%d файлов):\n\n", plan.Len())
	for _, e := range plan.Entries() {
		mark := " "
		if e.Excluded {
			mark = "x"
		}
		category := e.Category
		if category == "" {
			category = "—"
		}
		fmt.Printf(" [%s] %-40s %-8s %-22s %s\n",
			mark,
			truncateName(filepath.Base(e.SourcePath), 40),
			humanize.Bytes(uint64(e.SizeBytes)),
			category,
			e.Status())
	}
	fmt.Println()
}

func truncateName(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// confirm запрашивает y/n в stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

func init() {
	sortCmd.Flags().StringVar(&sortSrc, "src", "", "папка с исходными файлами")
	sortCmd.Flags().StringVar(&sortTgt, "tgt", "", "корневая папка назначения")
	sortCmd.Flags().StringVar(&sortModel, "model", "", "имя модели Ollama (по умолчанию из конфига)")
	sortCmd.Flags().IntVar(&sortWorkers, "workers", 0, "число воркеров (по умолчанию из конфига)")
	sortCmd.Flags().BoolVar(&sortYes, "yes", false, "не запрашивать подтверждение")
	_ = sortCmd.MarkFlagRequired("src")
	_ = sortCmd.MarkFlagRequired("tgt")
}
