package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilkoid/smart-sorter/pkg/classify"
	"github.com/ilkoid/smart-sorter/pkg/config"
	"github.com/ilkoid/smart-sorter/pkg/extract"
	"github.com/ilkoid/smart-sorter/pkg/sorting"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// resolveModel выбирает модель: флаг → запомненная → первая доступная.
//
// Выбор сохраняется в файл настроек рядом с конфигом, чтобы следующий
// запуск не спрашивал Ollama заново.
func resolveModel(ctx context.Context, cfg *config.AppConfig, requested string) (string, error) {
	available, err := classify.ListModels(ctx, cfg.Model)
	if err != nil {
		utils.Warn("не удалось получить список моделей", "error", err)
		// сервер недоступен для листинга — пробуем настроенную модель как есть
		if requested != "" {
			return requested, nil
		}
		return cfg.Model.Name, nil
	}

	settings := config.LoadSettings(settingsPath(cfg))
	model := settings.PickModel(requested, cfg.Model.Name, available)
	if model == "" {
		return "", fmt.Errorf("на сервере %s нет доступных моделей", cfg.Model.BaseURL)
	}

	settings.LastModel = model
	if err := settings.Save(settingsPath(cfg)); err != nil {
		utils.Warn("не удалось сохранить выбор модели", "error", err)
	}
	return model, nil
}

// buildPlan собирает план сортировки для исходной папки.
func buildPlan(ctx context.Context, cfg *config.AppConfig, src, model string, quiet bool) (*sorting.Plan, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("исходная папка: %w", err)
	}

	paths, err := sorting.CollectFiles(src)
	if err != nil {
		return nil, fmt.Errorf("обход папки %s: %w", src, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("в папке %s нет файлов", src)
	}

	modelCfg := cfg.Model
	modelCfg.Name = model
	classifier := classify.New(modelCfg)

	registry := extract.NewRegistry(cfg.OCR)

	var onProgress sorting.ProgressFunc
	if !quiet {
		onProgress = func(done, total int, path string) {
			fmt.Fprintf(os.Stderr, "\r[%d/%d] %s\033[K", done, total, filepath.Base(path))
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	builder, err := sorting.NewBuilder(registry, classifier, sorting.BuilderConfig{
		Vocabulary:  cfg.Vocabulary(),
		Supported:   cfg.Sorting.SupportedFormats,
		Workers:     cfg.Sorting.Workers,
		CallTimeout: cfg.Model.Timeout,
		OnProgress:  onProgress,
	})
	if err != nil {
		return nil, err
	}

	utils.Info("строим план", "src", src, "files", len(paths), "model", model)
	return builder.Build(ctx, paths), nil
}
