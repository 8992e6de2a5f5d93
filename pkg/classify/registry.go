package classify

import (
	"context"
	"fmt"
	"sort"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ilkoid/smart-sorter/pkg/config"
)

// ListModels возвращает имена моделей, доступных на inference-сервере.
//
// Используется фронтендами для выбора модели (и проверки что сервер
// вообще жив) до построения плана. Ollama отдаёт список на
// GET /v1/models.
func ListModels(ctx context.Context, cfg config.ModelConfig) ([]string, error) {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	api := openai.NewClientWithConfig(apiCfg)

	list, err := api.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models from %s: %w", cfg.BaseURL, err)
	}

	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	sort.Strings(names)
	return names, nil
}
