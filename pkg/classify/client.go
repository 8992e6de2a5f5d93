// Package classify реализует адаптер классификации текста через
// локальный inference-сервер (Ollama) по OpenAI-совместимому API.
//
// Контракт адаптера: вернуть ровно одну метку из переданного словаря
// или типизированную ошибку. Никаких других гарантий о модели нет.
package classify

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ilkoid/smart-sorter/pkg/config"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// Client — классификатор поверх OpenAI-совместимого chat API.
//
// Ollama отдаёт такой API на /v1; через BaseURL клиент работает и с
// любым другим совместимым сервером.
type Client struct {
	api      *openai.Client
	model    string
	maxChars int
	limiter  *rate.Limiter
}

// New создаёт классификатор из конфигурации модели.
func New(cfg config.ModelConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	return &Client{
		api:      openai.NewClientWithConfig(apiCfg),
		model:    cfg.Name,
		maxChars: cfg.MaxChars,
		limiter:  limiter,
	}
}

// Model возвращает имя модели, с которой работает клиент.
func (c *Client) Model() string {
	return c.model
}

// Classify отправляет текст модели и возвращает метку из словаря.
//
// Алгоритм:
//  1. Rate limiter (локальный сервер легко захлебнуться параллельными
//     запросами воркер-пула).
//  2. Chat completion с temperature 0 — классификация должна быть
//     детерминированной.
//  3. Очистка ответа (reasoning-теги, markdown, кавычки).
//  4. Сведение к словарю; несводимый ответ = ErrInvalidResponse.
//
// Таймаут обеспечивает вызывающий через ctx (Plan Builder ставит
// CallTimeout на каждую пару extract+classify).
func (c *Client) Classify(ctx context.Context, text string, vocabulary []string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", wrapTransport(err)
		}
	}

	startTime := time.Now()
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(text, vocabulary, c.maxChars),
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		utils.Error("Classification request failed",
			"model", c.model,
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", wrapTransport(err)
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Kind: FailureInvalidResponse, Err: errors.New("no choices in response")}
	}

	answer := utils.CleanAnswer(resp.Choices[0].Message.Content)
	label := MatchCategory(answer, vocabulary)
	if label == "" {
		utils.Warn("Model returned unexpected answer", "model", c.model, "answer", answer)
		return "", &Error{Kind: FailureInvalidResponse, Answer: answer}
	}

	utils.Debug("Text classified",
		"model", c.model,
		"category", label,
		"duration_ms", time.Since(startTime).Milliseconds())
	return label, nil
}

// wrapTransport сводит транспортную ошибку к Timeout или Unavailable.
func wrapTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: FailureTimeout, Err: err}
	}
	return &Error{Kind: FailureUnavailable, Err: err}
}
