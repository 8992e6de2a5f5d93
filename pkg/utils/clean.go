// Package utils предоставляет вспомогательные функции для обработки данных.
//
// Включает утилиты для очистки ответов LLM: reasoning-теги, markdown-обёртка,
// кавычки и служебные префиксы, которые модель добавляет к названию категории.
package utils

import (
	"strings"
)

// StripThinkBlock удаляет reasoning-блок из ответа модели.
//
// Некоторые модели (qwen3, deepseek-r1) возвращают свои "мысли" в теге
// <think>...</think> перед итоговым ответом. Нам нужен только текст
// после закрывающего тега.
//
// Примеры:
//   "<think>хм...</think>Книги" → "Книги"
//   "Книги" → "Книги" (без изменений)
func StripThinkBlock(s string) string {
	const endTag = "</think>"
	if idx := strings.LastIndex(s, endTag); idx != -1 {
		s = s[idx+len(endTag):]
	}
	return strings.TrimSpace(s)
}

// CleanMarkdown удаляет markdown-обёртку вокруг короткого ответа.
//
// LLM часто оборачивает ответ в кодовые блоки или inline-код:
//   ```
//   Книги
//   ```
// или `Книги`.
func CleanMarkdown(s string) string {
	s = strings.TrimSpace(s)

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.Trim(s, "`")

	return strings.TrimSpace(s)
}

// CleanAnswer выполняет полную очистку ответа классификатора.
//
// Шаги:
//  1. Удаляет reasoning-блок (<think>...</think>)
//  2. Удаляет markdown-обёртку
//  3. Удаляет кавычки (одинарные, двойные, «ёлочки»)
//  4. Берёт последнюю непустую строку (модель может отвечать
//     "Категория:\nКниги")
//  5. Удаляет префикс "Категория:" если модель его добавила
func CleanAnswer(s string) string {
	s = StripThinkBlock(s)
	s = CleanMarkdown(s)
	s = strings.Trim(s, "'\"«»")

	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		s = line
		break
	}

	for _, prefix := range []string{"Категория:", "Category:", "категория:"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}

	return strings.Trim(strings.TrimSpace(s), "'\"«».")
}
