package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BuildPrompt собирает промпт классификации документа.
//
// Текст обрезается до maxChars символов (рун, не байт — кириллица
// в UTF-8 двухбайтовая): локальным моделям хватает начала документа,
// а короткий промпт на порядок быстрее.
func BuildPrompt(text string, vocabulary []string, maxChars int) string {
	quoted := make([]string, len(vocabulary))
	for i, v := range vocabulary {
		quoted[i] = "'" + v + "'"
	}

	return fmt.Sprintf(
		"Твоя задача - классифицировать документ на основе его содержания. "+
			"Проанализируй следующий текст и определи, к какой из этих категорий он относится: %s. "+
			"В качестве ответа верни ТОЛЬКО ОДНО название категории из предоставленного списка. "+
			"Например, если документ - это посадочный талон, верни 'Проездные документы'.\n\n"+
			"--- Текст документа для анализа ---\n%s\n--- Конец текста ---\n\n"+
			"Категория:",
		strings.Join(quoted, ", "),
		truncateRunes(text, maxChars),
	)
}

// truncateRunes обрезает строку до n рун, не разрывая UTF-8 последовательность.
func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
