package classify

import (
	"strings"

	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// MatchCategory сопоставляет очищенный ответ модели со словарём.
//
// Алгоритм:
//  1. Точное совпадение (без учёта регистра).
//  2. Поиск категорий, содержащихся в ответе: спасает ответы вида
//     "Категория: Книги" или "Это определённо Книги".
//  3. Если вхождений несколько — берётся самое длинное название
//     (наиболее конкретное: "Проездные документы" бьёт "Документы").
//
// Пустая строка = ответ ни к чему не сводится; вызывающий трактует
// это как нарушение контракта адаптера.
func MatchCategory(answer string, vocabulary []string) string {
	cleaned := strings.ToLower(strings.TrimSpace(answer))
	if cleaned == "" {
		return ""
	}

	for _, v := range vocabulary {
		if strings.ToLower(v) == cleaned {
			return v
		}
	}

	var found []string
	for _, v := range vocabulary {
		if strings.Contains(cleaned, strings.ToLower(v)) {
			found = append(found, v)
		}
	}

	switch len(found) {
	case 0:
		return ""
	case 1:
		utils.Info("Inexact category match", "answer", answer, "category", found[0])
		return found[0]
	default:
		best := found[0]
		for _, v := range found[1:] {
			if len(v) > len(best) {
				best = v
			}
		}
		utils.Info("Multiple categories in answer, longest wins",
			"answer", answer, "candidates", strings.Join(found, "|"), "category", best)
		return best
	}
}
