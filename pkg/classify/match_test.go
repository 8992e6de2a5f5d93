package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var vocab = []string{
	"Книги",
	"Проездные документы",
	"Финансовые документы",
	"Прочее",
}

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		expected string
	}{
		{
			name:     "exact match",
			answer:   "Книги",
			expected: "Книги",
		},
		{
			name:     "exact match different case",
			answer:   "книги",
			expected: "Книги",
		},
		{
			name:     "category inside verbose answer",
			answer:   "Это определённо Книги",
			expected: "Книги",
		},
		{
			name:     "multiple matches - longest wins",
			answer:   "Проездные документы или финансовые документы",
			expected: "Финансовые документы", // 20 рун против 19 у "Проездные документы"
		},
		{
			name:     "no match",
			answer:   "Налоговая декларация",
			expected: "",
		},
		{
			name:     "empty answer",
			answer:   "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchCategory(tt.answer, vocab))
		})
	}
}

func TestBuildPromptContainsVocabularyAndText(t *testing.T) {
	prompt := BuildPrompt("текст посадочного талона", vocab, 4000)

	assert.Contains(t, prompt, "'Книги'")
	assert.Contains(t, prompt, "'Проездные документы'")
	assert.Contains(t, prompt, "текст посадочного талона")
	assert.Contains(t, prompt, "Категория:")
}

func TestBuildPromptTruncatesLongText(t *testing.T) {
	long := ""
	for i := 0; i < 5000; i++ {
		long += "ы" // двухбайтовая руна: проверяем что режем по рунам
	}

	prompt := BuildPrompt(long, vocab, 100)
	assert.Less(t, len(prompt), 1500)
	assert.NotContains(t, prompt, "�", "no broken UTF-8 sequences")
}
