package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripThinkBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no think block",
			input:    "Книги",
			expected: "Книги",
		},
		{
			name:     "think block before answer",
			input:    "<think>Это похоже на книгу...</think>\nКниги",
			expected: "Книги",
		},
		{
			name:     "multiple think blocks - keeps text after last",
			input:    "<think>a</think>x<think>b</think>Финансовые документы",
			expected: "Финансовые документы",
		},
		{
			name:     "unclosed think tag left as is",
			input:    "<think>рассуждения без конца",
			expected: "<think>рассуждения без конца",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripThinkBlock(tt.input))
		})
	}
}

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain answer",
			input:    "Книги",
			expected: "Книги",
		},
		{
			name:     "quoted answer",
			input:    "'Проездные документы'",
			expected: "Проездные документы",
		},
		{
			name:     "markdown wrapped",
			input:    "```\nМедицинские документы\n```",
			expected: "Медицинские документы",
		},
		{
			name:     "category prefix",
			input:    "Категория: Книги",
			expected: "Книги",
		},
		{
			name:     "think block plus prefix on separate line",
			input:    "<think>хм</think>\nКатегория:\nНаучные статьи",
			expected: "Научные статьи",
		},
		{
			name:     "guillemets and trailing period",
			input:    "«Бронирования».",
			expected: "Бронирования",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanAnswer(tt.input))
		})
	}
}
