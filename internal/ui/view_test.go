// Package ui тесты рендеринга таблицы плана
package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/smart-sorter/pkg/config"
	"github.com/ilkoid/smart-sorter/pkg/sorting"
)

func testModel(t *testing.T) Model {
	t.Helper()

	cfg := config.Default()
	plan := sorting.NewPlan(cfg.Vocabulary())

	entries := []sorting.FileEntry{
		{
			SourcePath:     "/in/report.pdf",
			SizeBytes:      2048,
			Kind:           "pdf",
			Extraction:     sorting.ExtractionSucceeded,
			Classification: sorting.ClassificationSucceeded,
			Category:       "Финансовые документы",
			Source:         sorting.OverrideModel,
		},
		{
			SourcePath: "/in/archive.bin",
			SizeBytes:  10,
			Kind:       "bin",
			Extraction: sorting.ExtractionUnsupported,
		},
	}
	for i := range entries {
		plan.Upsert(entries[i])
	}

	m := NewModel(plan, cfg, "/out")
	m.width = 100
	m.height = 30
	m.ready = true
	return m
}

func TestEntryRow(t *testing.T) {
	tests := []struct {
		name     string
		entry    sorting.FileEntry
		expected string
		column   int
	}{
		{
			name: "category from model",
			entry: sorting.FileEntry{
				SourcePath: "/in/a.pdf",
				Category:   "Книги",
				Source:     sorting.OverrideModel,
			},
			expected: "Книги",
			column:   3,
		},
		{
			name: "human override marked",
			entry: sorting.FileEntry{
				SourcePath: "/in/a.pdf",
				Category:   "Книги",
				Source:     sorting.OverrideHuman,
			},
			expected: "Книги *",
			column:   3,
		},
		{
			name: "excluded entry marked",
			entry: sorting.FileEntry{
				SourcePath: "/in/a.pdf",
				Category:   "Книги",
				Excluded:   true,
			},
			expected: "[искл] Книги",
			column:   3,
		},
		{
			name: "no category placeholder",
			entry: sorting.FileEntry{
				SourcePath: "/in/a.pdf",
			},
			expected: "—",
			column:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := entryRow(&tt.entry)
			assert.Equal(t, tt.expected, row[tt.column])
		})
	}
}

func TestViewReviewContainsEntries(t *testing.T) {
	m := testModel(t)

	out := m.View()
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "archive.bin")
	assert.Contains(t, out, "применить")
}

func TestToggleExcludedUpdatesPlan(t *testing.T) {
	m := testModel(t)

	// курсор на первой строке: сортировка по пути, это /in/archive.bin
	m.toggleExcluded()
	entry, ok := m.plan.Get("/in/archive.bin")
	require.True(t, ok)
	assert.True(t, entry.Excluded)

	m.toggleExcluded()
	entry, _ = m.plan.Get("/in/archive.bin")
	assert.False(t, entry.Excluded)
}

func TestCycleCategorySetsHumanSource(t *testing.T) {
	m := testModel(t)

	before, _ := m.plan.Get("/in/archive.bin")
	m.cycleCategory()
	after, ok := m.plan.Get("/in/archive.bin")
	require.True(t, ok)

	assert.NotEqual(t, before.Category, after.Category)
	assert.Equal(t, sorting.OverrideHuman, after.Source)
}

func TestSortKeyCycle(t *testing.T) {
	key := sorting.SortByPath
	seen := map[sorting.SortKey]bool{}
	for i := 0; i < 4; i++ {
		seen[key] = true
		key = nextSortKey(key)
	}
	assert.Equal(t, sorting.SortByPath, key)
	assert.Len(t, seen, 4)
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
