package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/charmbracelet/bubbles/table"

	"github.com/ilkoid/smart-sorter/pkg/sorting"
)

// View реализует tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "загрузка..."
	}

	switch m.phase {
	case phaseApplying:
		return m.viewApplying()
	case phaseDone:
		return m.viewDone()
	}
	return m.viewReview()
}

func (m Model) viewReview() string {
	var b strings.Builder

	eligible := len(m.plan.EligibleForApply())
	header := fmt.Sprintf("План сортировки: %d файлов, %d готово к переносу → %s",
		m.plan.Len(), eligible, m.target)
	b.WriteString(headerStyle.Render(truncate.StringWithTail(header, uint(max(m.width-2, 20)), "…")))
	b.WriteString("\n")
	b.WriteString(sortLineStyle.Render(fmt.Sprintf("сортировка: %s %s", sortKeyLabel(m.sortKey), directionLabel(m.ascending))))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("↑/↓ выбор · c категория · x исключить · s колонка · r направление · a применить · q выход"))
	return b.String()
}

func (m Model) viewApplying() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Применение плана"))
	b.WriteString("\n\n")

	p := m.progress
	if p.total > 0 {
		b.WriteString(fmt.Sprintf("  %d / %d\n", p.done, p.total))
		if p.path != "" {
			line := "  " + filepath.Base(p.path)
			b.WriteString(dimStyle.Render(truncate.StringWithTail(line, uint(max(m.width-2, 20)), "…")))
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  подготовка...\n")
	}
	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder

	if m.applyErr != nil {
		b.WriteString(errorStyle.Render("Применение прервано: " + m.applyErr.Error()))
		b.WriteString("\n")
	}
	if m.report != nil {
		b.WriteString(headerStyle.Render("Отчёт"))
		b.WriteString("\n\n")
		b.WriteString(m.report.Summary())
		b.WriteString("\n")

		if failures := m.report.Failures(); len(failures) > 0 {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("Ошибки:"))
			b.WriteString("\n")
			for _, r := range failures {
				line := fmt.Sprintf("  %s: %s", filepath.Base(r.SourcePath), r.Reason)
				b.WriteString(truncate.StringWithTail(line, uint(max(m.width-2, 20)), "…"))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q выход"))
	return b.String()
}

// entryRow превращает запись плана в строку таблицы.
func entryRow(e *sorting.FileEntry) table.Row {
	name := truncate.StringWithTail(filepath.Base(e.SourcePath), 38, "…")

	category := e.Category
	if category == "" {
		category = "—"
	} else if e.Source == sorting.OverrideHuman {
		category += " *"
	}
	if e.Excluded {
		category = "[искл] " + category
	}

	return table.Row{
		name,
		strings.TrimPrefix(e.Kind, "."),
		humanize.Bytes(uint64(e.SizeBytes)),
		truncate.StringWithTail(category, 22, "…"),
		e.Status(),
	}
}

func sortKeyLabel(key sorting.SortKey) string {
	switch key {
	case sorting.SortByKind:
		return "тип"
	case sorting.SortBySize:
		return "размер"
	case sorting.SortByCategory:
		return "категория"
	default:
		return "путь"
	}
}

func directionLabel(ascending bool) string {
	if ascending {
		return "↑"
	}
	return "↓"
}
