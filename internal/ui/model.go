// Package ui реализует Bubble Tea интерфейс ревью плана сортировки.
//
// Жизненный цикл: таблица плана (редактирование категорий, исключение
// файлов, пересортировка колонок) → применение с прогрессом → сводка
// отчёта. Вся бизнес-логика живёт в pkg/sorting; пакет только читает
// план через View() и дёргает SetCategory/Exclude/Include/Apply.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/smart-sorter/pkg/config"
	"github.com/ilkoid/smart-sorter/pkg/sorting"
)

// phase — текущий экран TUI.
type phase int

const (
	phaseReview phase = iota
	phaseApplying
	phaseDone
)

// applyProgressMsg — прогресс применения из воркеров Apply Engine.
type applyProgressMsg struct {
	done  int
	total int
	path  string
}

// applyDoneMsg — итог применения плана.
type applyDoneMsg struct {
	report *sorting.ApplyReport
	err    error
}

// Model — главная модель TUI ревью.
type Model struct {
	plan   *sorting.Plan
	cfg    *config.AppConfig
	target string

	table    table.Model
	rowPaths []string // пути строк таблицы, параллельно rows

	sortKey   sorting.SortKey
	ascending bool

	phase    phase
	report   *sorting.ApplyReport
	applyErr error

	progress   applyProgressMsg
	progressCh chan applyProgressMsg

	width  int
	height int
	ready  bool
}

// NewModel создаёт модель ревью для построенного плана.
func NewModel(plan *sorting.Plan, cfg *config.AppConfig, targetRoot string) Model {
	columns := []table.Column{
		{Title: "Файл", Width: 38},
		{Title: "Тип", Width: 5},
		{Title: "Размер", Width: 9},
		{Title: "Категория", Width: 22},
		{Title: "Статус", Width: 20},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	tbl.SetStyles(tableStyles())

	m := Model{
		plan:      plan,
		cfg:       cfg,
		target:    targetRoot,
		table:     tbl,
		sortKey:   sorting.SortByPath,
		ascending: true,
	}
	m.refreshRows()
	return m
}

// Init реализует tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refreshRows перечитывает план в таблицу с текущей сортировкой.
//
// Выделение остаётся на той же строке (по индексу): View() детерминирован,
// без правок между вызовами порядок не меняется.
func (m *Model) refreshRows() {
	entries := m.plan.View(m.sortKey, m.ascending)

	rows := make([]table.Row, len(entries))
	m.rowPaths = make([]string, len(entries))
	for i := range entries {
		rows[i] = entryRow(&entries[i])
		m.rowPaths[i] = entries[i].SourcePath
	}
	m.table.SetRows(rows)
}

// selectedPath возвращает путь записи под курсором.
func (m *Model) selectedPath() (string, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowPaths) {
		return "", false
	}
	return m.rowPaths[idx], true
}

// applyCmd запускает Apply Engine в фоне и шлёт прогресс в канал.
func (m *Model) applyCmd() tea.Cmd {
	ch := make(chan applyProgressMsg, 16)
	m.progressCh = ch

	plan := m.plan
	cfg := m.cfg
	target := m.target

	return func() tea.Msg {
		engine := sorting.NewEngine(sorting.ApplyConfig{
			TargetRoot:        target,
			FolderFor:         cfg.FolderFor,
			CollisionAttempts: cfg.Sorting.CollisionAttempts,
			Workers:           cfg.Sorting.Workers,
			OnProgress: func(done, total int, path string) {
				select {
				case ch <- applyProgressMsg{done: done, total: total, path: path}:
				default: // TUI не успевает — прогресс не должен блокировать воркеров
				}
			},
		})

		report, err := engine.Apply(context.Background(), plan)
		close(ch)
		return applyDoneMsg{report: report, err: err}
	}
}

// waitProgress читает очередное сообщение прогресса из канала.
func (m *Model) waitProgress() tea.Cmd {
	ch := m.progressCh
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
