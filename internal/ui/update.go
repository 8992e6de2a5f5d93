package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/smart-sorter/pkg/sorting"
	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// Update реализует tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.table.SetWidth(msg.Width - 2)
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case applyProgressMsg:
		m.progress = msg
		return m, m.waitProgress()

	case applyDoneMsg:
		m.phase = phaseDone
		m.report = msg.report
		m.applyErr = msg.err
		if msg.err != nil {
			utils.Error("применение завершилось с ошибкой", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey — обработка клавиш по фазам.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseApplying:
		// во время применения ввод игнорируется, план заморожен
		return m, nil

	case phaseDone:
		switch msg.String() {
		case "q", "esc", "enter", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "c":
		m.cycleCategory()
		return m, nil

	case "x":
		m.toggleExcluded()
		return m, nil

	case "s":
		m.sortKey = nextSortKey(m.sortKey)
		m.refreshRows()
		return m, nil

	case "r":
		m.ascending = !m.ascending
		m.refreshRows()
		return m, nil

	case "a":
		if len(m.plan.EligibleForApply()) == 0 {
			return m, nil
		}
		m.phase = phaseApplying
		m.progress = applyProgressMsg{}
		cmd := m.applyCmd()
		return m, tea.Batch(cmd, m.waitProgress())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycleCategory переключает категорию выбранного файла на следующую
// по словарю плана. Правка руками: источник становится human.
func (m *Model) cycleCategory() {
	path, ok := m.selectedPath()
	if !ok {
		return
	}
	entry, ok := m.plan.Get(path)
	if !ok {
		return
	}

	vocab := m.plan.Vocabulary()
	if len(vocab) == 0 {
		return
	}

	next := vocab[0]
	for i, name := range vocab {
		if name == entry.Category {
			next = vocab[(i+1)%len(vocab)]
			break
		}
	}

	if err := m.plan.SetCategory(path, next); err != nil {
		utils.Warn("не удалось сменить категорию", "path", path, "error", err)
		return
	}
	m.refreshRows()
}

// toggleExcluded включает или исключает выбранный файл из применения.
func (m *Model) toggleExcluded() {
	path, ok := m.selectedPath()
	if !ok {
		return
	}
	entry, ok := m.plan.Get(path)
	if !ok {
		return
	}

	var err error
	if entry.Excluded {
		err = m.plan.Include(path)
	} else {
		err = m.plan.Exclude(path)
	}
	if err != nil {
		utils.Warn("не удалось переключить исключение", "path", path, "error", err)
		return
	}
	m.refreshRows()
}

// nextSortKey — порядок колонок сортировки по клавише s.
func nextSortKey(key sorting.SortKey) sorting.SortKey {
	switch key {
	case sorting.SortByPath:
		return sorting.SortByKind
	case sorting.SortByKind:
		return sorting.SortBySize
	case sorting.SortBySize:
		return sorting.SortByCategory
	default:
		return sorting.SortByPath
	}
}
