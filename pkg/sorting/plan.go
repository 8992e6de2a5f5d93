package sorting

import (
	"sort"
	"sync"
)

// SortKey — колонка, по которой сортируется представление плана.
type SortKey int

const (
	SortByPath SortKey = iota
	SortByKind
	SortBySize
	SortByCategory
)

func (k SortKey) String() string {
	switch k {
	case SortByKind:
		return "kind"
	case SortBySize:
		return "size"
	case SortByCategory:
		return "category"
	default:
		return "path"
	}
}

// Plan — единственный источник истины после построения: упорядоченная
// коллекция FileEntry с ключом SourcePath.
//
// Модель доступа: один логический писатель (интерактивное ревью),
// много читателей. RWMutex защищает чтение представлений во время
// редактирования; конкурентные писатели вне контракта.
//
// Порядок вставки стабилен: View сортирует копию, Upsert существующего
// пути обновляет запись на месте, никогда не дублируя её.
type Plan struct {
	mu      sync.RWMutex
	vocab   map[string]struct{}
	order   []string
	entries map[string]*FileEntry
}

// NewPlan создаёт пустой план с заданным словарём категорий.
//
// Словарь передаётся явно (не ambient state): его время жизни —
// один запуск, и план можно тестировать изолированно.
func NewPlan(vocabulary []string) *Plan {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, v := range vocabulary {
		vocab[v] = struct{}{}
	}
	return &Plan{
		vocab:   vocab,
		entries: make(map[string]*FileEntry),
	}
}

// Upsert добавляет запись или обновляет существующую по SourcePath.
//
// Повторное добавление того же пути обновляет запись на её прежней
// позиции — дубликатов в плане не бывает.
func (p *Plan) Upsert(e FileEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries[e.SourcePath]; !exists {
		p.order = append(p.order, e.SourcePath)
	}
	clone := e
	p.entries[e.SourcePath] = &clone
}

// Get возвращает копию записи по пути.
func (p *Plan) Get(path string) (FileEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	e, ok := p.entries[path]
	if !ok {
		return FileEntry{}, false
	}
	return *e, true
}

// Len возвращает количество записей в плане.
func (p *Plan) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Vocabulary возвращает словарь категорий плана (копию, порядок не определён).
func (p *Plan) Vocabulary() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.vocab))
	for v := range p.vocab {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SetCategory назначает записи категорию от имени человека.
//
// Категория обязана входить в словарь (ErrUnknownCategory), путь — в план
// (ErrUnknownPath). При успехе Source становится OverrideHuman, а прежний
// Failed-статус классификации сбрасывается: человеческое решение всегда
// делает запись пригодной для apply.
func (p *Plan) SetCategory(path, category string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.vocab[category]; !ok {
		return &UnknownCategoryError{Category: category}
	}
	e, ok := p.entries[path]
	if !ok {
		return &UnknownPathError{Path: path}
	}

	e.Category = category
	e.Source = OverrideHuman
	if e.Classification == ClassificationFailed {
		e.Classification = ClassificationPending
		e.ClassificationErr = ""
	}
	return nil
}

// Exclude помечает запись как исключённую из apply.
//
// Идемпотентна: повторное исключение — no-op, не ошибка.
// Запись остаётся в плане и может быть возвращена через Include.
func (p *Plan) Exclude(path string) error {
	return p.setExcluded(path, true)
}

// Include возвращает исключённую запись в план. Идемпотентна.
func (p *Plan) Include(path string) error {
	return p.setExcluded(path, false)
}

func (p *Plan) setExcluded(path string, excluded bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[path]
	if !ok {
		return &UnknownPathError{Path: path}
	}
	e.Excluded = excluded
	return nil
}

// View возвращает read-only срез копий записей, отсортированный по колонке.
//
// Ничья всегда разрешается по SourcePath по возрастанию — два вызова
// без правок между ними возвращают идентичные последовательности.
// Хранимый порядок вставки не мутируется.
func (p *Plan) View(key SortKey, ascending bool) []FileEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]FileEntry, 0, len(p.order))
	for _, path := range p.order {
		out = append(out, *p.entries[path])
	}

	less := func(a, b *FileEntry) bool {
		switch key {
		case SortByKind:
			if a.Kind != b.Kind {
				return a.Kind < b.Kind
			}
		case SortBySize:
			if a.SizeBytes != b.SizeBytes {
				return a.SizeBytes < b.SizeBytes
			}
		case SortByCategory:
			if a.Category != b.Category {
				return a.Category < b.Category
			}
		default:
			return a.SourcePath < b.SourcePath
		}
		// Ничья: путь по возрастанию, независимо от направления сортировки
		return a.SourcePath < b.SourcePath
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if ascending {
			return less(a, b)
		}
		// При убывании ничья по пути остаётся возрастающей
		if equalKey(a, b, key) {
			return a.SourcePath < b.SourcePath
		}
		return less(b, a)
	})

	return out
}

func equalKey(a, b *FileEntry, key SortKey) bool {
	switch key {
	case SortByKind:
		return a.Kind == b.Kind
	case SortBySize:
		return a.SizeBytes == b.SizeBytes
	case SortByCategory:
		return a.Category == b.Category
	default:
		return a.SourcePath == b.SourcePath
	}
}

// Entries возвращает копии записей в порядке вставки.
//
// Это дефолтный порядок отображения и порядок обхода Apply Engine.
func (p *Plan) Entries() []FileEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]FileEntry, 0, len(p.order))
	for _, path := range p.order {
		out = append(out, *p.entries[path])
	}
	return out
}

// EligibleForApply возвращает записи, которые будут применены:
// не исключённые и с назначенной категорией.
//
// Пересчитывается при каждом вызове, без побочных эффектов —
// безопасно вызывать сколько угодно раз.
func (p *Plan) EligibleForApply() []FileEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []FileEntry
	for _, path := range p.order {
		e := p.entries[path]
		if e.Eligible() {
			out = append(out, *e)
		}
	}
	return out
}
