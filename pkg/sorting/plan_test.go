package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVocab = []string{"Книги", "Финансовые документы", "Прочее"}

func testPlan(t *testing.T) *Plan {
	t.Helper()

	p := NewPlan(testVocab)
	p.Upsert(FileEntry{
		SourcePath: "/src/b.pdf", Kind: "pdf", SizeBytes: 200,
		Extraction: ExtractionSucceeded, Classification: ClassificationSucceeded,
		Category: "Книги", Source: OverrideModel,
	})
	p.Upsert(FileEntry{
		SourcePath: "/src/a.docx", Kind: "docx", SizeBytes: 100,
		Extraction: ExtractionSucceeded, Classification: ClassificationFailed,
		ClassificationErr: "timeout",
	})
	p.Upsert(FileEntry{
		SourcePath: "/src/c.jpg", Kind: "jpg", SizeBytes: 300,
		Extraction: ExtractionFailed, ExtractionErr: "ocr error",
	})
	return p
}

func TestUpsertNoDuplicates(t *testing.T) {
	p := testPlan(t)
	require.Equal(t, 3, p.Len())

	// Повторная вставка того же пути обновляет запись на месте
	p.Upsert(FileEntry{SourcePath: "/src/b.pdf", Kind: "pdf", SizeBytes: 999})
	assert.Equal(t, 3, p.Len())

	e, ok := p.Get("/src/b.pdf")
	require.True(t, ok)
	assert.Equal(t, int64(999), e.SizeBytes)

	// Порядок вставки сохранён
	entries := p.Entries()
	assert.Equal(t, "/src/b.pdf", entries[0].SourcePath)
	assert.Equal(t, "/src/a.docx", entries[1].SourcePath)
	assert.Equal(t, "/src/c.jpg", entries[2].SourcePath)
}

func TestSetCategoryUnknownCategory(t *testing.T) {
	p := testPlan(t)

	before, _ := p.Get("/src/b.pdf")
	err := p.SetCategory("/src/b.pdf", "Несуществующая")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	// Запись не изменилась
	after, _ := p.Get("/src/b.pdf")
	assert.Equal(t, before, after)
}

func TestSetCategoryUnknownPath(t *testing.T) {
	p := testPlan(t)
	err := p.SetCategory("/src/nope.pdf", "Книги")
	assert.ErrorIs(t, err, ErrUnknownPath)
}

func TestSetCategoryHumanOverride(t *testing.T) {
	p := testPlan(t)

	// a.docx: классификация провалилась, человек назначает категорию
	require.NoError(t, p.SetCategory("/src/a.docx", "Финансовые документы"))

	e, _ := p.Get("/src/a.docx")
	assert.Equal(t, "Финансовые документы", e.Category)
	assert.Equal(t, OverrideHuman, e.Source)
	// Failed-статус сброшен: человеческое решение делает запись пригодной
	assert.NotEqual(t, ClassificationFailed, e.Classification)
	assert.Empty(t, e.ClassificationErr)
	assert.True(t, e.Eligible())
}

func TestExcludeIncludeRoundTrip(t *testing.T) {
	p := testPlan(t)

	require.NoError(t, p.Exclude("/src/b.pdf"))
	// Идемпотентность: повторное исключение — no-op
	require.NoError(t, p.Exclude("/src/b.pdf"))

	e, _ := p.Get("/src/b.pdf")
	assert.True(t, e.Excluded)
	assert.Equal(t, 3, p.Len(), "excluded entry stays in plan")

	require.NoError(t, p.Include("/src/b.pdf"))
	e, _ = p.Get("/src/b.pdf")
	assert.False(t, e.Excluded)
	assert.Equal(t, "Книги", e.Category, "category untouched by round-trip")
}

func TestExcludeUnknownPath(t *testing.T) {
	p := testPlan(t)
	assert.ErrorIs(t, p.Exclude("/src/nope.pdf"), ErrUnknownPath)
}

func TestEligibleForApply(t *testing.T) {
	p := testPlan(t)

	// Только b.pdf имеет категорию
	eligible := p.EligibleForApply()
	require.Len(t, eligible, 1)
	assert.Equal(t, "/src/b.pdf", eligible[0].SourcePath)

	// Исключённая запись выпадает даже с категорией
	require.NoError(t, p.Exclude("/src/b.pdf"))
	assert.Empty(t, p.EligibleForApply())

	// Человеческое назначение делает запись пригодной
	require.NoError(t, p.SetCategory("/src/c.jpg", "Прочее"))
	eligible = p.EligibleForApply()
	require.Len(t, eligible, 1)
	assert.Equal(t, "/src/c.jpg", eligible[0].SourcePath)

	// Повторные вызовы без правок — одинаковый результат
	assert.Equal(t, eligible, p.EligibleForApply())
}

func TestViewSortKeys(t *testing.T) {
	p := testPlan(t)

	bySize := p.View(SortBySize, true)
	assert.Equal(t, []string{"/src/a.docx", "/src/b.pdf", "/src/c.jpg"},
		paths(bySize))

	bySizeDesc := p.View(SortBySize, false)
	assert.Equal(t, []string{"/src/c.jpg", "/src/b.pdf", "/src/a.docx"},
		paths(bySizeDesc))

	byKind := p.View(SortByKind, true)
	assert.Equal(t, []string{"/src/a.docx", "/src/c.jpg", "/src/b.pdf"},
		paths(byKind))
}

func TestViewCategoryTiebreak(t *testing.T) {
	p := NewPlan(testVocab)
	p.Upsert(FileEntry{SourcePath: "/src/z.pdf", Category: "Книги"})
	p.Upsert(FileEntry{SourcePath: "/src/a.pdf", Category: "Книги"})
	p.Upsert(FileEntry{SourcePath: "/src/m.pdf", Category: "Прочее"})

	// Ничья по категории разрешается путём по возрастанию
	view := p.View(SortByCategory, true)
	assert.Equal(t, []string{"/src/a.pdf", "/src/z.pdf", "/src/m.pdf"}, paths(view))

	// И при убывании тоже
	viewDesc := p.View(SortByCategory, false)
	assert.Equal(t, []string{"/src/m.pdf", "/src/a.pdf", "/src/z.pdf"}, paths(viewDesc))
}

func TestViewIdempotent(t *testing.T) {
	p := testPlan(t)

	first := p.View(SortByCategory, true)
	second := p.View(SortByCategory, true)
	assert.Equal(t, first, second)

	// View не мутирует хранимый порядок
	entries := p.Entries()
	assert.Equal(t, "/src/b.pdf", entries[0].SourcePath)
}

func paths(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.SourcePath
	}
	return out
}
