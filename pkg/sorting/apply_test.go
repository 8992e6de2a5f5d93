package sorting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyFolders — отображение категорий тестового словаря в ASCII-папки.
var applyFolders = map[string]string{
	"Книги":                "Books",
	"Финансовые документы": "Finance",
	"Прочее":               "Other",
	"Invoices":             "Invoices",
	"Misc":                 "Misc",
}

func folderFor(category string) (string, bool) {
	f, ok := applyFolders[category]
	return f, ok
}

func applyEngine(t *testing.T, target string, workers int) *Engine {
	t.Helper()
	return NewEngine(ApplyConfig{
		TargetRoot:        target,
		FolderFor:         folderFor,
		CollisionAttempts: 10,
		Workers:           workers,
	})
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestApplyScenario — сценарий из трёх файлов: a.pdf и c.docx
// классифицированы моделью, b.jpg после неудачного извлечения получил
// категорию от человека; все три должны переместиться.
func TestApplyScenario(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	a := writeSource(t, src, "a.pdf", "invoice a")
	b := writeSource(t, src, "b.jpg", "photo")
	c := writeSource(t, src, "c.docx", "invoice c")

	plan := NewPlan([]string{"Invoices", "Misc"})
	plan.Upsert(FileEntry{SourcePath: a, Kind: "pdf", SizeBytes: 9,
		Extraction: ExtractionSucceeded, Classification: ClassificationSucceeded,
		Category: "Invoices", Source: OverrideModel})
	plan.Upsert(FileEntry{SourcePath: b, Kind: "jpg", SizeBytes: 5,
		Extraction: ExtractionFailed, ExtractionErr: "ocr error"})
	plan.Upsert(FileEntry{SourcePath: c, Kind: "docx", SizeBytes: 9,
		Extraction: ExtractionSucceeded, Classification: ClassificationSucceeded,
		Category: "Invoices", Source: OverrideModel})

	require.Equal(t, 3, plan.Len())
	require.NoError(t, plan.SetCategory(b, "Misc"))

	report, err := applyEngine(t, target, 1).Apply(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Count(StatusMoved))
	assert.FileExists(t, filepath.Join(target, "Invoices", "a.pdf"))
	assert.FileExists(t, filepath.Join(target, "Invoices", "c.docx"))
	assert.FileExists(t, filepath.Join(target, "Misc", "b.jpg"))

	// Источники исчезли — перемещение, не копирование
	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)
	assert.NoFileExists(t, c)
}

func TestApplyExcludedSkipped(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	a := writeSource(t, src, "a.pdf", "x")
	c := writeSource(t, src, "c.docx", "y")

	plan := NewPlan([]string{"Invoices"})
	plan.Upsert(FileEntry{SourcePath: a, Category: "Invoices", Source: OverrideModel})
	plan.Upsert(FileEntry{SourcePath: c, Category: "Invoices", Source: OverrideModel})
	require.NoError(t, plan.Exclude(c))

	report, err := applyEngine(t, target, 1).Apply(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(StatusMoved))
	assert.Equal(t, 1, report.Count(StatusSkippedExcluded))
	assert.FileExists(t, c, "excluded source stays in place")
}

func TestApplyIneligibleSkipped(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	a := writeSource(t, src, "a.txt", "x")
	plan := NewPlan([]string{"Прочее"})
	plan.Upsert(FileEntry{SourcePath: a, Extraction: ExtractionUnsupported})

	report, err := applyEngine(t, target, 1).Apply(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(StatusSkippedIneligible))
	assert.FileExists(t, a)
}

// TestApplyCollision — два одноимённых файла одной категории получают
// разные имена назначения, ни один не перезаписан.
func TestApplyCollision(t *testing.T) {
	srcA := t.TempDir()
	srcB := t.TempDir()
	target := t.TempDir()

	a := writeSource(t, srcA, "report.pdf", "first")
	b := writeSource(t, srcB, "report.pdf", "second")

	plan := NewPlan([]string{"Книги"})
	plan.Upsert(FileEntry{SourcePath: a, Category: "Книги", Source: OverrideModel})
	plan.Upsert(FileEntry{SourcePath: b, Category: "Книги", Source: OverrideModel})

	report, err := applyEngine(t, target, 4).Apply(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, 2, report.Count(StatusMoved))

	books, err := os.ReadDir(filepath.Join(target, "Books"))
	require.NoError(t, err)
	require.Len(t, books, 2, "both files exist, neither overwritten")

	var contents []string
	for _, f := range books {
		data, err := os.ReadFile(filepath.Join(target, "Books", f.Name()))
		require.NoError(t, err)
		contents = append(contents, string(data))
	}
	assert.ElementsMatch(t, []string{"first", "second"}, contents)
}

func TestApplyMissingSource(t *testing.T) {
	target := t.TempDir()
	ghost := filepath.Join(t.TempDir(), "ghost.pdf")

	plan := NewPlan([]string{"Прочее"})
	plan.Upsert(FileEntry{SourcePath: ghost, Category: "Прочее", Source: OverrideHuman})

	report, err := applyEngine(t, target, 1).Apply(context.Background(), plan)
	require.NoError(t, err, "missing source is per-entry failure, not fatal")

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusFailedIO, report.Results[0].Status)
	assert.Equal(t, "source missing", report.Results[0].Reason)
}

// TestApplyFailureIsolation — неудача одной записи не прерывает пачку
// и не откатывает уже перемещённые файлы.
func TestApplyFailureIsolation(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	a := writeSource(t, src, "a.pdf", "x")
	ghost := filepath.Join(src, "ghost.pdf")
	c := writeSource(t, src, "c.pdf", "y")

	plan := NewPlan([]string{"Книги"})
	for _, p := range []string{a, ghost, c} {
		plan.Upsert(FileEntry{SourcePath: p, Category: "Книги", Source: OverrideHuman})
	}

	report, err := applyEngine(t, target, 1).Apply(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Count(StatusMoved))
	assert.Equal(t, 1, report.Count(StatusFailedIO))
	assert.FileExists(t, filepath.Join(target, "Books", "a.pdf"))
	assert.FileExists(t, filepath.Join(target, "Books", "c.pdf"))
}

func TestApplyReportOrderMatchesPlan(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	var want []string
	plan := NewPlan([]string{"Книги"})
	for _, name := range []string{"z.pdf", "a.pdf", "m.pdf", "b.pdf"} {
		p := writeSource(t, src, name, name)
		plan.Upsert(FileEntry{SourcePath: p, Category: "Книги", Source: OverrideHuman})
		want = append(want, p)
	}

	// Порядок Results не зависит от числа воркеров
	report, err := applyEngine(t, target, 8).Apply(context.Background(), plan)
	require.NoError(t, err)

	var got []string
	for _, res := range report.Results {
		got = append(got, res.SourcePath)
	}
	assert.Equal(t, want, got)
}

func TestApplyTargetRootUnwritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0555))
	t.Cleanup(func() { os.Chmod(parent, 0755) })

	plan := NewPlan([]string{"Прочее"})
	_, err := applyEngine(t, filepath.Join(parent, "out"), 1).Apply(context.Background(), plan)
	assert.Error(t, err, "unusable target root is the one fatal condition")
}

func TestApplySecondRunReportsSourceMissing(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	a := writeSource(t, src, "a.pdf", "x")
	plan := NewPlan([]string{"Книги"})
	plan.Upsert(FileEntry{SourcePath: a, Category: "Книги", Source: OverrideHuman})

	engine := applyEngine(t, target, 1)

	first, err := engine.Apply(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, 1, first.Count(StatusMoved))

	// Повторный apply того же плана: источник уже перемещён
	second, err := engine.Apply(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count(StatusFailedIO))
	assert.Equal(t, "source missing", second.Results[0].Reason)
}
