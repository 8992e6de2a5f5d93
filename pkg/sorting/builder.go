package sorting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// Extractor — абстрактная способность "извлечь текст из файла".
//
// Реализации живут в pkg/extract; ядро знает только интерфейс.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Classifier — абстрактная способность "классифицировать текст".
//
// Контракт: вернуть ровно одну метку из переданного словаря или ошибку.
type Classifier interface {
	Classify(ctx context.Context, text string, vocabulary []string) (string, error)
}

// ProgressFunc вызывается билдером после завершения каждого файла.
//
// done — сколько файлов обработано, total — всего, path — только что
// завершённый файл. Вызывается из воркер-горутин; реализация обязана
// быть thread-safe (канал или atomic).
type ProgressFunc func(done, total int, path string)

// BuilderConfig — параметры построения плана.
type BuilderConfig struct {
	// Vocabulary — словарь категорий; передаётся классификатору
	// и становится словарём итогового плана.
	Vocabulary []string

	// Supported — расширения (с точкой, нижний регистр), для которых
	// вообще вызывается экстрактор. Остальные попадают в план как
	// Unsupported: видимы в превью, категорию может назначить человек.
	Supported []string

	// Workers — размер воркер-пула. 1 = последовательная обработка.
	// Итоговый план не зависит от значения.
	Workers int

	// CallTimeout — таймаут одной пары extract+classify. Обязателен:
	// один зависший файл не должен останавливать всю пачку.
	CallTimeout time.Duration

	// OnProgress — опциональный callback прогресса.
	OnProgress ProgressFunc
}

// Builder строит план сортировки: на каждый входной путь — ровно одна
// запись, в исходном порядке, какой бы ни была степень параллелизма.
type Builder struct {
	extractor  Extractor
	classifier Classifier
	cfg        BuilderConfig
	supported  map[string]struct{}
}

// NewBuilder создаёт билдер плана.
func NewBuilder(extractor Extractor, classifier Classifier, cfg BuilderConfig) (*Builder, error) {
	if extractor == nil {
		return nil, fmt.Errorf("builder requires an extractor")
	}
	if classifier == nil {
		return nil, fmt.Errorf("builder requires a classifier")
	}
	if len(cfg.Vocabulary) == 0 {
		return nil, fmt.Errorf("builder requires a non-empty vocabulary")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	supported := make(map[string]struct{}, len(cfg.Supported))
	for _, ext := range cfg.Supported {
		supported[strings.ToLower(ext)] = struct{}{}
	}

	return &Builder{
		extractor:  extractor,
		classifier: classifier,
		cfg:        cfg,
		supported:  supported,
	}, nil
}

// Build обрабатывает пути и собирает план.
//
// Результаты воркеров пишутся в слайс по исходному индексу, а не в
// порядке завершения — порядок вставки в план всегда совпадает с
// порядком входа. Ошибки отдельных файлов фиксируются на записях и
// никогда не прерывают пачку.
//
// Отмена ctx останавливает выдачу новых задач; начатые вызовы адаптеров
// завершаются по CallTimeout. Необработанные файлы остаются в плане
// со статусами Pending.
func (b *Builder) Build(ctx context.Context, paths []string) *Plan {
	total := len(paths)
	results := make([]FileEntry, total)

	jobs := make(chan int)
	var wg sync.WaitGroup
	var done int64

	for w := 0; w < b.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.buildEntry(ctx, paths[i])
				if b.cfg.OnProgress != nil {
					n := int(atomic.AddInt64(&done, 1))
					b.cfg.OnProgress(n, total, paths[i])
				}
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Стоп выдачи; файлы без воркера получают Pending-заглушку
			for j := i; j < total; j++ {
				if results[j].SourcePath == "" {
					results[j] = pendingEntry(paths[j])
				}
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	// Гонка между отменой и воркерами: buildEntry мог успеть заполнить
	// часть "заглушечных" индексов — Upsert берёт последнее значение
	plan := NewPlan(b.cfg.Vocabulary)
	for i := range results {
		if results[i].SourcePath == "" {
			results[i] = pendingEntry(paths[i])
		}
		plan.Upsert(results[i])
	}

	utils.Info("Plan built", "files", total, "workers", b.cfg.Workers)
	return plan
}

// pendingEntry — запись для файла, до которого очередь не дошла.
func pendingEntry(path string) FileEntry {
	e := FileEntry{
		SourcePath: path,
		Kind:       KindOf(path),
	}
	if info, err := os.Stat(path); err == nil {
		e.SizeBytes = info.Size()
	}
	return e
}

// buildEntry выполняет полный пайплайн одного файла.
//
// Алгоритм (каждый шаг фиксирует терминальный статус на записи):
//  1. stat: размер; отсутствующий файл = ExtractionFailed
//  2. неподдерживаемое расширение = ExtractionUnsupported, стоп
//  3. extract; ошибка или пустой текст = ExtractionFailed, стоп
//  4. classify; ошибка = ClassificationFailed
//  5. метка вне словаря = ClassificationFailed("invalid category") —
//     нарушение контракта адаптера, не наша категория
func (b *Builder) buildEntry(ctx context.Context, path string) FileEntry {
	entry := FileEntry{
		SourcePath: path,
		Kind:       KindOf(path),
	}

	info, err := os.Stat(path)
	if err != nil {
		entry.Extraction = ExtractionFailed
		entry.ExtractionErr = fmt.Sprintf("stat: %v", err)
		utils.Warn("File not accessible", "path", path, "error", err)
		return entry
	}
	entry.SizeBytes = info.Size()

	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := b.supported[ext]; !ok {
		entry.Extraction = ExtractionUnsupported
		return entry
	}

	callCtx := ctx
	if b.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, b.cfg.CallTimeout)
		defer cancel()
	}

	text, err := b.extractor.Extract(callCtx, path)
	if err != nil {
		entry.Extraction = ExtractionFailed
		entry.ExtractionErr = err.Error()
		utils.Warn("Extraction failed", "path", path, "error", err)
		return entry
	}
	if strings.TrimSpace(text) == "" {
		entry.Extraction = ExtractionFailed
		entry.ExtractionErr = "no text extracted"
		return entry
	}
	entry.Extraction = ExtractionSucceeded
	entry.Text = text

	label, err := b.classifier.Classify(callCtx, text, b.cfg.Vocabulary)
	if err != nil {
		entry.Classification = ClassificationFailed
		entry.ClassificationErr = err.Error()
		utils.Warn("Classification failed", "path", path, "error", err)
		return entry
	}

	// Контракт адаптера: метка строго из словаря
	if !contains(b.cfg.Vocabulary, label) {
		entry.Classification = ClassificationFailed
		entry.ClassificationErr = "invalid category"
		utils.Warn("Classifier returned label outside vocabulary", "path", path, "label", label)
		return entry
	}

	entry.Classification = ClassificationSucceeded
	entry.Category = label
	entry.Source = OverrideModel
	utils.Debug("File classified", "path", path, "category", label)
	return entry
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
