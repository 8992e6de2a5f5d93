package sorting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ilkoid/smart-sorter/pkg/utils"
)

// FolderFunc отображает категорию в имя подпапки целевой директории.
//
// Обычно это config.AppConfig.FolderFor; в тестах — identity.
type FolderFunc func(category string) (string, bool)

// ApplyConfig — параметры применения плана.
type ApplyConfig struct {
	// TargetRoot — корневая папка назначения; подпапки категорий
	// создаются под ней.
	TargetRoot string

	// FolderFor — отображение категории в подпапку. nil = категория
	// используется как имя папки напрямую.
	FolderFor FolderFunc

	// CollisionAttempts — лимит подбора суффикса "name (N).ext".
	CollisionAttempts int

	// Workers — параллелизм по записям. Операции в одну и ту же папку
	// назначения сериализуются per-dir мьютексом, чтобы счётчик
	// суффиксов оставался согласованным. 0 или 1 = последовательно.
	Workers int

	// OnProgress — опциональный callback (done, total, path).
	OnProgress ProgressFunc
}

// Engine применяет утверждённый план к файловой системе.
//
// Перемещения — best-effort и one-way: отката уже перемещённых записей
// при поздней неудаче нет, частичное применение фиксируется в отчёте.
type Engine struct {
	cfg      ApplyConfig
	exists   ExistsFunc
	mu       sync.Mutex
	dirLocks map[string]*sync.Mutex
}

// NewEngine создаёт Apply Engine.
func NewEngine(cfg ApplyConfig) *Engine {
	if cfg.CollisionAttempts < 1 {
		cfg.CollisionAttempts = 100
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.FolderFor == nil {
		cfg.FolderFor = func(category string) (string, bool) { return category, true }
	}
	return &Engine{
		cfg:      cfg,
		exists:   pathExists,
		dirLocks: make(map[string]*sync.Mutex),
	}
}

// Apply обрабатывает все записи плана и возвращает отчёт.
//
// Единственная фатальная ошибка — непригодный TargetRoot, она
// проверяется один раз до пообъектной обработки. Дальше ошибки
// изолируются per-entry: пачка никогда не прерывается досрочно.
//
// Порядок Results совпадает с порядком вставки плана независимо от
// Workers. Повторный Apply того же плана даст FailedIO для уже
// перемещённых файлов (источник исчез) — это ожидаемый исход,
// историю прошлых запусков движок не ведёт.
func (e *Engine) Apply(ctx context.Context, plan *Plan) (*ApplyReport, error) {
	if err := e.checkTargetRoot(); err != nil {
		return nil, err
	}

	entries := plan.Entries()
	report := newReport(e.cfg.TargetRoot)
	report.Results = make([]ApplyResult, len(entries))

	utils.Info("Apply started",
		"run_id", report.RunID,
		"target", e.cfg.TargetRoot,
		"entries", len(entries),
		"eligible", len(plan.EligibleForApply()))

	jobs := make(chan int)
	var wg sync.WaitGroup
	var done int64

	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report.Results[i] = e.applyOne(&entries[i])
				if e.cfg.OnProgress != nil {
					n := int(atomic.AddInt64(&done, 1))
					e.cfg.OnProgress(n, len(entries), entries[i].SourcePath)
				}
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report.FinishedAt = time.Now()
	utils.Info("Apply finished", "run_id", report.RunID, "summary", report.Summary())
	return report, nil
}

// checkTargetRoot проверяет что целевой корень существует (или создаваем)
// и доступен на запись. Выполняется один раз до пообъектной обработки.
func (e *Engine) checkTargetRoot() error {
	if e.cfg.TargetRoot == "" {
		return fmt.Errorf("target root is not set")
	}
	if err := os.MkdirAll(e.cfg.TargetRoot, 0755); err != nil {
		return fmt.Errorf("target root unusable: %w", err)
	}

	probe, err := os.CreateTemp(e.cfg.TargetRoot, ".sorter-probe-*")
	if err != nil {
		return fmt.Errorf("target root not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// applyOne обрабатывает одну запись плана.
func (e *Engine) applyOne(entry *FileEntry) ApplyResult {
	result := ApplyResult{
		SourcePath: entry.SourcePath,
		Category:   entry.Category,
		SizeBytes:  entry.SizeBytes,
	}

	if entry.Excluded {
		result.Status = StatusSkippedExcluded
		return result
	}
	if !entry.HasCategory() {
		result.Status = StatusSkippedIneligible
		return result
	}

	folder, ok := e.cfg.FolderFor(entry.Category)
	if !ok {
		// Категория выпала из словаря между ревью и apply — не двигаем
		result.Status = StatusFailedIO
		result.Reason = fmt.Sprintf("no folder mapping for category %q", entry.Category)
		return result
	}
	destDir := filepath.Join(e.cfg.TargetRoot, folder)

	// Сериализация per-dir: подбор суффикса и rename в одну папку
	// должны быть атомарны относительно других воркеров
	lock := e.lockFor(destDir)
	lock.Lock()
	defer lock.Unlock()

	srcInfo, err := os.Lstat(entry.SourcePath)
	if err != nil {
		result.Status = StatusFailedIO
		if os.IsNotExist(err) {
			result.Reason = "source missing"
		} else {
			result.Reason = err.Error()
		}
		utils.Warn("Apply: source not accessible", "path", entry.SourcePath, "error", err)
		return result
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		result.Status = StatusFailedIO
		result.Reason = fmt.Sprintf("mkdir %s: %v", destDir, err)
		return result
	}

	dest, err := e.resolveDestination(destDir, entry.SourcePath, srcInfo)
	if err != nil {
		if isCollisionLimit(err) {
			result.Status = StatusFailedCollision
		} else {
			result.Status = StatusFailedIO
		}
		result.Reason = err.Error()
		utils.Warn("Apply: destination resolution failed", "path", entry.SourcePath, "error", err)
		return result
	}

	if err := moveFile(entry.SourcePath, dest); err != nil {
		result.Status = StatusFailedIO
		result.Reason = err.Error()
		utils.Warn("Apply: move failed", "path", entry.SourcePath, "dest", dest, "error", err)
		return result
	}

	result.Status = StatusMoved
	result.Destination = dest
	utils.Info("File moved", "from", entry.SourcePath, "to", dest)
	return result
}

// resolveDestination выбирает путь назначения с учётом коллизий.
//
// Если занятое имя указывает на тот же самый файл (hardlink на
// источник), перезаписи нет по определению — имя переиспользуется.
func (e *Engine) resolveDestination(destDir, srcPath string, srcInfo os.FileInfo) (string, error) {
	base := filepath.Base(srcPath)

	direct := filepath.Join(destDir, base)
	if info, err := os.Lstat(direct); err == nil {
		if os.SameFile(info, srcInfo) {
			return direct, nil
		}
	}

	return ResolveCollision(destDir, base, e.cfg.CollisionAttempts, e.exists)
}

// lockFor возвращает мьютекс папки назначения.
func (e *Engine) lockFor(dir string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.dirLocks[dir]
	if !ok {
		lock = &sync.Mutex{}
		e.dirLocks[dir] = lock
	}
	return lock
}

func isCollisionLimit(err error) bool {
	return errors.Is(err, ErrCollisionLimit)
}

// moveFile перемещает файл: rename, а при EXDEV (другая ФС) —
// копирование с последующим удалением источника.
func moveFile(src, dest string) error {
	if src == dest {
		return nil
	}
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("close destination: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
