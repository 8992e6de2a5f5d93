package sorting

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ApplyStatus — итог обработки одной записи Apply Engine.
type ApplyStatus int

const (
	StatusMoved ApplyStatus = iota
	StatusSkippedExcluded
	StatusSkippedIneligible
	StatusFailedCollision
	StatusFailedIO
)

func (s ApplyStatus) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusSkippedExcluded:
		return "skipped (excluded)"
	case StatusSkippedIneligible:
		return "skipped (no category)"
	case StatusFailedCollision:
		return "failed (collision)"
	case StatusFailedIO:
		return "failed (io)"
	default:
		return "unknown"
	}
}

// ApplyResult — итог одной записи: что, куда и чем закончилось.
type ApplyResult struct {
	SourcePath  string
	Category    string
	Destination string // заполнен только при StatusMoved
	SizeBytes   int64
	Status      ApplyStatus
	Reason      string // причина для Failed* статусов
}

// ApplyReport — полный отчёт одного применения плана.
//
// Отчёт создаётся всегда, даже если каждая запись завершилась неудачей:
// частичное применение — принятый и отражённый в отчёте исход, а не
// ошибка всей пачки.
type ApplyReport struct {
	RunID      string
	TargetRoot string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []ApplyResult
}

func newReport(targetRoot string) *ApplyReport {
	return &ApplyReport{
		RunID:      uuid.NewString(),
		TargetRoot: targetRoot,
		StartedAt:  time.Now(),
	}
}

// Count возвращает количество записей с данным статусом.
func (r *ApplyReport) Count(status ApplyStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// MovedBytes возвращает суммарный размер перемещённых файлов.
func (r *ApplyReport) MovedBytes() int64 {
	var total int64
	for _, res := range r.Results {
		if res.Status == StatusMoved {
			total += res.SizeBytes
		}
	}
	return total
}

// Failures возвращает записи, завершившиеся неудачей.
func (r *ApplyReport) Failures() []ApplyResult {
	var out []ApplyResult
	for _, res := range r.Results {
		if res.Status == StatusFailedCollision || res.Status == StatusFailedIO {
			out = append(out, res)
		}
	}
	return out
}

// Summary возвращает однострочную сводку для CLI/TUI.
func (r *ApplyReport) Summary() string {
	return fmt.Sprintf("moved %d (%s), skipped %d, failed %d",
		r.Count(StatusMoved),
		humanize.Bytes(uint64(r.MovedBytes())),
		r.Count(StatusSkippedExcluded)+r.Count(StatusSkippedIneligible),
		len(r.Failures()))
}
