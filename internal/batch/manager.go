package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhaoyun/weread-exporter/internal/config"
	ioutils "github.com/zhaoyun/weread-exporter/internal/io"
	"github.com/zhaoyun/weread-exporter/internal/model"
	"github.com/zhaoyun/weread-exporter/internal/task"
	"github.com/zhaoyun/weread-exporter/internal/weread"
)

// taskRetryEntries is how many entries of the round schedule the
// per-book micro-retry uses. Transient single-fetch errors recover fast
// inside a task; persistent failures escalate to the slower rounds.
const taskRetryEntries = 2

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an export progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result is the final partition of a batch run.
type Result struct {
	// Succeeded holds every book exported in any round, in completion
	// order. Books that succeeded before a later round failed others are
	// never discarded.
	Succeeded []*model.ExportedBook

	// PermanentlyFailed holds the ids still failing when the round
	// budget ran out. Empty on a fully successful run.
	PermanentlyFailed []string
}

// Manager coordinates batch exports.
//
// A Manager runs the bounded task runner over the requested book ids,
// collects per-book success/failure, and re-submits only the failures
// across multiple rounds with escalating delay. Two retry layers nest
// intentionally: each task retries quickly on its own (first two entries
// of the schedule), and ids that keep failing are re-run in later,
// slower rounds.
type Manager struct {
	settings *config.Settings
	exporter *weread.Exporter
	images   *ioutils.ImageService

	onProgress func(ProgressEvent)

	mu        sync.Mutex
	progress  model.BatchProgress
	succeeded []*model.ExportedBook
}

// NewManager creates a batch Manager.
//
// onProgress may be nil; events are then dropped.
func NewManager(settings *config.Settings, exporter *weread.Exporter, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		exporter:   exporter,
		images:     ioutils.NewImageService(),
		onProgress: onProgress,
	}
}

// Progress returns a snapshot of the current run's progress.
func (m *Manager) Progress() model.BatchProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.progress
	snapshot.Failed = append([]string(nil), m.progress.Failed...)
	return snapshot
}

// RunBatch exports the given books and returns the final partition of
// succeeded books and permanently failed ids.
//
// Per-book failures are absorbed into the round's failure set and never
// crash the batch; the only error RunBatch itself returns is context
// cancellation. Duplicate ids are collapsed before the first round.
func (m *Manager) RunBatch(ctx context.Context, bookIDs []string) (*Result, error) {
	pending := dedupe(bookIDs)

	m.mu.Lock()
	m.progress = model.BatchProgress{Total: len(pending)}
	m.succeeded = nil
	m.mu.Unlock()

	if len(pending) == 0 {
		return &Result{}, nil
	}

	roundPolicy := task.RetryPolicyFromMillis(m.settings.RetryScheduleMS)
	taskPolicy := roundPolicy.Truncate(taskRetryEntries)
	taskDelay := time.Duration(m.settings.TaskDelayMS) * time.Millisecond

	maxRounds := m.settings.MaxRounds
	if maxRounds < 1 {
		maxRounds = 1
	}

	for round := 0; ; round++ {
		if round > 0 {
			m.emit(ProgressEvent{
				Message: fmt.Sprintf("Round %d: retrying %d failed book(s)", round+1, len(pending)),
				Level:   LevelInfo,
			})
		}

		var failed []string
		err := task.Run(ctx, pending, m.settings.Concurrency, taskDelay, func(ctx context.Context, id string, _ int) error {
			book, err := m.exporter.ExportBook(ctx, id, m.settings.UserVid, taskPolicy)
			if err == nil && m.settings.SaveBookFiles && m.settings.OutputDir != "" {
				m.saveBook(ctx, book)
			}

			m.mu.Lock()
			defer m.mu.Unlock()
			if err != nil {
				failed = append(failed, id)
				m.emitLocked(ProgressEvent{
					Message: fmt.Sprintf("Error exporting %s: %v", id, err),
					Level:   LevelWarning,
				})
				return nil
			}
			m.succeeded = append(m.succeeded, book)
			m.progress.Done++
			m.emitLocked(ProgressEvent{
				Message: fmt.Sprintf("Exported: %s (%d notes)", book.Title, len(book.Notes)),
				Level:   LevelInfo,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.progress.Failed = append([]string(nil), failed...)
		m.mu.Unlock()

		if len(failed) == 0 {
			m.emit(ProgressEvent{Message: "All books exported", Level: LevelSuccess})
			return &Result{Succeeded: m.snapshotSucceeded()}, nil
		}

		if round+1 >= maxRounds {
			m.emit(ProgressEvent{
				Message: fmt.Sprintf("Giving up on %d book(s) after %d round(s)", len(failed), round+1),
				Level:   LevelError,
			})
			return &Result{
				Succeeded:         m.snapshotSucceeded(),
				PermanentlyFailed: failed,
			}, nil
		}

		pending = failed
		if err := task.Sleep(ctx, roundPolicy.Delay(round)); err != nil {
			return nil, err
		}
	}
}

// saveBook writes the per-book side outputs: the rendered markdown and,
// when enabled, a resized cover JPEG. Failures here are warnings; the
// output sink is best effort and never retried.
func (m *Manager) saveBook(ctx context.Context, book *model.ExportedBook) {
	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		m.emit(ProgressEvent{Message: fmt.Sprintf("Error creating output directory: %v", err), Level: LevelWarning})
		return
	}

	name := ioutils.SanitizeFileName(book.Title)
	mdPath := filepath.Join(m.settings.OutputDir, name+".md")
	if err := ioutils.WriteFile(ctx, mdPath, []byte(book.Markdown)); err != nil {
		m.emit(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", mdPath, err), Level: LevelWarning})
		return
	}
	m.emit(ProgressEvent{Message: fmt.Sprintf("Wrote %s", mdPath), Level: LevelVerbose})

	if !m.settings.SaveCovers || !book.HasCover() {
		return
	}

	data, err := m.exporter.Client().DownloadCover(ctx, book.CoverURL)
	if err != nil {
		m.emit(ProgressEvent{Message: fmt.Sprintf("Error downloading cover for %s: %v", book.Title, err), Level: LevelWarning})
		return
	}
	if m.settings.CoverMaxSize > 0 {
		if resized, err := m.images.ResizeImage(ctx, data, m.settings.CoverMaxSize, m.settings.CoverMaxSize); err == nil {
			data = resized
		}
	} else if converted, err := m.images.ConvertToJPEG(ctx, data); err == nil {
		data = converted
	}

	coverPath := filepath.Join(m.settings.OutputDir, name+".jpg")
	if err := ioutils.WriteFile(ctx, coverPath, data); err != nil {
		m.emit(ProgressEvent{Message: fmt.Sprintf("Error writing cover %s: %v", coverPath, err), Level: LevelWarning})
		return
	}
	m.emit(ProgressEvent{Message: fmt.Sprintf("Wrote %s", coverPath), Level: LevelVerbose})
}

func (m *Manager) snapshotSucceeded() []*model.ExportedBook {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.ExportedBook(nil), m.succeeded...)
}

func (m *Manager) emit(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// emitLocked emits while m.mu is held; the callback must not call back
// into the Manager.
func (m *Manager) emitLocked(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// dedupe collapses duplicate ids, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
