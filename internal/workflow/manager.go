package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"speechtag/internal/config"
	"speechtag/internal/logging"
	"speechtag/internal/pipeline"
	"speechtag/internal/queue"
	"speechtag/internal/services"
)

// Summary aggregates batch outcomes for user-facing reporting.
type Summary struct {
	Succeeded int
	Failed    int
	Review    int
	Warned    int
}

// Manager coordinates queue processing across a bounded worker pool.
// Each worker claims pending items one at a time and runs the full
// per-file pipeline; one bad file never stops the batch.
type Manager struct {
	cfg          *config.Config
	store        *queue.Store
	pipe         *pipeline.Pipeline
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	summary Summary
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, store *queue.Store, pipe *pipeline.Pipeline, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:          cfg,
		store:        store,
		pipe:         pipe,
		logger:       logging.NewComponentLogger(logger, "workflow"),
		pollInterval: time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
	}
}

// Start begins background processing. Workers keep polling for new
// pending items until Stop is called or the context is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true

	workers := m.cfg.WorkerCount()
	m.wg.Add(workers)
	m.mu.Unlock()

	for i := 0; i < workers; i++ {
		go m.runWorker(runCtx, false)
	}
	return nil
}

// Stop terminates background processing and waits for in-flight items to
// finish. Items still marked processing afterwards are returned to
// pending so a later run picks them up.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()

	ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if n, err := m.store.ResetStuckProcessing(ctx); err != nil {
		m.logger.Warn("reset stuck processing failed", logging.Error(err))
	} else if n > 0 {
		m.logger.Info("returned interrupted items to pending", logging.Int64("count", n))
	}
}

// RunUntilDrained processes the queue until no pending items remain and
// returns the batch summary. Used by one-shot batch commands.
func (m *Manager) RunUntilDrained(ctx context.Context) (Summary, error) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return Summary{}, errors.New("workflow already running")
	}
	m.running = true
	m.summary = Summary{}

	workers := m.cfg.WorkerCount()
	m.wg.Add(workers)
	m.mu.Unlock()

	for i := 0; i < workers; i++ {
		go m.runWorker(ctx, true)
	}
	m.wg.Wait()

	m.mu.Lock()
	m.running = false
	summary := m.summary
	m.mu.Unlock()

	return summary, ctx.Err()
}

// runWorker is the per-worker loop. With drainOnly set the worker exits
// once the queue has no pending items; otherwise it sleeps and polls.
func (m *Manager) runWorker(ctx context.Context, drainOnly bool) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		item, err := m.store.ClaimNext(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Warn("claim next item failed", logging.Error(err))
			if !m.waitOrShutdown(ctx, time.Duration(m.cfg.Workflow.ErrorRetryInterval)*time.Second) {
				return
			}
			continue
		}
		if item == nil {
			if drainOnly {
				return
			}
			if !m.waitOrShutdown(ctx, m.pollInterval) {
				return
			}
			continue
		}

		m.processItem(ctx, item)
	}
}

// processItem runs the pipeline for one claimed item and persists the
// outcome. Failures are isolated to the item.
func (m *Manager) processItem(ctx context.Context, item *queue.Item) {
	logger := m.logger.With(
		logging.String(logging.FieldFile, item.SourcePath),
		logging.String(logging.FieldRunID, item.RunID),
	)
	logger.Info("processing file")

	outPath, warned, err := m.pipe.ProcessToFile(ctx, item.SourcePath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Shutdown interrupted the file. Return it to pending so a
			// later run picks it up; the worker context is already dead,
			// so persist with a fresh one.
			item.Status = queue.StatusPending
			item.ErrorMessage = queue.StopReason
			persistCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if updateErr := m.store.Update(persistCtx, item); updateErr != nil {
				logger.Warn("persist interrupted item", logging.Error(updateErr))
			}
			return
		}
		item.Status = services.FailureStatus(err)
		item.ErrorMessage = err.Error()
		logger.Error("processing failed", logging.Error(err))
		m.count(func(s *Summary) {
			if item.Status == queue.StatusReview {
				s.Review++
			} else {
				s.Failed++
			}
		})
		if updateErr := m.store.Update(ctx, item); updateErr != nil {
			logger.Warn("persist item failure state", logging.Error(updateErr))
		}
		return
	}

	item.Status = queue.StatusCompleted
	item.OutputPath = outPath
	item.ErrorMessage = ""
	item.Warned = warned
	if err := m.store.Update(ctx, item); err != nil {
		logger.Warn("persist completed item", logging.Error(err))
	}

	logger.Info("file tagged",
		logging.String("output", outPath),
		logging.Bool("warned", warned))
	m.count(func(s *Summary) {
		s.Succeeded++
		if warned {
			s.Warned++
		}
	})
}

func (m *Manager) count(apply func(*Summary)) {
	m.mu.Lock()
	apply(&m.summary)
	m.mu.Unlock()
}

func (m *Manager) waitOrShutdown(ctx context.Context, wait time.Duration) bool {
	if wait <= 0 {
		wait = time.Second
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(wait):
		return true
	}
}
