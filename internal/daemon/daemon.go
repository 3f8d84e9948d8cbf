package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"speechtag/internal/config"
	"speechtag/internal/logging"
	"speechtag/internal/queue"
	"speechtag/internal/workflow"
)

// audioExtensions lists the file types the watcher enqueues.
var audioExtensions = map[string]struct{}{
	".wav": {},
	".mp3": {},
}

// Daemon watches the input directory for new recordings, enqueues them,
// and drives the worker pool. A file lock enforces a single instance per
// log directory.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *queue.Store
	workflow *workflow.Manager

	lockPath string
	lock     *flock.Flock
	runID    string

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger, wf *workflow.Manager) (*Daemon, error) {
	if cfg == nil || store == nil || wf == nil {
		return nil, errors.New("daemon requires config, store, and workflow manager")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "speechtag.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		workflow: wf,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, enqueues recordings already present
// in the input directory, and begins watching for new ones.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another speechtag instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.runID = uuid.NewString()

	if err := d.enqueueExisting(runCtx); err != nil {
		d.teardown()
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		d.teardown()
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(d.cfg.Paths.InputDir); err != nil {
		_ = watcher.Close()
		d.teardown()
		return fmt.Errorf("watch %s: %w", d.cfg.Paths.InputDir, err)
	}

	if err := d.workflow.Start(runCtx); err != nil {
		_ = watcher.Close()
		d.teardown()
		return fmt.Errorf("start workflow: %w", err)
	}

	d.wg.Add(1)
	go d.watch(runCtx, watcher)

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("input_dir", d.cfg.Paths.InputDir),
		logging.String(logging.FieldRunID, d.runID))
	return nil
}

// Stop stops watching and processing and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	d.workflow.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Wait blocks until the context that started the daemon is cancelled and
// shutdown completes.
func (d *Daemon) Wait(ctx context.Context) {
	<-ctx.Done()
	d.Stop()
}

func (d *Daemon) teardown() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	_ = d.lock.Unlock()
}

// enqueueExisting picks up recordings dropped into the input directory
// while no daemon was running.
func (d *Daemon) enqueueExisting(ctx context.Context) error {
	entries, err := os.ReadDir(d.cfg.Paths.InputDir)
	if err != nil {
		return fmt.Errorf("scan input directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isAudioFile(entry.Name()) {
			continue
		}
		d.enqueue(ctx, filepath.Join(d.cfg.Paths.InputDir, entry.Name()))
	}
	return nil
}

func (d *Daemon) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer d.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Only Create marks an arrival. A file moved into the
			// directory raises Create too; Rename carries the old path of
			// a file that just left and must not be enqueued.
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isAudioFile(event.Name) {
				continue
			}
			d.logger.Debug("input event",
				logging.String(logging.FieldEventType, event.Op.String()),
				logging.String(logging.FieldFile, event.Name))
			d.enqueue(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("watcher error", logging.Error(err))
		}
	}
}

func (d *Daemon) enqueue(ctx context.Context, path string) {
	item, err := d.store.NewFile(ctx, path, d.runID)
	if err != nil {
		d.logger.Warn("enqueue file",
			logging.String(logging.FieldFile, path),
			logging.Error(err))
		return
	}
	if item.Status == queue.StatusPending {
		d.logger.Info("file queued", logging.String(logging.FieldFile, path))
	}
}

func isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := audioExtensions[ext]
	return ok
}
