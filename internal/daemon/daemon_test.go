package daemon_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"speechtag/internal/daemon"
	"speechtag/internal/pipeline"
	"speechtag/internal/queue"
	"speechtag/internal/testsupport"
	"speechtag/internal/workflow"
)

func newDaemon(t *testing.T) (*daemon.Daemon, *queue.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithWorkers(1))
	cfg.Workflow.QueuePollInterval = 1
	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	manager := workflow.NewManager(cfg, store, pipeline.New(cfg, nil, nil), nil)
	d, err := daemon.New(cfg, store, nil, manager)
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	return d, store, cfg.Paths.InputDir
}

func waitForStatus(t *testing.T, store *queue.Store, path string, want queue.Status) {
	t.Helper()
	deadline := time.Now().Add(15 * time.Second)
	for {
		item, err := store.GetBySourcePath(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}
		if item != nil && item.Status == want {
			return
		}
		if time.Now().After(deadline) {
			if item == nil {
				t.Fatalf("%s never enqueued", path)
			}
			t.Fatalf("%s status %s, want %s", path, item.Status, want)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestDaemonProcessesExistingAndNewFiles(t *testing.T) {
	d, store, inputDir := newDaemon(t)

	existing := filepath.Join(inputDir, "existing.wav")
	testsupport.WriteSpeechWAV(t, existing, 16000, 2.0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	waitForStatus(t, store, existing, queue.StatusCompleted)

	// A recording dropped in while the daemon is running. Written to a
	// temp name first, then renamed into place like real producers do.
	staged := filepath.Join(t.TempDir(), "incoming.wav")
	testsupport.WriteSpeechWAV(t, staged, 16000, 2.0)
	incoming := filepath.Join(inputDir, "incoming.wav")
	if err := os.Rename(staged, incoming); err != nil {
		t.Fatal(err)
	}

	waitForStatus(t, store, incoming, queue.StatusCompleted)
}

func TestDaemonKeepsCompletedItemWhenFileMovedOut(t *testing.T) {
	d, store, inputDir := newDaemon(t)

	source := filepath.Join(inputDir, "archived.wav")
	testsupport.WriteSpeechWAV(t, source, 16000, 2.0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	waitForStatus(t, store, source, queue.StatusCompleted)

	// Moving the processed recording out of the watched directory raises
	// a rename event for its old path. That must not requeue the item.
	if err := os.Rename(source, filepath.Join(t.TempDir(), "archived.wav")); err != nil {
		t.Fatal(err)
	}

	time.Sleep(500 * time.Millisecond)
	item, err := store.GetBySourcePath(context.Background(), source)
	if err != nil {
		t.Fatal(err)
	}
	if item == nil {
		t.Fatal("completed item disappeared")
	}
	if item.Status != queue.StatusCompleted {
		t.Fatalf("status %s after move-out, want %s", item.Status, queue.StatusCompleted)
	}
	if item.ErrorMessage != "" {
		t.Fatalf("unexpected error message %q", item.ErrorMessage)
	}
}

func TestDaemonIgnoresNonAudioFiles(t *testing.T) {
	d, store, inputDir := newDaemon(t)

	note := filepath.Join(inputDir, "README.txt")
	if err := os.WriteFile(note, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	time.Sleep(200 * time.Millisecond)
	item, err := store.GetBySourcePath(context.Background(), note)
	if err != nil {
		t.Fatal(err)
	}
	if item != nil {
		t.Fatal("non-audio file must not be enqueued")
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	d, _, _ := newDaemon(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start on a running daemon must fail")
	}
}
