package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docmend/docmend/internal/testutil"
)

func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

// startWatcher runs Watch in the background and returns a fire counter plus
// a cancel that waits for the loop to exit.
func startWatcher(t *testing.T, root string) (*atomic.Int64, func()) {
	t.Helper()

	var fired atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := Watch(ctx, root, ".md", testutil.Logger(), func() {
			fired.Add(1)
		}); err != nil {
			t.Errorf("Watch: %v", err)
		}
	}()

	// Let the watcher register its directories before tests write files.
	time.Sleep(100 * time.Millisecond)

	return &fired, func() {
		cancel()
		<-done
	}
}

func TestWatch_FiresOnDocumentWrite(t *testing.T) {
	root := t.TempDir()
	fired, stop := startWatcher(t, root)
	defer stop()

	if err := os.WriteFile(filepath.Join(root, "new.md"), []byte("# New\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return fired.Load() >= 1
	}, "onChange never fired after document write")
}

func TestWatch_IgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	fired, stop := startWatcher(t, root)
	defer stop()

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("txt"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(600 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("onChange fired %d times for a non-document write", n)
	}
}

func TestWatch_BurstDebouncedToSingleFire(t *testing.T) {
	root := t.TempDir()
	fired, stop := startWatcher(t, root)
	defer stop()

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "doc.md")
		if err := os.WriteFile(name, []byte("rev\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return fired.Load() >= 1
	}, "onChange never fired")
	time.Sleep(500 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("onChange fired %d times for one write burst, want 1", n)
	}
}

func TestWatch_NewSubdirectoryWatched(t *testing.T) {
	root := t.TempDir()
	fired, stop := startWatcher(t, root)
	defer stop()

	sub := filepath.Join(root, "guides")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(400 * time.Millisecond)
	before := fired.Load()

	if err := os.WriteFile(filepath.Join(sub, "inner.md"), []byte("# Inner\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return fired.Load() > before
	}, "onChange never fired for a document in a new subdirectory")
}

func TestWatch_StopsOnContextCancel(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, ".md", testutil.Logger(), nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned error on cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after context cancel")
	}
}
