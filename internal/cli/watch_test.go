package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchTargets(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "studio.json")
	b := filepath.Join(dir, "names", "MIDI-Names.json")

	targets := watchTargets(a, "", b)
	if len(targets) != 2 || !targets[a] || !targets[b] {
		t.Errorf("watchTargets() = %v", targets)
	}
	dirs := watchDirs(targets)
	if len(dirs) != 2 || !dirs[dir] || !dirs[filepath.Join(dir, "names")] {
		t.Errorf("watchDirs() = %v", dirs)
	}
}

func TestRelevantOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want bool
	}{
		{fsnotify.Write, true},
		{fsnotify.Create, true},
		{fsnotify.Rename, true},
		{fsnotify.Chmod, false},
		{fsnotify.Remove, false},
		{fsnotify.Write | fsnotify.Chmod, true},
	}
	for _, tt := range tests {
		if got := relevantOp(tt.op); got != tt.want {
			t.Errorf("relevantOp(%v) = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestRunWatchRerendersOnChange(t *testing.T) {
	dir, routerPath, namesPath := setupFiles(t)
	c := New(io.Discard, LogInfo)

	opts, err := c.pipelineOptions(routerPath, inputFlags{names: namesPath}, outputFlags{kinds: "diagram"})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))
	done := make(chan error, 1)
	go func() { done <- c.runWatch(ctx, opts, "") }()

	diagram := filepath.Join(dir, "studio_diagram.png")
	waitFor(t, func() bool { _, err := os.Stat(diagram); return err == nil })

	if err := os.Remove(diagram); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(routerPath, []byte(testRouter), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { _, err := os.Stat(diagram); return err == nil })

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("runWatch() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met within 5s")
}
