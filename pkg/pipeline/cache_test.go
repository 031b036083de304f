package pipeline

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hxmidi/midimap/pkg/cache"
	"github.com/hxmidi/midimap/pkg/observability"
)

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, router string, _ int, _ time.Duration, err error) {
	if err != nil {
		h.record("load-failed:" + router)
		return
	}
	h.record("load:" + router)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, artifact string, _ int, _ time.Duration, _ error) {
	h.record("render:" + artifact)
}

func (h *recordingHooks) OnCacheHit(_ context.Context, artifact string) { h.record("hit:" + artifact) }

func (h *recordingHooks) count(e string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, got := range h.events {
		if got == e {
			n++
		}
	}
	return n
}

func TestRunUsesCache(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)
	namesPath := writeFile(t, dir, "names.json", `{"1": "Keys", "2": "Synth", "Order": "2, 1"}`)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	run := func() *Result {
		t.Helper()
		res, err := NewRunner(nil).Run(context.Background(), Options{
			RouterPath: routerPath,
			NamesPath:  namesPath,
			Kinds:      []string{KindDiagram},
			Cache:      c,
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return res
	}

	first := run()
	a1, _ := first.Artifact(KindDiagram, FormatPNG)
	if a1.Cached {
		t.Error("first run should render")
	}

	second := run()
	a2, _ := second.Artifact(KindDiagram, FormatPNG)
	if !a2.Cached || !bytes.Equal(a1.Data, a2.Data) {
		t.Errorf("second run: cached=%v, same bytes=%v", a2.Cached, bytes.Equal(a1.Data, a2.Data))
	}
	if second.Stats.Drawn != 2 {
		t.Errorf("cached run Stats.Drawn = %d, want 2", second.Stats.Drawn)
	}

	writeFile(t, dir, "names.json", `{"1": "Keys", "2": "Bass", "Order": "2, 1"}`)
	third := run()
	if a3, _ := third.Artifact(KindDiagram, FormatPNG); a3.Cached {
		t.Error("changed names file should miss the cache")
	}

	if got := hooks.count("render:diagram.png"); got != 2 {
		t.Errorf("renders = %d, want 2", got)
	}
	if got := hooks.count("hit:diagram.png"); got != 1 {
		t.Errorf("cache hits = %d, want 1", got)
	}
	if got := hooks.count("load:studio"); got != 3 {
		t.Errorf("loads = %d, want 3", got)
	}
}

func TestRunWithoutCache(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)

	for i := 0; i < 2; i++ {
		res, err := NewRunner(nil).Run(context.Background(), Options{RouterPath: routerPath, Kinds: []string{KindDiagram}})
		if err != nil {
			t.Fatal(err)
		}
		if a, _ := res.Artifact(KindDiagram, FormatPNG); a.Cached {
			t.Errorf("run %d: artifact cached without a cache", i)
		}
	}
}

func TestLoadFailureReportsHook(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	path := writeFile(t, t.TempDir(), "broken.json", `{"Router": [`)
	opts := Options{RouterPath: path}
	if _, err := NewRunner(nil).Load(context.Background(), &opts); err == nil {
		t.Fatal("Load() should fail")
	}
	if hooks.count("load-failed:broken") != 1 {
		t.Errorf("events = %v", hooks.events)
	}
}
