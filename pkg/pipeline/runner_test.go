package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hxmidi/midimap/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const studioRouter = `{"Router": ["6", "1", "zz", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0"]}`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)
	namesPath := writeFile(t, dir, "names.json", `{"1": "Keys", "2": "Synth", "Order": "2, 1"}`)

	res, err := NewRunner(nil).Run(context.Background(), Options{
		RouterPath: routerPath,
		NamesPath:  namesPath,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Name != "studio" || res.Title() != "MIDI Mappings: studio" {
		t.Errorf("Name = %q, Title = %q", res.Name, res.Title())
	}
	if res.Stats.Inputs != 14 {
		t.Errorf("Inputs = %d, want 14 (entry 3 skipped)", res.Stats.Inputs)
	}
	if res.Stats.Edges != 3 || res.Stats.Drawn != 2 || res.Stats.Suppressed != 1 {
		t.Errorf("Stats = %+v, want 3 edges, 2 drawn, 1 hidden", res.Stats)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "input 3") {
		t.Errorf("Warnings = %v, want one for input 3", res.Warnings)
	}

	if r, _ := res.Display.Rank(2); r != 0 {
		t.Errorf("slot 2 rank = %d, want 0", r)
	}

	for _, kind := range []string{KindDiagram, KindMatrix} {
		a, ok := res.Artifact(kind, FormatPNG)
		if !ok || !a.OK() {
			t.Fatalf("%s.png missing or failed: %+v", kind, a)
		}
		if _, err := png.Decode(bytes.NewReader(a.Data)); err != nil {
			t.Errorf("%s.png does not decode: %v", kind, err)
		}
	}
}

func TestRunRouterFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"invalid json", `{"Router": [`, errors.ErrCodeInvalidJSON},
		{"missing key", `{"Routes": []}`, errors.ErrCodeMissingKey},
		{"wrong type", `{"Router": "6"}`, errors.ErrCodeWrongType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".json", tt.content)
			res, err := NewRunner(nil).Run(context.Background(), Options{RouterPath: path})
			if !errors.Is(err, tt.code) {
				t.Errorf("Run() error = %v, want %s", err, tt.code)
			}
			if res != nil {
				t.Errorf("Run() result = %+v, want nil", res)
			}
		})
	}

	_, err := NewRunner(nil).Run(context.Background(), Options{RouterPath: filepath.Join(dir, "absent.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestRunWithoutNames(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)

	tests := []struct {
		name      string
		namesPath string
		warnings  int
	}{
		{"no names file", "", 1},
		{"missing names file", filepath.Join(dir, "absent.json"), 2},
		{"broken names file", writeFile(t, dir, "broken.json", "{"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewRunner(nil).Run(context.Background(), Options{
				RouterPath: routerPath,
				NamesPath:  tt.namesPath,
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(res.Names) != 0 || res.Order != nil {
				t.Errorf("names = %v, order = %v; want empty", res.Names, res.Order)
			}
			if res.Stats.Drawn != 0 {
				t.Errorf("Drawn = %d, want 0 without names", res.Stats.Drawn)
			}

			// Router entry warning, names warning, then the matrix warning.
			if got := len(res.Warnings); got != tt.warnings+1 {
				t.Errorf("Warnings = %v, want %d", res.Warnings, tt.warnings+1)
			}

			d, ok := res.Artifact(KindDiagram, FormatPNG)
			if !ok || !d.OK() {
				t.Errorf("diagram should still render: %+v", d)
			}
			m, ok := res.Artifact(KindMatrix, FormatPNG)
			if !ok || !errors.Is(m.Err, errors.ErrCodeNoOrder) {
				t.Errorf("matrix artifact = %+v, want NO_ORDER", m)
			}
		})
	}
}

func TestRunFormats(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)
	namesPath := writeFile(t, dir, "names.json", `{"1": "Keys", "2": "Synth", "Order": "1,2"}`)

	res, err := NewRunner(nil).Run(context.Background(), Options{
		RouterPath: routerPath,
		NamesPath:  namesPath,
		Formats:    []string{FormatPNG, FormatSVG},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, ok := res.Artifact(KindMatrix, FormatSVG); ok {
		t.Error("matrix.svg should be skipped")
	}
	if len(res.Artifacts) != 3 {
		t.Errorf("artifacts = %d, want 3", len(res.Artifacts))
	}
	svg, ok := res.Artifact(KindDiagram, FormatSVG)
	if !ok || !svg.OK() || !bytes.Contains(svg.Data, []byte("<svg")) {
		t.Errorf("diagram.svg = %+v", svg)
	}
}

func TestRunKinds(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)

	res, err := NewRunner(nil).Run(context.Background(), Options{
		RouterPath: routerPath,
		Kinds:      []string{KindDiagram},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Artifacts) != 1 || res.Artifacts[0].Name() != "diagram.png" {
		t.Errorf("artifacts = %+v, want diagram.png only", res.Artifacts)
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil).Run(ctx, Options{RouterPath: routerPath}); err == nil {
		t.Error("Run() with canceled context succeeded")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	routerPath := writeFile(t, dir, "studio.json", studioRouter)
	namesPath := writeFile(t, dir, "names.json", `{"1": "Keys", "Order": "3"}`)

	opts := Options{RouterPath: routerPath, NamesPath: namesPath}
	res, err := NewRunner(nil).Load(context.Background(), &opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Artifacts) != 0 {
		t.Errorf("Load() rendered %d artifacts", len(res.Artifacts))
	}
	if res.Names[1] != "Keys" || res.Display.Len() != 15 {
		t.Errorf("names = %v, display = %d slots", res.Names, res.Display.Len())
	}
	if r, _ := res.Display.Rank(3); r != 0 {
		t.Errorf("slot 3 rank = %d, want 0", r)
	}
	if len(opts.Kinds) == 0 {
		t.Error("Load() should apply defaults to opts")
	}
}
