package io

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/router"
)

func TestWriteMapping(t *testing.T) {
	m, _ := router.Decode([]any{"6", "0"})
	tbl := names.Table{1: "Keys", 2: "Synth"}

	var buf bytes.Buffer
	if err := WriteMapping(&buf, m, tbl); err != nil {
		t.Fatalf("WriteMapping() error = %v", err)
	}

	var doc struct {
		Routes []struct {
			Input   int    `json:"input"`
			Name    string `json:"name"`
			Outputs []struct {
				Output int    `json:"output"`
				Name   string `json:"name"`
			} `json:"outputs"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if len(doc.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(doc.Routes))
	}
	first := doc.Routes[0]
	if first.Input != 1 || first.Name != "Keys" {
		t.Errorf("route 0 = %+v, want input 1 named Keys", first)
	}
	if len(first.Outputs) != 2 || first.Outputs[0].Output != 2 || first.Outputs[0].Name != "Synth" || first.Outputs[1].Output != 3 {
		t.Errorf("route 0 outputs = %+v, want [2 Synth, 3]", first.Outputs)
	}
	if doc.Routes[1].Outputs == nil || len(doc.Routes[1].Outputs) != 0 {
		t.Errorf("route 1 outputs = %+v, want empty list", doc.Routes[1].Outputs)
	}
}
