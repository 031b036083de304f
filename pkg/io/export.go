package io

import (
	"encoding/json"
	"io"

	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/router"
	"github.com/hxmidi/midimap/pkg/slot"
)

type mappingDoc struct {
	Routes []routeDoc `json:"routes"`
}

type routeDoc struct {
	Input   slot.Slot   `json:"input"`
	Name    string      `json:"name,omitempty"`
	Outputs []outputDoc `json:"outputs"`
}

type outputDoc struct {
	Output slot.Slot `json:"output"`
	Name   string    `json:"name,omitempty"`
}

// WriteMapping encodes the decoded mapping as indented JSON, annotated with
// names where t has them:
//
//	{"routes": [{"input": 1, "name": "Keys", "outputs": [{"output": 2, "name": "Synth"}]}]}
//
// Every decoded input appears, including those with no outputs.
func WriteMapping(w io.Writer, m router.Mapping, t names.Table) error {
	doc := mappingDoc{Routes: make([]routeDoc, 0, m.Len())}
	for _, r := range m.Routes() {
		rd := routeDoc{Input: r.Input, Name: t[r.Input], Outputs: make([]outputDoc, len(r.Outputs))}
		for i, o := range r.Outputs {
			rd.Outputs[i] = outputDoc{Output: o, Name: t[o]}
		}
		doc.Routes = append(doc.Routes, rd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
