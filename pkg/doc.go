// Package pkg provides the libraries behind midimap, which draws the
// routing table of a 15-port MIDI router.
//
// # Overview
//
// A router saves its routing as 15 hexadecimal bitmasks, one per input. Bit
// k of an input's mask set means the input feeds output k+1. midimap decodes
// those masks, labels the ports with device names and draws the result.
//
// # Architecture
//
// Data flows in one direction:
//
//	router.json ──┐
//	              ├─→ [io] ─→ [router] / [names] ─→ [order] ─→ [layout] ─→ [render]
//	names.json  ──┘
//
// [pipeline] runs these steps for the CLI, with [cache] skipping renders
// whose inputs have not changed and [observability] reporting each stage.
//
// # Packages
//
// [slot] - Port numbers 1..15 shared by inputs and outputs.
//
// [router] - Bitmask decoding into a [router.Mapping]. Undecodable entries
// are reported per input and never abort the decode.
//
// [names] - Device labels per slot. An empty name hides a port's text and
// its connections in the diagram.
//
// [order] - The display order: a user list followed by the remaining slots.
//
// [layout] - Pure geometry for the node-link and matrix views.
//
// [render] - PNG and SVG renderers for those layouts.
//
// [io] - JSON import of router and names files, JSON export of mappings.
//
// [config] - The TOML configuration file.
//
// [errors] - Coded errors shared by every package.
//
// # Example
//
//	res, err := pipeline.NewRunner(logger).Run(ctx, pipeline.Options{
//	    RouterPath: "studio.json",
//	    NamesPath:  "MIDI-Names.json",
//	})
//	if err != nil {
//	    return err
//	}
//	base, err := pipeline.BasePath("studio.json", "")
//	if err != nil {
//	    return err
//	}
//	return res.Write(base)
//
// [slot]: github.com/hxmidi/midimap/pkg/slot
// [router]: github.com/hxmidi/midimap/pkg/router
// [router.Mapping]: github.com/hxmidi/midimap/pkg/router#Mapping
// [names]: github.com/hxmidi/midimap/pkg/names
// [order]: github.com/hxmidi/midimap/pkg/order
// [layout]: github.com/hxmidi/midimap/pkg/layout
// [render]: github.com/hxmidi/midimap/pkg/render
// [io]: github.com/hxmidi/midimap/pkg/io
// [config]: github.com/hxmidi/midimap/pkg/config
// [errors]: github.com/hxmidi/midimap/pkg/errors
// [pipeline]: github.com/hxmidi/midimap/pkg/pipeline
// [cache]: github.com/hxmidi/midimap/pkg/cache
// [observability]: github.com/hxmidi/midimap/pkg/observability
package pkg
