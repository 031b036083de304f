// Package io loads router and names files and exports decoded mappings.
//
// # Router files
//
// A router file is a JSON object whose "Router" key holds a list of
// hexadecimal strings, one per input:
//
//	{"Router": ["7", "0", "4001", "0", ...]}
//
// [ImportRouter] distinguishes the four ways loading can fail, each with its
// own error code: file not found, invalid JSON, missing key, and a key that
// is not a list. All four are fatal to a run. Individual entries are not
// validated here; that is [router.Decode]'s job.
//
// # Names files
//
// A names file maps decimal slot numbers to display names, plus an optional
// "Order" string:
//
//	{"1": "Keystep", "2": "Synth", "3": "", "Order": "2, 1"}
//
// [ImportNames] never fails on content it can skip; unusable keys and values
// are reported as warnings on the returned [NamesFile].
//
// # Export
//
// [WriteMapping] writes a decoded mapping as JSON for other tools.
//
// The package uses [github.com/tidwall/gjson] for reading so that a key's
// presence and its JSON type can be checked without decoding into fixed
// structs.
//
// [router.Decode]: github.com/hxmidi/midimap/pkg/router.Decode
package io
