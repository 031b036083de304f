// Package router decodes bitmask router tables into input→output mappings.
//
// A router table is an ordered list of hexadecimal strings. Entry i (0-based)
// describes input slot i+1; bit j of its value, when set, connects that input
// to output slot j+1:
//
//	m, warnings := router.Decode([]any{"7", "0", "4001"})
//	// m: 1 -> [1 2 3], 2 -> [], 3 -> [1 15]
//
// Entries that are not hex strings are skipped and reported as [*EntryError]
// values; the remaining entries are still decoded. File-level failures (missing
// file, bad JSON) are handled by package io before Decode is ever called.
package router
