package io

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/names"
	"github.com/hxmidi/midimap/pkg/order"
	"github.com/hxmidi/midimap/pkg/slot"
)

// DefaultRouterKey is the top-level key holding the router entries.
const DefaultRouterKey = "Router"

// OrderKey is the reserved names-file key holding the display order.
const OrderKey = "Order"

// ReadRouter decodes a router table from r.
//
// The input must be a JSON object whose key holds a list:
//
//	{"Router": ["7", "0", "4001", ...]}
//
// The list elements are returned as plain Go values (string, float64, bool,
// nil, map, slice) for [router.Decode] to validate one by one.
//
// ReadRouter returns a coded error for each fatal condition:
//   - ErrCodeInvalidJSON: r does not hold valid JSON
//   - ErrCodeMissingKey: the document is not an object or lacks key
//   - ErrCodeWrongType: key is present but not a list
func ReadRouter(r io.Reader, key string) ([]any, error) {
	if key == "" {
		key = DefaultRouterKey
	}

	root, err := parseObject(r)
	if err != nil {
		return nil, err
	}
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeMissingKey, "document is not an object, no %q key", key)
	}

	v, ok := root.Map()[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingKey, "no %q key", key)
	}
	if !v.IsArray() {
		return nil, errors.New(errors.ErrCodeWrongType, "%q does not contain a list (got %s)", key, typeName(v))
	}

	items := v.Array()
	entries := make([]any, len(items))
	for i, item := range items {
		entries[i] = item.Value()
	}
	return entries, nil
}

// ImportRouter reads the router file at path. See [ReadRouter].
// A missing file is reported as ErrCodeFileNotFound.
func ImportRouter(path, key string) ([]any, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ReadRouter(f, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// NamesFile is the decoded content of a names file.
type NamesFile struct {
	Names names.Table
	Order order.Spec // nil when absent, empty, or unparseable

	// Warnings lists ignored keys and values. None of them are fatal.
	Warnings []string
}

// ReadNames decodes a names file from r.
//
//	{"1": "Keystep", "2": "Synth", "Order": "2, 1, 5"}
//
// Keys that are not integers in [1, slot.Count] are ignored, except "Order".
// Name values that are not strings are ignored. An unusable "Order" value
// leaves Order nil. Each ignored item adds a warning.
func ReadNames(r io.Reader) (*NamesFile, error) {
	root, err := parseObject(r)
	if err != nil {
		return nil, err
	}
	if !root.IsObject() {
		return nil, errors.New(errors.ErrCodeWrongType, "names document is %s, not an object", typeName(root))
	}

	out := &NamesFile{Names: names.Table{}}
	root.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if key == OrderKey {
			out.readOrder(v)
			return true
		}

		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || !slot.Slot(n).Valid() {
			out.warnf("ignoring key %q: not a slot number in 1..%d", key, slot.Count)
			return true
		}
		if v.Type != gjson.String {
			out.warnf("ignoring name for slot %d: %s is not a string", n, typeName(v))
			return true
		}
		out.Names[slot.Slot(n)] = v.String()
		return true
	})
	return out, nil
}

// ImportNames reads the names file at path. See [ReadNames].
func ImportNames(path string) (*NamesFile, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nf, err := ReadNames(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nf, nil
}

func (nf *NamesFile) readOrder(v gjson.Result) {
	if v.Type != gjson.String {
		nf.warnf("ignoring %q: %s is not a string", OrderKey, typeName(v))
		return
	}
	spec, err := order.ParseSpec(v.String())
	if err != nil {
		nf.warnf("could not parse %q, using default order: %s", OrderKey, errors.UserMessage(err))
		return
	}
	nf.Order = spec
}

func (nf *NamesFile) warnf(format string, args ...any) {
	nf.Warnings = append(nf.Warnings, fmt.Sprintf(format, args...))
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

func parseObject(r io.Reader) (gjson.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return gjson.Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read")
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New(errors.ErrCodeInvalidJSON, "not valid JSON")
	}
	return gjson.ParseBytes(data), nil
}

func typeName(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "a list"
	case v.IsObject():
		return "an object"
	}
	switch v.Type {
	case gjson.String:
		return "a string"
	case gjson.Number:
		return "a number"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Null:
		return "null"
	}
	return "unknown"
}
