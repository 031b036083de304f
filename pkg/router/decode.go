package router

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/hxmidi/midimap/pkg/errors"
	"github.com/hxmidi/midimap/pkg/slot"
)

// Option configures [Decode].
type Option func(*decoder)

type decoder struct {
	maxInputs int
	maxBits   int
}

// WithMaxInputs limits how many leading entries are decoded (default [slot.Count]).
func WithMaxInputs(n int) Option {
	return func(d *decoder) { d.maxInputs = n }
}

// WithMaxBits sets how many low-order bits are tested per entry (default [slot.Count]).
func WithMaxBits(n int) Option {
	return func(d *decoder) { d.maxBits = n }
}

// EntryError reports a router entry that could not be decoded.
// The entry's input slot is absent from the resulting Mapping.
type EntryError struct {
	Input  slot.Slot
	Value  any
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("input %d has non-hex value %s: %s", e.Input, formatValue(e.Value), e.Reason)
}

// Unwrap exposes a coded error so callers can use errors.Is with ErrCodeInvalidEntry.
func (e *EntryError) Unwrap() error {
	return errors.New(errors.ErrCodeInvalidEntry, "%s", e.Reason)
}

// Decode turns raw router entries into a Mapping.
//
// At most maxInputs entries are consumed; input slots are numbered from their
// position. Entries that fail to decode are skipped and returned as warnings.
func Decode(entries []any, opts ...Option) (Mapping, []*EntryError) {
	d := decoder{maxInputs: slot.Count, maxBits: slot.Count}
	for _, opt := range opts {
		opt(&d)
	}

	if len(entries) > d.maxInputs {
		entries = entries[:d.maxInputs]
	}

	var (
		routes   []Route
		warnings []*EntryError
	)
	for i, raw := range entries {
		in := slot.Slot(i + 1)
		v, reason := parseHex(raw)
		if v == nil {
			warnings = append(warnings, &EntryError{Input: in, Value: raw, Reason: reason})
			continue
		}
		routes = append(routes, Route{Input: in, Outputs: outputs(v, d.maxBits)})
	}
	return Mapping{routes: routes}, warnings
}

// DecodeValue returns the outputs selected by the low maxBits bits of v.
func DecodeValue(v uint64, maxBits int) []slot.Slot {
	return outputs(new(big.Int).SetUint64(v), maxBits)
}

func outputs(v *big.Int, maxBits int) []slot.Slot {
	out := []slot.Slot{}
	for j := 0; j < maxBits; j++ {
		if v.Bit(j) == 1 {
			out = append(out, slot.Slot(j+1))
		}
	}
	return out
}

// parseHex returns nil and a reason when raw is not a non-negative hex string.
// Surrounding whitespace and a 0x prefix are accepted.
func parseHex(raw any) (*big.Int, string) {
	s, ok := raw.(string)
	if !ok {
		if raw == nil {
			return nil, "value is null"
		}
		return nil, fmt.Sprintf("value is %T, not a string", raw)
	}

	s = strings.TrimSpace(s)
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, "empty string"
	}

	// Base 0 with an explicit prefix allows single underscores between digits.
	v, ok := new(big.Int).SetString(sign+"0x"+s, 0)
	if !ok {
		return nil, "not a hexadecimal number"
	}
	if v.Sign() < 0 {
		return nil, "negative value"
	}
	return v, ""
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}
