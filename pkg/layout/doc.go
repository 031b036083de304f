// Package layout projects a decoded mapping into drawable coordinates.
//
// Two projections share the same inputs (a [router.Mapping], a display order
// and a [names.Table]) but apply different filtering and labeling rules, so
// each is its own pure function:
//
//   - [NodeLink] places every slot on two mirrored columns and keeps only the
//     edges whose endpoints are both named. It always succeeds.
//   - [Matrix] keeps only the slots listed in the user's order and turns each
//     connection between them into a grid cell. It fails with
//     [order.ErrNoOrder] when there is no order to restrict to.
//
// Neither function mutates its inputs; the returned layouts own their slices.
//
// [router.Mapping]: github.com/hxmidi/midimap/pkg/router.Mapping
// [names.Table]: github.com/hxmidi/midimap/pkg/names.Table
// [order.ErrNoOrder]: github.com/hxmidi/midimap/pkg/order.ErrNoOrder
package layout
