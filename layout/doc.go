// Package layout computes memory layouts for header-prefixed slices.
//
// A header slice is a single block holding, in order, a machine word with the
// element count, a header value and the elements themselves:
//
//	offset 0            HeaderOffset          DataOffset
//	┌───────────────┬───┬──────────────┬───┬──────────────────────┬───┐
//	│ len (uintptr) │pad│ header (H)   │pad│ n × element (T)      │pad│
//	└───────────────┴───┴──────────────┴───┴──────────────────────┴───┘
//
// Each part starts at its natural alignment, and the whole block is padded to
// the largest alignment among the three parts. This is the binary shape any
// reimplementation has to reproduce to interoperate.
//
// # Layout Rules
//
//   - New rejects alignments that are not powers of two and sizes that would
//     not fit an int once rounded up to the alignment.
//   - Extend appends a field with the minimum padding needed for its alignment.
//   - PadToAlign rounds the size up to a multiple of the alignment.
//
// Overflow is reported as a *errors.Error with Kind overflow, never as a
// panic, so callers can map it to their own error values.
//
// # Usage
//
//	blk, err := layout.For[uint64, MyHeader](n)
//	// blk.Size, blk.Align, blk.HeaderOffset, blk.DataOffset
package layout
