package slicedst

import (
	"math/bits"
	"reflect"
	"sync"
	"unsafe"

	"github.com/wippyai/slicedst/internal/traits"
	"github.com/wippyai/slicedst/layout"
)

// Allocator hands out raw blocks for header slices.
//
// Alloc returns memory that satisfies req.Block's size and alignment, or an
// error when it cannot. Blocks with req.Pointers set hold Go pointers and
// must be typed Go memory (see Request.Type); allocators that only manage
// untyped bytes reject them.
type Allocator interface {
	Alloc(req Request) (unsafe.Pointer, error)
	Free(ptr unsafe.Pointer, l layout.Layout)
}

// Dropper is implemented by header and element types that own resources.
// Drop is called exactly once per constructed value when a header slice or a
// partially written payload is destroyed.
type Dropper interface {
	Drop()
}

// Cloner is implemented by element types whose copies must not share state.
// The cloning constructors call Clone instead of plain assignment.
type Cloner[T any] interface {
	Clone() T
}

// Request describes one header slice block to an Allocator.
type Request struct {
	header, elem reflect.Type
	typ          func() reflect.Type
	Block        layout.Block
	Pointers     bool
}

// NewRequest builds the request for blk holding header and elem values.
func NewRequest(blk layout.Block, header, elem reflect.Type) Request {
	pointers := traits.HasPointers(header)
	if blk.Len > 0 {
		pointers = pointers || traits.HasPointers(elem)
	}
	return Request{
		header:   header,
		elem:     elem,
		Block:    blk,
		Pointers: pointers,
		typ: sync.OnceValue(func() reflect.Type {
			return reflect.StructOf([]reflect.StructField{
				{Name: "Len", Type: reflect.TypeFor[uintptr]()},
				{Name: "Header", Type: header},
				{Name: "Data", Type: reflect.ArrayOf(SizeClass(blk.Len), elem)},
			})
		}),
	}
}

// Type returns a Go struct type whose prefix matches the block:
// struct{ Len uintptr; Header H; Data [c]T } with c = SizeClass(n) >= n.
// Field offsets equal the block's; the struct may be larger than
// Block.Size. It is built on first use. Requests made without NewRequest
// return nil.
func (r Request) Type() reflect.Type {
	if r.typ == nil {
		return nil
	}
	return r.typ()
}

// Name describes the block as "HeaderSlice[T, H]" without building its
// struct type. Requests made without NewRequest return "".
func (r Request) Name() string {
	if r.header == nil || r.elem == nil {
		return ""
	}
	return "HeaderSlice[" + r.elem.String() + ", " + r.header.String() + "]"
}

// SizeClass rounds an element count up so that typed blocks share struct
// types: counts up to 8 are exact, larger ones keep their top four bits.
// The result overshoots n by less than 1/8 and yields at most eight
// classes per power of two.
func SizeClass(n int) int {
	if n <= 8 {
		return n
	}
	step := 1 << (bits.Len(uint(n)) - 4)
	c := (n + step - 1) &^ (step - 1)
	if c < n {
		return n
	}
	return c
}

// Layout returns the size and alignment the block needs.
func (r Request) Layout() layout.Layout {
	return r.Block.Layout
}
