// Package slicedst stores a header and a variable number of elements in one
// contiguous allocation.
//
// The root package holds the contracts shared by the other packages: the
// Allocator interface and its Request, and the Dropper and Cloner hooks
// element types use to take part in construction and destruction.
//
//	slicedst/          Allocator, Request, Dropper, Cloner
//	├── layout/        size, alignment and offsets of header slice blocks
//	├── headerslice/   HeaderSlice and HeaderStr handles and constructors
//	├── thin/          one-word storage for fat handles
//	├── alloc/         Go heap, arena and instrumented allocators
//	│   └── linmem/    allocator over wazero linear memory
//	├── errors/        structured error types
//	└── cmd/slicedst/  layout inspector and demo
//
// # Quick Start
//
//	s := headerslice.New(uint32(7), 3, slices.Values([]uint32{10, 20, 30}))
//	s.StoredLen() // 3
//	*s.Header()   // 7
//	s.Slice()     // [10 20 30]
//
//	t := headerslice.Erase(s) // one word
//	headerslice.Unerase(t)    // same handle again
//
// # Custom Allocators
//
// Blocks can come from any Allocator. Blocks whose header or elements hold
// Go pointers must be typed Go memory, which Request.Type describes; arena
// and linear memory allocators reject them.
//
//	req, _ := headerslice.RequestFor[uint64, uint32](n)
//	ptr, err := arena.Alloc(req)
//	s, ierr := headerslice.NewInto(ptr, n, header, items)
package slicedst
