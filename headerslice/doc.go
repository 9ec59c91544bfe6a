// Package headerslice builds header-prefixed slices in a single allocation.
//
// A block holds, in order, a uintptr length word, a header value of type H
// and n elements of type T, each at its natural alignment:
//
//	offset 0            HeaderOffset         DataOffset
//	+-------------------+--------------------+------------------------+
//	| len (uintptr)     | H                  | T  T  T ... (len)      |
//	+-------------------+--------------------+------------------------+
//
// HeaderSlice is the two-word handle over such a block and HeaderStr its
// string flavour. Because the length is also stored inside the block, a
// handle can be erased to one pointer (see ThinSlice and package thin) and
// rebuilt later.
//
// # Construction
//
// The New family allocates from alloc.Default. Each has a Try variant
// returning a *TryNewError that hands the header back:
//
//	s, err := headerslice.TryNew(uint32(7), 3, slices.Values([]uint32{10, 20, 30}))
//	if err != nil {
//	    var te *headerslice.TryNewError[uint32]
//	    errors.As(err, &te) // te.Header == 7
//	}
//
// NewInto, CloneFromInto, CopyFromInto and NewStrInto construct in caller
// memory instead, typically obtained with RequestFor and any
// slicedst.Allocator (alloc.Arena, linmem.Allocator). The caller must pass
// exclusive, writable memory of exactly the requested block layout.
// Building with -tags slicedst_debug turns these preconditions into
// runtime assertions.
//
// # Ownership
//
// A handle owns its header and elements. Drop destroys them once, header
// first and elements in order, calling Drop on types implementing
// slicedst.Dropper. Handles carry no synchronization.
package headerslice
