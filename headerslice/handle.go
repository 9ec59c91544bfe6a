package headerslice

import (
	"unsafe"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/layout"
)

// HeaderSlice is a fat handle over a block holding a length word, an H and
// Len() values of T.
type HeaderSlice[T, H any] struct {
	ptr unsafe.Pointer
	len int
}

// Len returns the number of elements.
func (s HeaderSlice[T, H]) Len() int { return s.len }

// StoredLen reads the length word at the start of the block.
func (s HeaderSlice[T, H]) StoredLen() int {
	if s.ptr == nil {
		return 0
	}
	return int(*(*uintptr)(s.ptr))
}

// Header returns the header in place, or nil for the zero handle.
func (s HeaderSlice[T, H]) Header() *H {
	if s.ptr == nil {
		return nil
	}
	off, _ := layout.Offsets[T, H]()
	return (*H)(unsafe.Add(s.ptr, off))
}

// Slice returns the elements in place.
func (s HeaderSlice[T, H]) Slice() []T {
	if s.ptr == nil || s.len == 0 {
		return nil
	}
	_, off := layout.Offsets[T, H]()
	return unsafe.Slice((*T)(unsafe.Add(s.ptr, off)), s.len)
}

// Ptr returns the start of the block.
func (s HeaderSlice[T, H]) Ptr() unsafe.Pointer { return s.ptr }

// IsNil reports whether s is the zero handle.
func (s HeaderSlice[T, H]) IsNil() bool { return s.ptr == nil }

// Layout returns the layout of the block behind s.
func (s HeaderSlice[T, H]) Layout() layout.Layout {
	blk, _ := layout.For[T, H](s.len)
	return blk.Layout
}

// Drop destroys the header and then every element in order and zeroes the
// block. The handle and all its copies must not be used afterwards.
func (s HeaderSlice[T, H]) Drop() {
	if s.ptr == nil {
		return
	}
	defer func() { *(*uintptr)(s.ptr) = 0 }()
	defer dropSlice(s.Slice())
	dropOne(s.Header())
}

// Release drops s and returns its block to a.
func (s HeaderSlice[T, H]) Release(a slicedst.Allocator) {
	if s.ptr == nil {
		return
	}
	l := s.Layout()
	s.Drop()
	a.Free(s.ptr, l)
}

// HeaderStr is a fat handle over a block holding a length word, an H and
// Len() bytes of text.
type HeaderStr[H any] struct {
	ptr unsafe.Pointer
	len int
}

// Len returns the number of bytes.
func (s HeaderStr[H]) Len() int { return s.len }

// StoredLen reads the length word at the start of the block.
func (s HeaderStr[H]) StoredLen() int { return s.AsSlice().StoredLen() }

// Header returns the header in place, or nil for the zero handle.
func (s HeaderStr[H]) Header() *H { return s.AsSlice().Header() }

// String returns the text. It aliases the block and must not outlive it.
func (s HeaderStr[H]) String() string {
	if s.ptr == nil || s.len == 0 {
		return ""
	}
	_, off := layout.Offsets[byte, H]()
	return unsafe.String((*byte)(unsafe.Add(s.ptr, off)), s.len)
}

// Bytes returns the text bytes in place. They must not be modified.
func (s HeaderStr[H]) Bytes() []byte { return s.AsSlice().Slice() }

// Ptr returns the start of the block.
func (s HeaderStr[H]) Ptr() unsafe.Pointer { return s.ptr }

// IsNil reports whether s is the zero handle.
func (s HeaderStr[H]) IsNil() bool { return s.ptr == nil }

// Layout returns the layout of the block behind s.
func (s HeaderStr[H]) Layout() layout.Layout { return s.AsSlice().Layout() }

// AsSlice views s as a byte header slice.
func (s HeaderStr[H]) AsSlice() HeaderSlice[byte, H] {
	return HeaderSlice[byte, H]{ptr: s.ptr, len: s.len}
}

// Drop destroys the header and zeroes the block.
func (s HeaderStr[H]) Drop() { s.AsSlice().Drop() }

// Release drops s and returns its block to a.
func (s HeaderStr[H]) Release(a slicedst.Allocator) { s.AsSlice().Release(a) }

func isDropper[T any]() bool {
	_, ok := any((*T)(nil)).(slicedst.Dropper)
	return ok
}

func dropOne[T any](p *T) {
	if d, ok := any(p).(slicedst.Dropper); ok {
		defer clear(unsafe.Slice(p, 1))
		d.Drop()
		return
	}
	clear(unsafe.Slice(p, 1))
}

// dropSlice drops every element even if one of them panics, then zeroes
// the slots. The first panic is propagated.
func dropSlice[T any](s []T) {
	if !isDropper[T]() {
		clear(s)
		return
	}
	i := 0
	defer func() {
		if i < len(s) {
			dropSlice(s[i+1:])
		}
		clear(s[:min(i+1, len(s))])
	}()
	for ; i < len(s); i++ {
		any(&s[i]).(slicedst.Dropper).Drop()
	}
}
