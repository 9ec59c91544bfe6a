package headerslice

import (
	"unsafe"

	"github.com/wippyai/slicedst/thin"
)

// SliceEraser erases a HeaderSlice to its block pointer. Unerase reads the
// length back from the first word of the block.
type SliceEraser[T, H any] struct{}

// Erase implements thin.Erasable.
func (SliceEraser[T, H]) Erase(s HeaderSlice[T, H]) unsafe.Pointer { return s.ptr }

// Unerase implements thin.Erasable. p must come from Erase of a handle
// whose block is still alive.
func (SliceEraser[T, H]) Unerase(p unsafe.Pointer) HeaderSlice[T, H] {
	if p == nil {
		return HeaderSlice[T, H]{}
	}
	assertErased[T, H](p)
	return HeaderSlice[T, H]{ptr: p, len: int(*(*uintptr)(p))}
}

// StrEraser is SliceEraser for HeaderStr.
type StrEraser[H any] struct{}

// Erase implements thin.Erasable.
func (StrEraser[H]) Erase(s HeaderStr[H]) unsafe.Pointer { return s.ptr }

// Unerase implements thin.Erasable.
func (StrEraser[H]) Unerase(p unsafe.Pointer) HeaderStr[H] {
	b := SliceEraser[byte, H]{}.Unerase(p)
	return HeaderStr[H]{ptr: b.ptr, len: b.len}
}

// ThinSlice is a HeaderSlice stored in one word.
type ThinSlice[T, H any] = thin.Ptr[HeaderSlice[T, H], SliceEraser[T, H]]

// ThinStr is a HeaderStr stored in one word.
type ThinStr[H any] = thin.Ptr[HeaderStr[H], StrEraser[H]]

// Erase converts s to its one-word form.
func Erase[T, H any](s HeaderSlice[T, H]) ThinSlice[T, H] {
	return thin.New[HeaderSlice[T, H], SliceEraser[T, H]](s)
}

// Unerase rebuilds the handle erased into p.
func Unerase[T, H any](p ThinSlice[T, H]) HeaderSlice[T, H] { return p.Get() }

// EraseStr converts s to its one-word form.
func EraseStr[H any](s HeaderStr[H]) ThinStr[H] {
	return thin.New[HeaderStr[H], StrEraser[H]](s)
}

// UneraseStr rebuilds the handle erased into p.
func UneraseStr[H any](p ThinStr[H]) HeaderStr[H] { return p.Get() }
