package layout

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/internal/mathx"
)

// Layout is a size and alignment requirement pair describing a memory region.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// Word is the layout of the length prefix stored at offset 0 of every block.
var Word = Of[uintptr]()

// New validates size and align. align must be a power of two and size
// rounded up to align must not exceed the largest int.
func New(size, align uintptr) (Layout, error) {
	if !mathx.IsPowerOfTwo(align) {
		return Layout{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Value(align).
			Detail("alignment %d is not a power of two", align).
			Build()
	}
	if size > mathx.MaxSize-(align-1) {
		return Layout{}, errors.Overflow(errors.PhaseLayout, size, fmt.Sprintf("size rounded to align %d", align))
	}
	return Layout{Size: size, Align: align}, nil
}

// Of returns the layout of a single T.
func Of[T any]() Layout {
	var x T
	return Layout{Size: unsafe.Sizeof(x), Align: unsafe.Alignof(x)}
}

// Array returns the layout of [n]T.
func Array[T any](n int) (Layout, error) {
	return ArrayOf(Of[T](), n)
}

// ArrayOf returns the layout of n consecutive elem values.
func ArrayOf(elem Layout, n int) (Layout, error) {
	if n < 0 {
		return Layout{}, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Value(n).
			Detail("negative element count %d", n).
			Build()
	}
	size, ok := mathx.SafeMul(elem.Size, uintptr(n))
	if !ok {
		return Layout{}, errors.Overflow(errors.PhaseLayout, n, fmt.Sprintf("array of %d-byte elements", elem.Size))
	}
	return New(size, elem.Align)
}

// PaddingNeededFor returns the padding to insert after l so that the next
// byte is aligned to align.
func (l Layout) PaddingNeededFor(align uintptr) uintptr {
	rounded, ok := mathx.AlignTo(l.Size, align)
	if !ok {
		// New guarantees Size+Align-1 fits, so only foreign alignments land here.
		return 0
	}
	return rounded - l.Size
}

// Extend appends next after l with the minimum padding that satisfies
// next's alignment. It returns the combined layout and the offset of next.
// The combined alignment is the larger of the two; trailing padding is not
// added, use PadToAlign for that.
func (l Layout) Extend(next Layout) (Layout, uintptr, error) {
	align := max(l.Align, next.Align)
	offset, ok := mathx.AlignTo(l.Size, next.Align)
	if !ok {
		return Layout{}, 0, errors.Overflow(errors.PhaseLayout, l.Size, "field offset")
	}
	size, ok := mathx.SafeAdd(offset, next.Size)
	if !ok {
		return Layout{}, 0, errors.Overflow(errors.PhaseLayout, next.Size, "extended size")
	}
	combined, err := New(size, align)
	if err != nil {
		return Layout{}, 0, err
	}
	return combined, offset, nil
}

// PadToAlign rounds the size up to a multiple of the alignment.
func (l Layout) PadToAlign() Layout {
	return Layout{Size: l.Size + l.PaddingNeededFor(l.Align), Align: l.Align}
}

func (l Layout) String() string {
	return fmt.Sprintf("{size: %d, align: %d}", l.Size, l.Align)
}
