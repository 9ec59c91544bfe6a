package headerslice

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/layout"
)

// InitError reports that the source of NewInto ran dry before the block was
// full. It owns the written elements and the header until TakeOwnership or
// DropInPlace is called.
type InitError[T, H any] struct {
	ptr    unsafe.Pointer
	header H
	done   bool

	WrittenLen  int
	ExpectedLen int
}

// Error implements the error interface.
func (e *InitError[T, H]) Error() string {
	return e.Unwrap().Error()
}

// Unwrap returns the structured not-enough-items error.
func (e *InitError[T, H]) Unwrap() error {
	err := errors.NotEnoughItems(e.WrittenLen, e.ExpectedLen)
	err.GoType = blockName[T, H]()
	return err
}

// Written returns the elements that were written, in place.
func (e *InitError[T, H]) Written() []T {
	if e.done || e.WrittenLen == 0 {
		return nil
	}
	_, off := layout.Offsets[T, H]()
	return unsafe.Slice((*T)(unsafe.Add(e.ptr, off)), e.WrittenLen)
}

// TakeOwnership hands the block and the header to the caller, who becomes
// responsible for the WrittenLen elements at the block's data offset.
func (e *InitError[T, H]) TakeOwnership() (unsafe.Pointer, H) {
	e.done = true
	return e.ptr, e.header
}

// DropInPlace drops the written elements and returns the header. The
// block itself is left to its owner.
func (e *InitError[T, H]) DropInPlace() H {
	if !e.done {
		dropSlice(e.Written())
		e.done = true
	}
	return e.header
}

// NewInto constructs a header slice of length elements in the block at ptr,
// taking values from items until length of them were written.
//
// ptr must point to exclusively owned, writable memory laid out as
// layout.For[T, H](length). If items yields fewer values the block is left
// without length word and header and an *InitError describes the prefix.
// If items panics the prefix and then header are dropped before the panic
// propagates.
func NewInto[T, H any](ptr unsafe.Pointer, length int, header H, items iter.Seq[T]) (HeaderSlice[T, H], *InitError[T, H]) {
	assertBlock[T, H](ptr, length)
	headerOff, dataOff := layout.Offsets[T, H]()

	owned := true
	defer func() {
		if owned {
			dropOne(&header)
		}
	}()

	w := newWriter[T](unsafe.Add(ptr, dataOff), length)
	defer w.abandon()
	if length > 0 && items != nil {
		for v := range items {
			w.write(v)
			if w.full() {
				break
			}
		}
	}

	// header now moves into the block or the InitError
	owned = false
	written := w.finish()
	if written != length {
		return HeaderSlice[T, H]{}, &InitError[T, H]{
			ptr:         ptr,
			header:      header,
			WrittenLen:  written,
			ExpectedLen: length,
		}
	}
	*(*uintptr)(ptr) = uintptr(length)
	*(*H)(unsafe.Add(ptr, headerOff)) = header
	return HeaderSlice[T, H]{ptr: ptr, len: length}, nil
}

// CloneFromInto constructs a header slice holding clones of src in the
// block at ptr. Elements implementing slicedst.Cloner are copied with
// Clone, others by assignment. The same memory contract as NewInto applies.
func CloneFromInto[T, H any](ptr unsafe.Pointer, header H, src []T) HeaderSlice[T, H] {
	s, err := NewInto(ptr, len(src), header, cloneSeq(src))
	if err != nil {
		h := err.DropInPlace()
		dropOne(&h)
		panic(fmt.Sprintf("headerslice: clone source yielded %d of %d elements", err.WrittenLen, err.ExpectedLen))
	}
	return s
}

// CopyFromInto constructs a header slice holding a bitwise copy of src in
// the block at ptr. T must not own resources: element types implementing
// slicedst.Dropper or slicedst.Cloner panic with a contract error. The same
// memory contract as NewInto applies.
func CopyFromInto[T, H any](ptr unsafe.Pointer, header H, src []T) HeaderSlice[T, H] {
	checkCopyable[T]()
	assertBlock[T, H](ptr, len(src))
	headerOff, dataOff := layout.Offsets[T, H]()

	if len(src) > 0 {
		copy(unsafe.Slice((*T)(unsafe.Add(ptr, dataOff)), len(src)), src)
	}
	*(*uintptr)(ptr) = uintptr(len(src))
	*(*H)(unsafe.Add(ptr, headerOff)) = header
	return HeaderSlice[T, H]{ptr: ptr, len: len(src)}
}

// NewStrInto constructs a header string holding the bytes of s in the block
// at ptr, which must be laid out as layout.For[byte, H](len(s)).
func NewStrInto[H any](ptr unsafe.Pointer, s string, header H) HeaderStr[H] {
	assertUTF8(s)
	b := CopyFromInto(ptr, header, unsafe.Slice(unsafe.StringData(s), len(s)))
	return HeaderStr[H]{ptr: b.ptr, len: b.len}
}

func cloneSeq[T any](src []T) iter.Seq[T] {
	if _, ok := any((*T)(nil)).(slicedst.Cloner[T]); !ok {
		return func(yield func(T) bool) {
			for _, v := range src {
				if !yield(v) {
					return
				}
			}
		}
	}
	return func(yield func(T) bool) {
		for i := range src {
			if !yield(any(&src[i]).(slicedst.Cloner[T]).Clone()) {
				return
			}
		}
	}
}

func checkCopyable[T any]() {
	p := any((*T)(nil))
	_, drops := p.(slicedst.Dropper)
	_, clones := p.(slicedst.Cloner[T])
	if drops || clones {
		panic(errors.ContractViolation(errors.PhaseInit, reflect.TypeFor[T]().String(),
			"bitwise copy of a type that owns resources; use CloneFrom"))
	}
}

func blockName[T, H any]() string {
	return fmt.Sprintf("HeaderSlice[%s, %s]", reflect.TypeFor[T](), reflect.TypeFor[H]())
}
