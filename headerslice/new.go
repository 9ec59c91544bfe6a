package headerslice

import (
	"iter"
	"reflect"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/alloc"
	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/layout"
)

// ErrorKind tells the TryNewError variants apart.
type ErrorKind uint8

const (
	// LayoutTooLarge means no block can hold the requested length.
	LayoutTooLarge ErrorKind = iota + 1
	// AllocError means the allocator could not provide the block.
	AllocError
	// NotEnoughItems means the source yielded fewer items than requested.
	NotEnoughItems
)

func (k ErrorKind) String() string {
	switch k {
	case LayoutTooLarge:
		return "layout too large"
	case AllocError:
		return "allocation failed"
	case NotEnoughItems:
		return "not enough items"
	default:
		return "unknown"
	}
}

// Targets for errors.Is on errors returned by the Try functions.
var (
	ErrLayoutTooLarge = &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindOverflow}
	ErrAllocFailed    = &errors.Error{Phase: errors.PhaseAlloc, Kind: errors.KindAllocation}
	ErrNotEnoughItems = &errors.Error{Phase: errors.PhaseInit, Kind: errors.KindNotEnoughItems}
)

// TryNewError is returned by the Try functions. Every variant gives the
// header back; for NotEnoughItems the written elements were already
// dropped.
type TryNewError[H any] struct {
	Kind   ErrorKind
	Header H
	// Layout is the block that could not be allocated. Only set for
	// AllocError.
	Layout layout.Layout
	Cause  *errors.Error
}

// Error implements the error interface.
func (e *TryNewError[H]) Error() string {
	return "headerslice: " + e.Kind.String() + ": " + e.Cause.Error()
}

// Unwrap returns the structured cause.
func (e *TryNewError[H]) Unwrap() error { return e.Cause }

func (e *TryNewError[H]) abort() {
	switch e.Kind {
	case AllocError:
		outOfMemory(e.Layout)
		panic(e)
	case LayoutTooLarge:
		panic("length too large to allocate")
	default:
		panic("not enough items provided in iterator")
	}
}

// RequestFor describes the block for n values of T behind an H, for use
// with any slicedst.Allocator and the Into constructors.
func RequestFor[T, H any](n int) (slicedst.Request, error) {
	blk, err := layout.For[T, H](n)
	if err != nil {
		return slicedst.Request{}, err
	}
	return slicedst.NewRequest(blk, reflect.TypeFor[H](), reflect.TypeFor[T]()), nil
}

// allocate obtains a block from alloc.Default.
func allocate[T, H any](header H, n int) (unsafe.Pointer, slicedst.Request, *TryNewError[H]) {
	req, err := RequestFor[T, H](n)
	if err != nil {
		if ce := Logger().Check(zap.DebugLevel, "header slice layout overflow"); ce != nil {
			ce.Write(zap.Int("len", n), zap.String("type", blockName[T, H]()), zap.Error(err))
		}
		return nil, req, &TryNewError[H]{
			Kind:   LayoutTooLarge,
			Header: header,
			Cause:  errors.Wrap(errors.PhaseLayout, errors.KindOverflow, err, "header slice layout"),
		}
	}
	ptr, err := alloc.Default.Alloc(req)
	if err != nil {
		l := req.Layout()
		if ce := Logger().Check(zap.DebugLevel, "header slice allocation failed"); ce != nil {
			ce.Write(zap.Uintptr("size", l.Size), zap.Uintptr("align", l.Align), zap.Error(err))
		}
		return nil, req, &TryNewError[H]{
			Kind:   AllocError,
			Header: header,
			Layout: l,
			Cause:  errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "header slice block"),
		}
	}
	return ptr, req, nil
}

// TryNew allocates a header slice of n elements taken from items.
// A sequence yielding fewer than n values fails with NotEnoughItems;
// values past n are never requested.
func TryNew[T, H any](header H, n int, items iter.Seq[T]) (HeaderSlice[T, H], error) {
	ptr, req, terr := allocate[T](header, n)
	if terr != nil {
		return HeaderSlice[T, H]{}, terr
	}

	built := false
	defer func() {
		if !built {
			alloc.Default.Free(ptr, req.Layout())
		}
	}()

	s, ierr := NewInto(ptr, n, header, items)
	if ierr != nil {
		if ce := Logger().Check(zap.DebugLevel, "header slice source ran dry"); ce != nil {
			ce.Write(zap.Int("written", ierr.WrittenLen), zap.Int("expected", ierr.ExpectedLen))
		}
		cause := ierr.Unwrap().(*errors.Error)
		return HeaderSlice[T, H]{}, &TryNewError[H]{
			Kind:   NotEnoughItems,
			Header: ierr.DropInPlace(),
			Cause:  cause,
		}
	}
	built = true
	return s, nil
}

// TryCloneFrom allocates a header slice holding clones of src.
func TryCloneFrom[T, H any](header H, src []T) (HeaderSlice[T, H], error) {
	ptr, req, terr := allocate[T](header, len(src))
	if terr != nil {
		return HeaderSlice[T, H]{}, terr
	}
	built := false
	defer func() {
		if !built {
			alloc.Default.Free(ptr, req.Layout())
		}
	}()
	s := CloneFromInto(ptr, header, src)
	built = true
	return s, nil
}

// TryCopyFrom allocates a header slice holding a bitwise copy of src. It
// panics like CopyFromInto when T owns resources.
func TryCopyFrom[T, H any](header H, src []T) (HeaderSlice[T, H], error) {
	checkCopyable[T]()
	ptr, _, terr := allocate[T](header, len(src))
	if terr != nil {
		return HeaderSlice[T, H]{}, terr
	}
	return CopyFromInto(ptr, header, src), nil
}

// TryNewStr allocates a header string holding a copy of s.
func TryNewStr[H any](header H, s string) (HeaderStr[H], error) {
	ptr, _, terr := allocate[byte](header, len(s))
	if terr != nil {
		return HeaderStr[H]{}, terr
	}
	return NewStrInto(ptr, s, header), nil
}

// New is TryNew that panics on failure. Allocator exhaustion is fatal.
func New[T, H any](header H, n int, items iter.Seq[T]) HeaderSlice[T, H] {
	s, err := TryNew(header, n, items)
	if err != nil {
		err.(*TryNewError[H]).abort()
	}
	return s
}

// CloneFrom is TryCloneFrom that panics on failure. Allocator exhaustion
// is fatal.
func CloneFrom[T, H any](header H, src []T) HeaderSlice[T, H] {
	s, err := TryCloneFrom(header, src)
	if err != nil {
		err.(*TryNewError[H]).abort()
	}
	return s
}

// CopyFrom is TryCopyFrom that panics on failure. Allocator exhaustion is
// fatal.
func CopyFrom[T, H any](header H, src []T) HeaderSlice[T, H] {
	s, err := TryCopyFrom(header, src)
	if err != nil {
		err.(*TryNewError[H]).abort()
	}
	return s
}

// NewStr is TryNewStr that panics on failure. Allocator exhaustion is
// fatal.
func NewStr[H any](header H, s string) HeaderStr[H] {
	hs, err := TryNewStr(header, s)
	if err != nil {
		err.(*TryNewError[H]).abort()
	}
	return hs
}
