package alloc

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/layout"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// DefaultHeapLimit caps a single GoHeap block: 128TB on 64-bit targets,
// 2GB on 32-bit ones.
const DefaultHeapLimit = datasize.ByteSize(uintptr(1) << (31 + 16*(^uintptr(0)>>63)))

// Default is the allocator behind the convenience constructors.
var Default = NewGoHeap(nil)

// GoHeapConfig holds configuration for a GoHeap
type GoHeapConfig struct {
	// Limit is the largest block the allocator will attempt.
	// 0 means DefaultHeapLimit.
	Limit datasize.ByteSize
}

// GoHeap allocates blocks on the Go heap.
type GoHeap struct {
	limit    uintptr
	allocs   atomic.Int64
	frees    atomic.Int64
	failures atomic.Int64
	bytes    atomic.Int64
}

// HeapStats is a snapshot of GoHeap counters.
type HeapStats struct {
	Allocs   int64
	Frees    int64
	Failures int64
	Bytes    int64
}

// NewGoHeap creates a heap allocator; nil cfg means defaults.
func NewGoHeap(cfg *GoHeapConfig) *GoHeap {
	limit := DefaultHeapLimit
	if cfg != nil && cfg.Limit > 0 {
		limit = cfg.Limit
	}
	return &GoHeap{limit: uintptr(limit)}
}

// Alloc implements slicedst.Allocator.
func (h *GoHeap) Alloc(req slicedst.Request) (ptr unsafe.Pointer, err error) {
	l := req.Layout()
	if l.Size > h.limit {
		return nil, h.fail(l, fmt.Errorf("block exceeds heap limit %s", datasize.ByteSize(h.limit).HR()))
	}

	// The runtime panics on sizes it cannot serve; report them like any
	// other exhausted allocator.
	defer func() {
		if r := recover(); r != nil {
			ptr, err = nil, h.fail(l, fmt.Errorf("runtime: %v", r))
		}
	}()

	if req.Pointers {
		typ := req.Type()
		if typ == nil {
			return nil, h.fail(l, fmt.Errorf("pointerful request carries no type"))
		}
		ptr = reflect.New(typ).UnsafePointer()
	} else {
		ptr = wordBlock(l)
	}

	h.allocs.Inc()
	h.bytes.Add(int64(l.Size))
	return ptr, nil
}

// Free implements slicedst.Allocator. It only updates the counters: the
// block is not reclaimed or poisoned and stays valid while anything still
// references it. The garbage collector reclaims it once it is unreachable.
func (h *GoHeap) Free(ptr unsafe.Pointer, l layout.Layout) {
	if ptr == nil {
		return
	}
	h.frees.Inc()
	h.bytes.Sub(int64(l.Size))
}

// Stats returns a snapshot of the allocator counters.
func (h *GoHeap) Stats() HeapStats {
	return HeapStats{
		Allocs:   h.allocs.Load(),
		Frees:    h.frees.Load(),
		Failures: h.failures.Load(),
		Bytes:    h.bytes.Load(),
	}
}

func (h *GoHeap) fail(l layout.Layout, cause error) error {
	h.failures.Inc()
	Logger().Debug("heap allocation failed",
		zap.Uintptr("size", l.Size),
		zap.Uintptr("align", l.Align),
		zap.Error(cause),
	)
	err := errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
	err.Cause = cause
	return err
}

// wordBlock carves a pointer-free block out of a word slice. One spare byte
// past Size keeps pointers to a trailing empty payload inside the object.
func wordBlock(l layout.Layout) unsafe.Pointer {
	words := l.Size/wordSize + 1
	if l.Align > wordSize {
		words += l.Align / wordSize
	}
	buf := make([]uintptr, words)
	base := unsafe.Pointer(unsafe.SliceData(buf))
	if l.Align <= wordSize {
		return base
	}
	addr := uintptr(base)
	return unsafe.Add(base, alignUp(addr, l.Align)-addr)
}

func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}
