package linmem

import (
	"fmt"
	"unsafe"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/internal/mathx"
	"github.com/wippyai/slicedst/layout"
)

// Config holds configuration for an Allocator
type Config struct {
	// Base is the first guest offset the allocator may use.
	Base uint32

	// Size is the number of bytes from Base. 0 means up to the end of
	// the memory at creation time.
	Size uint32
}

// Allocator is a bump allocator over a window of guest memory.
type Allocator struct {
	mem   api.Memory
	view  []byte
	base  uint32
	size  uint32
	used  uint32
	count int
}

// New creates an allocator over mem; nil cfg means the whole memory.
func New(mem api.Memory, cfg *Config) (*Allocator, error) {
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseConfig, "nil memory")
	}
	var base, size uint32
	if cfg != nil {
		base, size = cfg.Base, cfg.Size
	}
	total := mem.Size()
	if base > total {
		return nil, errors.OutOfBounds(errors.PhaseConfig, int(base), int(total))
	}
	if size == 0 {
		size = total - base
	}
	if uint64(base)+uint64(size) > uint64(total) {
		return nil, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("window [%d, %d) exceeds memory size %d", base, uint64(base)+uint64(size), total))
	}
	a := &Allocator{mem: mem, base: base, size: size}
	if err := a.remap(); err != nil {
		return nil, err
	}
	return a, nil
}

// Alloc implements slicedst.Allocator.
func (a *Allocator) Alloc(req slicedst.Request) (unsafe.Pointer, error) {
	l := req.Layout()
	if req.Pointers {
		return nil, errors.Unsupported(errors.PhaseAlloc, "guest memory cannot hold Go pointers")
	}
	if a.moved() {
		err := errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
		err.Cause = fmt.Errorf("guest memory was grown; Reset before allocating")
		return nil, err
	}
	if l.Align == 0 {
		l.Align = 1
	}

	// guest offsets alone do not decide host alignment
	host := uintptr(unsafe.Pointer(unsafe.SliceData(a.view)))
	start, ok := mathx.AlignTo(host+uintptr(a.used), l.Align)
	if !ok {
		return nil, a.exhausted(l)
	}
	off := start - host
	end, ok := mathx.SafeAdd(off, l.Size)
	if !ok || end > uintptr(a.size) {
		return nil, a.exhausted(l)
	}
	a.used = uint32(end)
	a.count++
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(a.view)), off), nil
}

// Free implements slicedst.Allocator. Memory is reclaimed by Reset.
func (a *Allocator) Free(ptr unsafe.Pointer, l layout.Layout) {
	if ptr == nil {
		return
	}
	if a.count > 0 {
		a.count--
	}
}

// Offset translates a block pointer into the guest address the module
// sees. It reports false for pointers outside the window.
func (a *Allocator) Offset(ptr unsafe.Pointer) (uint32, bool) {
	if len(a.view) == 0 {
		return 0, false
	}
	host := uintptr(unsafe.Pointer(unsafe.SliceData(a.view)))
	p := uintptr(ptr)
	if p < host || p >= host+uintptr(len(a.view)) {
		return 0, false
	}
	return a.base + uint32(p-host), true
}

// Reset forgets every block and picks up the current guest buffer.
func (a *Allocator) Reset() error {
	a.used = 0
	a.count = 0
	return a.remap()
}

// Used returns the bytes consumed in the window, padding included.
func (a *Allocator) Used() uint32 { return a.used }

// Live returns the number of blocks not yet freed.
func (a *Allocator) Live() int { return a.count }

func (a *Allocator) remap() error {
	view, ok := a.mem.Read(a.base, a.size)
	if !ok {
		return errors.OutOfBounds(errors.PhaseConfig, int(a.base)+int(a.size), int(a.mem.Size()))
	}
	a.view = view
	return nil
}

func (a *Allocator) moved() bool {
	if a.size == 0 {
		return false
	}
	view, ok := a.mem.Read(a.base, 1)
	return !ok || unsafe.SliceData(view) != unsafe.SliceData(a.view)
}

func (a *Allocator) exhausted(l layout.Layout) error {
	err := errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
	err.Cause = fmt.Errorf("guest window of %d bytes has %d left", a.size, a.size-a.used)
	return err
}
