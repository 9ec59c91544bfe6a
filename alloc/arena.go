package alloc

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"go.uber.org/zap"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/layout"
)

const (
	DefaultChunkSize     = 64 * datasize.KB
	DefaultArenaCapacity = 64 * datasize.MB
)

// ArenaConfig holds configuration for an Arena
type ArenaConfig struct {
	// ChunkSize is the unit the arena grows by. Larger blocks get a
	// dedicated chunk. 0 means DefaultChunkSize.
	ChunkSize datasize.ByteSize

	// Capacity bounds the total bytes of all chunks. 0 means
	// DefaultArenaCapacity.
	Capacity datasize.ByteSize
}

// chunks of the default size are recycled across arenas
var chunkPool = sync.Pool{
	New: func() any {
		buf := make([]uintptr, uintptr(DefaultChunkSize)/wordSize)
		return &buf
	},
}

type chunk struct {
	buf  *[]uintptr
	base uintptr
	size uintptr
	used uintptr
}

// take carves l out of the chunk and reports the fill level before it, so
// the caller can account padding and roll the block back.
func (c *chunk) take(l layout.Layout) (unsafe.Pointer, uintptr, bool) {
	start := alignUp(c.base+c.used, l.Align) - c.base
	if start > c.size || l.Size > c.size-start {
		return nil, 0, false
	}
	before := c.used
	c.used = start + l.Size
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(*c.buf)), start), before, true
}

// Arena is a bump allocator for pointer-free blocks. Every pointer it handed
// out becomes invalid on Reset and Release.
type Arena struct {
	chunks    []*chunk
	chunkSize uintptr
	capacity  uintptr
	reserved  uintptr
	allocated uintptr
	peak      uintptr

	// most recent block, the only one Free can give back
	last      unsafe.Pointer
	lastStart uintptr
	lastSize  uintptr
}

// NewArena creates an empty arena; nil cfg means defaults.
func NewArena(cfg *ArenaConfig) (*Arena, error) {
	chunkSize, capacity := DefaultChunkSize, DefaultArenaCapacity
	if cfg != nil {
		if cfg.ChunkSize > 0 {
			chunkSize = cfg.ChunkSize
		}
		if cfg.Capacity > 0 {
			capacity = cfg.Capacity
		}
	}
	if uint64(chunkSize)%uint64(wordSize) != 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("chunk size %s is not a multiple of %d", chunkSize.HR(), wordSize))
	}
	if capacity < chunkSize {
		return nil, errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("capacity %s is smaller than chunk size %s", capacity.HR(), chunkSize.HR()))
	}
	return &Arena{
		chunkSize: uintptr(chunkSize),
		capacity:  uintptr(capacity),
	}, nil
}

// Alloc implements slicedst.Allocator.
func (a *Arena) Alloc(req slicedst.Request) (unsafe.Pointer, error) {
	l := req.Layout()
	if req.Pointers {
		err := errors.Unsupported(errors.PhaseAlloc, "arena blocks cannot hold Go pointers")
		err.GoType = req.Name()
		return nil, err
	}
	if l.Align == 0 {
		l.Align = 1
	}

	if n := len(a.chunks); n > 0 {
		if ptr, before, ok := a.chunks[n-1].take(l); ok {
			return a.record(ptr, before), nil
		}
	}

	c, err := a.grow(l)
	if err != nil {
		Logger().Debug("arena allocation failed",
			zap.Uintptr("size", l.Size),
			zap.Uintptr("align", l.Align),
			zap.Uintptr("reserved", a.reserved),
			zap.Uintptr("capacity", a.capacity),
		)
		return nil, err
	}
	ptr, before, _ := c.take(l)
	return a.record(ptr, before), nil
}

// Free implements slicedst.Allocator. Only the most recent block is given
// back; anything else stays reserved until Reset.
func (a *Arena) Free(ptr unsafe.Pointer, l layout.Layout) {
	if ptr == nil || ptr != a.last {
		return
	}
	c := a.chunks[len(a.chunks)-1]
	c.used = a.lastStart
	a.allocated -= a.lastSize
	a.last = nil
}

// Reset forgets every block while keeping the chunks.
func (a *Arena) Reset() {
	for _, c := range a.chunks {
		c.used = 0
	}
	a.allocated = 0
	a.last = nil
}

// Release returns the chunks. The arena can be used again afterwards and
// starts from scratch.
func (a *Arena) Release() {
	for _, c := range a.chunks {
		if c.size == uintptr(DefaultChunkSize) {
			clear(*c.buf)
			chunkPool.Put(c.buf)
		}
	}
	a.chunks = nil
	a.reserved = 0
	a.allocated = 0
	a.last = nil
}

// Len returns the number of bytes handed out, padding included.
func (a *Arena) Len() int { return int(a.allocated) }

// Cap returns the bytes reserved in chunks.
func (a *Arena) Cap() int { return int(a.reserved) }

// Peak returns the high-water mark of Len. Reset does not lower it.
func (a *Arena) Peak() int { return int(a.peak) }

func (a *Arena) record(ptr unsafe.Pointer, before uintptr) unsafe.Pointer {
	c := a.chunks[len(a.chunks)-1]
	consumed := c.used - before
	a.allocated += consumed
	if a.allocated > a.peak {
		a.peak = a.allocated
	}
	a.last, a.lastStart, a.lastSize = ptr, before, consumed
	return ptr
}

func (a *Arena) grow(l layout.Layout) (*chunk, error) {
	size := a.chunkSize
	if need := alignUp(l.Size+l.Align, wordSize); need > size {
		size = need
	}
	if size > a.capacity-a.reserved {
		err := errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
		err.Cause = fmt.Errorf("arena capacity %s exhausted", datasize.ByteSize(a.capacity).HR())
		return nil, err
	}

	var buf *[]uintptr
	if size == uintptr(DefaultChunkSize) {
		buf = chunkPool.Get().(*[]uintptr)
	} else {
		b := make([]uintptr, size/wordSize)
		buf = &b
	}
	c := &chunk{
		buf:  buf,
		base: uintptr(unsafe.Pointer(unsafe.SliceData(*buf))),
		size: size,
	}
	a.chunks = append(a.chunks, c)
	a.reserved += size
	return c, nil
}
