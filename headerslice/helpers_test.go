package headerslice

import (
	"iter"
	"testing"
	"unsafe"

	"github.com/wippyai/slicedst/alloc"
)

// tracked records its id in a shared log when dropped.
type tracked struct {
	id  int
	log *[]int
}

func (t *tracked) Drop() { *t.log = append(*t.log, t.id) }

// trackedHeader records drops of the header with id -1.
type trackedHeader struct {
	log *[]int
}

func (h *trackedHeader) Drop() { *h.log = append(*h.log, -1) }

type cloned struct {
	v      int
	copies *int
}

func (c *cloned) Clone() cloned {
	*c.copies++
	return cloned{v: c.v, copies: c.copies}
}

func trackedItems(log *[]int, n int) []tracked {
	items := make([]tracked, n)
	for i := range items {
		items[i] = tracked{id: i, log: log}
	}
	return items
}

// counted yields items and counts how many were pulled.
func counted[T any](items []T, pulled *int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			*pulled++
			if !yield(v) {
				return
			}
		}
	}
}

func block[T, H any](t *testing.T, n int) unsafe.Pointer {
	t.Helper()
	req, err := RequestFor[T, H](n)
	if err != nil {
		t.Fatalf("RequestFor(%d): %v", n, err)
	}
	ptr, err := alloc.NewGoHeap(nil).Alloc(req)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	return ptr
}

func expectPanic(t *testing.T, fn func()) any {
	t.Helper()
	var r any
	func() {
		defer func() { r = recover() }()
		fn()
	}()
	if r == nil {
		t.Fatal("expected panic")
	}
	return r
}
