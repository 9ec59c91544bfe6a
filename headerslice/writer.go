package headerslice

import "unsafe"

// writer fills consecutive slots starting at start. Until finish is
// called it owns what it wrote: abandon, deferred by the caller, drops the
// written prefix on any exit that did not reach finish.
type writer[T any] struct {
	start unsafe.Pointer
	n     int
	max   int
	armed bool
}

func newWriter[T any](start unsafe.Pointer, max int) writer[T] {
	return writer[T]{start: start, max: max, armed: true}
}

func (w *writer[T]) write(v T) {
	if w.n >= w.max {
		panic("headerslice: write past end of block")
	}
	*(*T)(unsafe.Add(w.start, uintptr(w.n)*unsafe.Sizeof(v))) = v
	w.n++
}

func (w *writer[T]) full() bool { return w.n >= w.max }

func (w *writer[T]) written() []T {
	if w.n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(w.start), w.n)
}

// finish hands the written prefix to the caller.
func (w *writer[T]) finish() int {
	w.armed = false
	return w.n
}

func (w *writer[T]) abandon() {
	if !w.armed {
		return
	}
	w.armed = false
	dropSlice(w.written())
}
