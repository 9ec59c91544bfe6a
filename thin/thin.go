package thin

import "unsafe"

// Erasable converts F to and from a single pointer.
//
// Unerase(Erase(f)) must yield a value equal to f. Unerase is only valid on
// pointers obtained from Erase of a live value.
type Erasable[F any] interface {
	Erase(F) unsafe.Pointer
	Unerase(unsafe.Pointer) F
}

// Ptr is an erased F. The zero value is nil.
type Ptr[F any, E Erasable[F]] struct {
	p unsafe.Pointer
}

// New erases f.
func New[F any, E Erasable[F]](f F) Ptr[F, E] {
	var e E
	return Ptr[F, E]{p: e.Erase(f)}
}

// FromAddr wraps a pointer previously returned by Addr. Passing any other
// pointer makes Get undefined.
func FromAddr[F any, E Erasable[F]](p unsafe.Pointer) Ptr[F, E] {
	return Ptr[F, E]{p: p}
}

// Get rebuilds the fat handle.
func (t Ptr[F, E]) Get() F {
	var e E
	return e.Unerase(t.p)
}

// Addr returns the erased word.
func (t Ptr[F, E]) Addr() unsafe.Pointer { return t.p }

// IsNil reports whether t holds nothing.
func (t Ptr[F, E]) IsNil() bool { return t.p == nil }

// Equal reports whether both refer to the same allocation.
func (t Ptr[F, E]) Equal(o Ptr[F, E]) bool { return t.p == o.p }
