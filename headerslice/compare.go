package headerslice

import (
	"cmp"
	"encoding/binary"
	"hash"
	"hash/maphash"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
)

// Equal reports whether a and b have equal headers and equal elements.
func Equal[T, H comparable](a, b HeaderSlice[T, H]) bool {
	return EqualFunc(a, b,
		func(x, y H) bool { return x == y },
		func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with caller supplied comparisons. The elements are
// only compared when the headers are equal.
func EqualFunc[T, H any](a, b HeaderSlice[T, H], headerEq func(H, H) bool, elemEq func(T, T) bool) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() == b.IsNil()
	}
	if !headerEq(*a.Header(), *b.Header()) {
		return false
	}
	return slices.EqualFunc(a.Slice(), b.Slice(), elemEq)
}

// Compare orders a and b by header, then lexicographically by elements.
// A nil handle sorts before any other.
func Compare[T, H cmp.Ordered](a, b HeaderSlice[T, H]) int {
	return CompareFunc(a, b, cmp.Compare[H], cmp.Compare[T])
}

// CompareFunc is Compare with caller supplied orderings.
func CompareFunc[T, H any](a, b HeaderSlice[T, H], headerCmp func(H, H) int, elemCmp func(T, T) int) int {
	switch {
	case a.IsNil() && b.IsNil():
		return 0
	case a.IsNil():
		return -1
	case b.IsNil():
		return 1
	}
	if c := headerCmp(*a.Header(), *b.Header()); c != 0 {
		return c
	}
	return slices.CompareFunc(a.Slice(), b.Slice(), elemCmp)
}

// EqualStr reports whether a and b have equal headers and equal text.
func EqualStr[H comparable](a, b HeaderStr[H]) bool {
	return EqualFunc(a.AsSlice(), b.AsSlice(),
		func(x, y H) bool { return x == y },
		func(x, y byte) bool { return x == y })
}

// CompareStr orders a and b by header, then bytewise by text.
func CompareStr[H cmp.Ordered](a, b HeaderStr[H]) int {
	return CompareStrFunc(a, b, cmp.Compare[H])
}

// CompareStrFunc is CompareStr with a caller supplied header ordering.
func CompareStrFunc[H any](a, b HeaderStr[H], headerCmp func(H, H) int) int {
	return CompareFunc(a.AsSlice(), b.AsSlice(), headerCmp, cmp.Compare[byte])
}

// Hash writes the header, the length and every element of s to h.
func Hash[T, H comparable](h *maphash.Hash, s HeaderSlice[T, H]) {
	if s.IsNil() {
		h.WriteByte(0)
		return
	}
	maphash.WriteComparable(h, *s.Header())
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(s.Len()))
	h.Write(n[:])
	for _, v := range s.Slice() {
		maphash.WriteComparable(h, v)
	}
}

// HashStr writes the header and the text of s to h.
func HashStr[H comparable](h *maphash.Hash, s HeaderStr[H]) {
	if s.IsNil() {
		h.WriteByte(0)
		return
	}
	maphash.WriteComparable(h, *s.Header())
	h.WriteString(s.String())
	h.WriteByte(0xff)
}

// HashWith hashes s with a 64-bit hash of the caller's choice, feeding the
// header through headerFn and each element through elemFn. A nil h uses
// xxhash.
func HashWith[T, H any](h hash.Hash64, s HeaderSlice[T, H], headerFn func(hash.Hash64, H), elemFn func(hash.Hash64, T)) uint64 {
	if h == nil {
		h = xxhash.New()
	}
	if s.IsNil() {
		return h.Sum64()
	}
	headerFn(h, *s.Header())
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(s.Len())))
	for _, v := range s.Slice() {
		elemFn(h, v)
	}
	return h.Sum64()
}

// HashStrWith hashes s with a 64-bit hash of the caller's choice. A nil h
// uses xxhash.
func HashStrWith[H any](h hash.Hash64, s HeaderStr[H], headerFn func(hash.Hash64, H)) uint64 {
	if h == nil {
		h = xxhash.New()
	}
	if s.IsNil() {
		return h.Sum64()
	}
	headerFn(h, *s.Header())
	h.Write(s.Bytes())
	h.Write([]byte{0xff})
	return h.Sum64()
}

// NewKeyedHash returns a SipHash-2-4 instance keyed with k0 and k1, for
// hashing values that come from untrusted input.
func NewKeyedHash(k0, k1 uint64) hash.Hash64 {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[:8], k0)
	binary.LittleEndian.PutUint64(key[8:], k1)
	return siphash.New(key[:])
}
