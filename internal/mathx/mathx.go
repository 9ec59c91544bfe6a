package mathx

import "math"

// MaxSize is the largest object size the layout rules accept: sizes must fit
// a non-negative int so they can back a Go slice.
const MaxSize = uintptr(math.MaxInt)

func SafeMul(a, b uintptr) (uintptr, bool) {
	if b != 0 && a > math.MaxUint/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b uintptr) (uintptr, bool) {
	if a > math.MaxUint-b {
		return 0, false
	}
	return a + b, true
}

// AlignTo rounds offset up to align. align must be a power of two; 0 leaves
// offset untouched. The boolean is false when rounding overflows.
func AlignTo(offset, align uintptr) (uintptr, bool) {
	if align == 0 {
		return offset, true
	}
	up, ok := SafeAdd(offset, align-1)
	if !ok {
		return 0, false
	}
	return up &^ (align - 1), true
}

func IsPowerOfTwo(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}
