//go:build !slicedst_debug

package headerslice

import "unsafe"

const debug = false

func assertBlock[T, H any](unsafe.Pointer, int) {}

func assertUTF8(string) {}

func assertErased[T, H any](unsafe.Pointer) {}
