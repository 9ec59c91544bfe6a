//go:build slicedst_debug

package headerslice

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/layout"
)

const debug = true

func assertBlock[T, H any](ptr unsafe.Pointer, n int) {
	blk, err := layout.For[T, H](n)
	if err != nil {
		panic(errors.New(errors.PhaseInit, errors.KindContract).
			GoType(blockName[T, H]()).
			Cause(err).
			Detail("no block can hold %d elements", n).
			Build())
	}
	if ptr == nil {
		panic(errors.ContractViolation(errors.PhaseInit, blockName[T, H](), "nil block"))
	}
	if uintptr(ptr)%blk.Align != 0 {
		panic(errors.ContractViolation(errors.PhaseInit, blockName[T, H](),
			fmt.Sprintf("block %p is not aligned to %d", ptr, blk.Align)))
	}
}

func assertUTF8(s string) {
	if !utf8.ValidString(s) {
		panic(errors.InvalidUTF8(errors.PhaseInit, []byte(s)))
	}
}

func assertErased[T, H any](ptr unsafe.Pointer) {
	if uintptr(ptr)%layout.Word.Align != 0 {
		panic(errors.ContractViolation(errors.PhaseErase, blockName[T, H](),
			fmt.Sprintf("erased pointer %p is not word aligned", ptr)))
	}
	if n := *(*uintptr)(ptr); n > uintptr(^uint(0)>>1) {
		panic(errors.ContractViolation(errors.PhaseErase, blockName[T, H](),
			fmt.Sprintf("stored length %d is not a valid length", n)))
	}
}
