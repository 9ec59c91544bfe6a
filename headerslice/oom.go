package headerslice

import (
	_ "unsafe"

	"github.com/wippyai/slicedst/layout"
)

//go:linkname throw runtime.throw
func throw(s string)

// outOfMemory terminates the process the way the runtime does when the heap
// is exhausted. Tests replace it.
var outOfMemory = func(l layout.Layout) {
	throw("out of memory allocating header slice " + l.String())
}
