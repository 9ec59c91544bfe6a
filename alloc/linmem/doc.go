// Package linmem allocates header slice blocks inside the linear memory of a
// wazero module instance.
//
// The host sees guest memory as a byte slice, so blocks written through
// headerslice.NewInto are directly readable by the guest at Offset(ptr).
// Only pointer-free blocks are accepted. Growing the guest memory may move
// the backing buffer; the allocator notices and refuses further requests
// until Reset is called.
package linmem
