// Package alloc provides Allocator implementations for header slice blocks.
//
// # Allocators
//
//	GoHeap        - typed Go heap memory, the module-wide Default
//	Arena         - bump allocation from recycled chunks, pointer-free blocks only
//	Instrumented  - wraps any Allocator with Prometheus counters
//	linmem        - (sub-package) blocks inside a wazero linear memory
//
// GoHeap allocates blocks whose header or elements hold Go pointers as a
// struct built with reflect.StructOf, so the garbage collector sees exact
// pointer maps. Pointer-free blocks are carved from word slices.
//
// # Freeing
//
// Free never runs destructors; it only returns memory to the allocator.
// GoHeap leaves reclamation to the garbage collector, Arena can only roll
// back its most recent block and otherwise waits for Reset or Release.
//
// # Thread Safety
//
// GoHeap and Instrumented are safe for concurrent use. Arena is NOT
// thread-safe and should be used by a single goroutine.
package alloc
