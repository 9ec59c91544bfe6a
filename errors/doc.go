// Package errors provides structured error types for the slicedst module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the Go type involved, a human-readable detail, the
// offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLayout, errors.KindOverflow).
//		GoType("[]uint64").
//		Value(n).
//		Detail("array of %d elements overflows the address space", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AllocationFailed(errors.PhaseAlloc, 4096, 8)
//	err := errors.NotEnoughItems(2, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
