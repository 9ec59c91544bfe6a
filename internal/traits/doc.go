// Package traits answers questions about Go types that the allocators need
// and that the type system cannot express as constraints.
//
// This package is internal to the module.
package traits
