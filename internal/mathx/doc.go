// Package mathx provides overflow-checked address arithmetic.
//
// All helpers work on uintptr and report overflow through a boolean instead
// of wrapping, so layout code can surface it as a recoverable error.
//
// This package is internal to the module.
package mathx
