package traits

import (
	"reflect"
	"sync"
)

var pointerCache sync.Map // reflect.Type -> bool

// HasPointers reports whether values of t hold anything the garbage
// collector has to trace. Such values may only live in typed Go memory.
func HasPointers(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if v, ok := pointerCache.Load(t); ok {
		return v.(bool)
	}
	has := hasPointers(t)
	pointerCache.Store(t, has)
	return has
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointer, UnsafePointer, String, Slice, Map, Chan, Func, Interface
		return true
	}
}
