package traits

import (
	"reflect"
	"testing"
	"unsafe"
)

type flat struct {
	a uint32
	b [4]float64
	c struct{ d int8 }
}

type nested struct {
	flat
	s []byte
}

func TestHasPointers(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"nil", nil, false},
		{"int", reflect.TypeFor[int](), false},
		{"uintptr", reflect.TypeFor[uintptr](), false},
		{"complex", reflect.TypeFor[complex128](), false},
		{"empty struct", reflect.TypeFor[struct{}](), false},
		{"flat struct", reflect.TypeFor[flat](), false},
		{"zero length pointer array", reflect.TypeFor[[0]*int](), false},
		{"string", reflect.TypeFor[string](), true},
		{"pointer", reflect.TypeFor[*int](), true},
		{"unsafe pointer", reflect.TypeFor[unsafe.Pointer](), true},
		{"slice", reflect.TypeFor[[]int](), true},
		{"map", reflect.TypeFor[map[int]int](), true},
		{"chan", reflect.TypeFor[chan int](), true},
		{"func", reflect.TypeFor[func()](), true},
		{"interface", reflect.TypeFor[any](), true},
		{"nested", reflect.TypeFor[nested](), true},
		{"array of strings", reflect.TypeFor[[2]string](), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPointers(tt.typ); got != tt.want {
				t.Errorf("HasPointers(%v) = %v, want %v", tt.typ, got, tt.want)
			}
			// second lookup is served from the cache
			if got := HasPointers(tt.typ); got != tt.want {
				t.Errorf("cached HasPointers(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}
