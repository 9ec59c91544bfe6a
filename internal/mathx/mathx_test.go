package mathx

import (
	"math"
	"testing"
)

func TestSafeMul(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uintptr
		want   uintptr
		wantOK bool
	}{
		{"zero * zero", 0, 0, 0, true},
		{"zero * max", 0, math.MaxUint, 0, true},
		{"max * zero", math.MaxUint, 0, 0, true},
		{"one * one", 1, 1, 1, true},
		{"small * small", 100, 200, 20000, true},
		{"max * one", math.MaxUint, 1, math.MaxUint, true},
		{"half * two", math.MaxUint / 2, 2, (math.MaxUint / 2) * 2, true},
		{"overflow", math.MaxUint, 2, 0, false},
		{"overflow symmetric", 2, math.MaxUint, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMul(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeMul(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeMul(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSafeAdd(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uintptr
		want   uintptr
		wantOK bool
	}{
		{"zero", 0, 0, 0, true},
		{"small", 3, 4, 7, true},
		{"max + zero", math.MaxUint, 0, math.MaxUint, true},
		{"max + one", math.MaxUint, 1, 0, false},
		{"one + max", 1, math.MaxUint, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeAdd(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Errorf("SafeAdd(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SafeAdd(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		name   string
		offset uintptr
		align  uintptr
		want   uintptr
		wantOK bool
	}{
		{"align 0", 5, 0, 5, true},
		{"align 1", 5, 1, 5, true},
		{"already aligned", 8, 8, 8, true},
		{"round up", 9, 8, 16, true},
		{"zero offset", 0, 16, 0, true},
		{"word after byte", 1, 8, 8, true},
		{"overflow", math.MaxUint - 2, 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AlignTo(tt.offset, tt.align)
			if ok != tt.wantOK {
				t.Fatalf("AlignTo(%d, %d) ok = %v, want %v", tt.offset, tt.align, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
			}
		})
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, x := range []uintptr{1, 2, 4, 8, 4096, 1 << 20} {
		if !IsPowerOfTwo(x) {
			t.Errorf("IsPowerOfTwo(%d) = false", x)
		}
	}
	for _, x := range []uintptr{0, 3, 6, 12, 4095} {
		if IsPowerOfTwo(x) {
			t.Errorf("IsPowerOfTwo(%d) = true", x)
		}
	}
}
