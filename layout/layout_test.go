package layout

import (
	stderrors "errors"
	"math"
	"testing"
	"unsafe"

	"github.com/wippyai/slicedst/errors"
)

var errOverflow = &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindOverflow}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    uintptr
		align   uintptr
		wantErr errors.Kind
	}{
		{"zero size", 0, 1, ""},
		{"word", 8, 8, ""},
		{"odd size", 3, 4, ""},
		{"align zero", 8, 0, errors.KindInvalidInput},
		{"align three", 8, 3, errors.KindInvalidInput},
		{"largest", math.MaxInt, 1, ""},
		{"largest rounded", math.MaxInt - 7, 8, ""},
		{"too large when rounded", math.MaxInt - 6, 8, errors.KindOverflow},
		{"too large", math.MaxInt + 1, 1, errors.KindOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.size, tt.align)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("New(%d, %d) failed: %v", tt.size, tt.align, err)
				}
				if l.Size != tt.size || l.Align != tt.align {
					t.Errorf("New(%d, %d) = %v", tt.size, tt.align, l)
				}
				return
			}
			var se *errors.Error
			if !stderrors.As(err, &se) || se.Kind != tt.wantErr {
				t.Errorf("New(%d, %d) err = %v, want kind %s", tt.size, tt.align, err, tt.wantErr)
			}
		})
	}
}

func TestOf(t *testing.T) {
	type pair struct {
		a uint8
		b uint32
	}
	tests := []struct {
		name string
		got  Layout
		want Layout
	}{
		{"uint8", Of[uint8](), Layout{1, 1}},
		{"uint16", Of[uint16](), Layout{2, 2}},
		{"uint32", Of[uint32](), Layout{4, 4}},
		{"uint64", Of[uint64](), Layout{8, unsafe.Alignof(uint64(0))}},
		{"empty struct", Of[struct{}](), Layout{0, 1}},
		{"pair", Of[pair](), Layout{8, 4}},
		{"word", Word, Layout{unsafe.Sizeof(uintptr(0)), unsafe.Alignof(uintptr(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestArray(t *testing.T) {
	l, err := Array[uint32](5)
	if err != nil {
		t.Fatalf("Array failed: %v", err)
	}
	if l.Size != 20 || l.Align != 4 {
		t.Errorf("Array[uint32](5) = %v", l)
	}

	if _, err := Array[uint64](math.MaxInt); !stderrors.Is(err, errOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
	if _, err := Array[uint64](-1); err == nil {
		t.Error("expected error for negative count")
	}

	zst, err := Array[struct{}](math.MaxInt)
	if err != nil {
		t.Fatalf("zero sized elements never overflow: %v", err)
	}
	if zst.Size != 0 {
		t.Errorf("zero sized array size = %d", zst.Size)
	}
}

func TestExtend(t *testing.T) {
	tests := []struct {
		name       string
		base, next Layout
		want       Layout
		wantOffset uintptr
	}{
		{"byte then word", Layout{1, 1}, Layout{8, 8}, Layout{16, 8}, 8},
		{"word then byte", Layout{8, 8}, Layout{1, 1}, Layout{9, 8}, 8},
		{"empty then u32", Layout{0, 1}, Layout{4, 4}, Layout{4, 4}, 0},
		{"u16 then u32", Layout{2, 2}, Layout{4, 4}, Layout{8, 4}, 4},
		{"zero sized tail", Layout{3, 1}, Layout{0, 4}, Layout{4, 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off, err := tt.base.Extend(tt.next)
			if err != nil {
				t.Fatalf("Extend failed: %v", err)
			}
			if got != tt.want || off != tt.wantOffset {
				t.Errorf("Extend = %v @%d, want %v @%d", got, off, tt.want, tt.wantOffset)
			}
		})
	}

	big := Layout{Size: math.MaxInt - 3, Align: 1}
	if _, _, err := big.Extend(Layout{Size: 8, Align: 8}); !stderrors.Is(err, errOverflow) {
		t.Errorf("expected overflow, got %v", err)
	}
}

func TestPadToAlign(t *testing.T) {
	tests := []struct {
		in, want Layout
	}{
		{Layout{0, 1}, Layout{0, 1}},
		{Layout{9, 8}, Layout{16, 8}},
		{Layout{16, 8}, Layout{16, 8}},
		{Layout{5, 4}, Layout{8, 4}},
	}
	for _, tt := range tests {
		if got := tt.in.PadToAlign(); got != tt.want {
			t.Errorf("%v.PadToAlign() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPaddingNeededFor(t *testing.T) {
	l := Layout{Size: 9, Align: 1}
	if got := l.PaddingNeededFor(8); got != 7 {
		t.Errorf("PaddingNeededFor(8) = %d, want 7", got)
	}
	if got := l.PaddingNeededFor(1); got != 0 {
		t.Errorf("PaddingNeededFor(1) = %d, want 0", got)
	}
}

func TestString(t *testing.T) {
	if got := (Layout{Size: 24, Align: 8}).String(); got != "{size: 24, align: 8}" {
		t.Errorf("String() = %q", got)
	}
}
