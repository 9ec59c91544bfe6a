package linmem

import (
	"context"
	stderrors "errors"
	"reflect"
	"testing"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/slicedst"
	"github.com/wippyai/slicedst/errors"
	"github.com/wippyai/slicedst/layout"
)

// one page of memory, exported as "memory"
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
}

func newMemory(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryModule)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		t.Fatal("memory not exported")
	}
	return mem
}

func request[T, H any](t *testing.T, n int) slicedst.Request {
	t.Helper()
	blk, err := layout.For[T, H](n)
	if err != nil {
		t.Fatal(err)
	}
	return slicedst.NewRequest(blk, reflect.TypeFor[H](), reflect.TypeFor[T]())
}

func TestNew_Config(t *testing.T) {
	mem := newMemory(t)
	tests := []struct {
		name     string
		cfg      *Config
		wantErr  bool
		wantKind errors.Kind
	}{
		{"whole memory", nil, false, ""},
		{"window", &Config{Base: 1024, Size: 4096}, false, ""},
		{"base past end", &Config{Base: 70000}, true, errors.KindOutOfBounds},
		{"window past end", &Config{Base: 60000, Size: 8192}, true, errors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(mem, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var se *errors.Error
				if !stderrors.As(err, &se) || se.Kind != tt.wantKind {
					t.Errorf("kind = %v, want %s", err, tt.wantKind)
				}
			}
		})
	}

	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for nil memory")
	}
}

func TestAllocator_VisibleToGuest(t *testing.T) {
	mem := newMemory(t)
	a, err := New(mem, &Config{Base: 256, Size: 1024})
	if err != nil {
		t.Fatal(err)
	}

	req := request[uint32, uint32](t, 3)
	ptr, err := a.Alloc(req)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	off, ok := a.Offset(ptr)
	if !ok {
		t.Fatal("pointer not inside window")
	}
	if off < 256 || off >= 256+1024 {
		t.Errorf("offset %d outside window", off)
	}

	*(*uint32)(unsafe.Add(ptr, req.Block.HeaderOffset)) = 0xCAFE
	got, ok := mem.ReadUint32Le(off + uint32(req.Block.HeaderOffset))
	if !ok || got != 0xCAFE {
		t.Errorf("guest read %#x, %v", got, ok)
	}
	if a.Used() == 0 || a.Live() != 1 {
		t.Errorf("Used=%d Live=%d", a.Used(), a.Live())
	}
}

func TestAllocator_Exhaustion(t *testing.T) {
	a, err := New(newMemory(t), &Config{Size: 64})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Alloc(request[uint64, uint64](t, 4)); err != nil {
		t.Fatalf("first block failed: %v", err)
	}
	_, err = a.Alloc(request[uint64, uint64](t, 4))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAlloc, Kind: errors.KindAllocation}) {
		t.Fatalf("expected allocation error, got %v", err)
	}

	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Alloc(request[uint64, uint64](t, 4)); err != nil {
		t.Errorf("after Reset: %v", err)
	}
}

func TestAllocator_RejectsPointers(t *testing.T) {
	a, err := New(newMemory(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Alloc(request[*int, uint8](t, 1))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseAlloc, Kind: errors.KindUnsupported}) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestAllocator_Offset(t *testing.T) {
	a, err := New(newMemory(t), &Config{Base: 128, Size: 128})
	if err != nil {
		t.Fatal(err)
	}
	var local uint64
	if _, ok := a.Offset(unsafe.Pointer(&local)); ok {
		t.Error("host pointer reported inside guest window")
	}
	ptr, err := a.Alloc(request[byte, byte](t, 0))
	if err != nil {
		t.Fatal(err)
	}
	if off, ok := a.Offset(ptr); !ok || off != 128 {
		t.Errorf("Offset = %d, %v; want 128", off, ok)
	}
}

func TestAllocator_Grow(t *testing.T) {
	mem := newMemory(t)
	a, err := New(mem, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mem.Grow(1); !ok {
		t.Fatal("grow failed")
	}
	// the buffer may or may not move; either way Reset recovers
	if _, err := a.Alloc(request[uint8, uint8](t, 4)); err != nil &&
		!stderrors.Is(err, &errors.Error{Phase: errors.PhaseAlloc, Kind: errors.KindAllocation}) {
		t.Fatalf("unexpected error after grow: %v", err)
	}
	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Alloc(request[uint8, uint8](t, 4)); err != nil {
		t.Errorf("after Reset: %v", err)
	}
}
