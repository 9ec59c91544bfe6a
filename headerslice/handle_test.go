package headerslice

import (
	"slices"
	"testing"

	"github.com/wippyai/slicedst/alloc"
)

func TestHeaderSlice_Zero(t *testing.T) {
	var s HeaderSlice[int, int]
	if !s.IsNil() || s.Len() != 0 || s.StoredLen() != 0 {
		t.Errorf("zero handle: IsNil=%v Len=%d StoredLen=%d", s.IsNil(), s.Len(), s.StoredLen())
	}
	if s.Header() != nil || s.Slice() != nil {
		t.Error("zero handle exposes memory")
	}
	s.Drop()

	var str HeaderStr[int]
	if str.String() != "" || str.Header() != nil {
		t.Error("zero string handle exposes memory")
	}
}

func TestHeaderSlice_Drop(t *testing.T) {
	var log []int
	s := CloneFrom(trackedHeader{log: &log}, trackedItems(&log, 3))
	s.Drop()

	if want := []int{-1, 0, 1, 2}; !slices.Equal(log, want) {
		t.Errorf("drop order %v, want %v", log, want)
	}
	if s.StoredLen() != 0 {
		t.Errorf("length word = %d after Drop", s.StoredLen())
	}
	for i, v := range s.Slice() {
		if v != (tracked{}) {
			t.Errorf("slot %d not zeroed", i)
		}
	}
}

type panicky struct {
	id  int
	log *[]int
}

func (p *panicky) Drop() {
	*p.log = append(*p.log, p.id)
	if p.id == 1 {
		panic("drop failed")
	}
}

func TestHeaderSlice_DropContinuesAfterPanic(t *testing.T) {
	var log []int
	items := []panicky{{0, &log}, {1, &log}, {2, &log}, {3, &log}}
	s := CloneFrom(uint8(0), items)

	if r := expectPanic(t, s.Drop); r != "drop failed" {
		t.Errorf("panic = %v", r)
	}
	if !slices.Equal(log, []int{0, 1, 2, 3}) {
		t.Errorf("dropped %v, want every element once", log)
	}
}

func TestHeaderSlice_Release(t *testing.T) {
	heap := alloc.NewGoHeap(nil)
	req, err := RequestFor[uint16, uint16](4)
	if err != nil {
		t.Fatal(err)
	}
	ptr, err := heap.Alloc(req)
	if err != nil {
		t.Fatal(err)
	}
	s := CopyFromInto(ptr, uint16(1), []uint16{1, 2, 3, 4})
	s.Release(heap)
	if st := heap.Stats(); st.Frees != 1 || st.Bytes != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestHeaderStr_AsSlice(t *testing.T) {
	s := NewStr(uint16(9), "abc")
	b := s.AsSlice()
	if b.Len() != 3 || *b.Header() != 9 || string(b.Slice()) != "abc" {
		t.Errorf("AsSlice = len %d header %d %q", b.Len(), *b.Header(), b.Slice())
	}
	if s.Layout() != b.Layout() || s.Ptr() != b.Ptr() {
		t.Error("string and slice views disagree")
	}
}
