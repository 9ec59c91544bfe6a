package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/wippyai/slicedst/layout"
)

func TestParseLengths(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"0,1,3", []int{0, 1, 3}, false},
		{"2-4", []int{2, 3, 4}, false},
		{" 0 , 5-6 ", []int{0, 5, 6}, false},
		{"", nil, true},
		{"4-2", nil, true},
		{"a", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLengths(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteTable(t *testing.T) {
	header, _ := parseShape("u32")
	elem, _ := parseShape("u64")
	var buf bytes.Buffer
	writeTable(&buf, renderer{}, header, elem, computeRows(header, elem, []int{0, 3, -1}))

	out := buf.String()
	for _, want := range []string{"header u32", "element u64", "invalid_input"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// n=3: word 8, header 4 at 8, data at 16, 3*8 bytes
	if !strings.Contains(out, "           3           40      8        8       16        4") {
		t.Errorf("unexpected row for n=3:\n%s", out)
	}
}

func TestDiagram(t *testing.T) {
	blk, err := layout.HeaderSlice(layout.Of[uint8](), layout.Of[uint16](), 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := diagram(renderer{}, blk, 100); got != "LLLLLLLLH.0011.." {
		t.Errorf("diagram = %q", got)
	}
	if got := diagram(renderer{}, blk, 4); got != "LLLL..." {
		t.Errorf("truncated diagram = %q", got)
	}
}
