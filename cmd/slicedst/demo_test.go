package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wippyai/slicedst/alloc"
)

func TestRunDemo(t *testing.T) {
	var buf bytes.Buffer
	cfg := demoConfig{
		arena:   alloc.ArenaConfig{ChunkSize: 4096, Capacity: 65536},
		metrics: true,
	}
	if err := runDemo(&buf, renderer{}, cfg); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"stored len 3, header 7, payload [10 20 30]",
		"source yielded 2 of 3 items",
		"header 7 handed back",
		"stored len 6",
		"equal true",
		"NewInto wrote 1 of 3, header 9",
		"slicedst_allocator_allocations_total",
		"slicedst_allocator_frees_total",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDemo_BadArena(t *testing.T) {
	cfg := demoConfig{arena: alloc.ArenaConfig{ChunkSize: 4096, Capacity: 1024}}
	if err := runDemo(&bytes.Buffer{}, renderer{}, cfg); err == nil {
		t.Error("expected config error")
	}
}
