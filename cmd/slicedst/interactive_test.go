package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/slicedst/layout"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestExplorer(t *testing.T) {
	header, _ := parseShape("u32")
	elem, _ := parseShape("u64")
	m := newExplorerModel(header, elem, 3)

	blk, err := m.block()
	if err != nil {
		t.Fatal(err)
	}
	if blk.Size != 40 {
		t.Errorf("size = %d, want 40", blk.Size)
	}

	// header u32 -> s32
	m.Update(key("down"))
	if m.choices[m.header].name != "s32" {
		t.Errorf("header = %s", m.choices[m.header].name)
	}

	// focus n and bump it
	m.Update(key("tab"))
	m.Update(key("tab"))
	m.Update(key("up"))
	if m.input.Value() != "4" {
		t.Errorf("n = %q, want 4", m.input.Value())
	}

	if view := m.View(); !strings.Contains(view, "size 48") {
		t.Errorf("view missing size:\n%s", view)
	}
}

func TestExplorer_CompositeShape(t *testing.T) {
	header, err := parseShape("record{id: u32, tags: list<string>}")
	if err != nil {
		t.Fatal(err)
	}
	elem, _ := parseShape("u8")
	m := newExplorerModel(header, elem, 2)

	if got := m.choices[m.header].name; got != header.name {
		t.Fatalf("header = %s, want %s", got, header.name)
	}
	if len(m.choices) != len(shapes)+1 {
		t.Errorf("%d choices, want %d", len(m.choices), len(shapes)+1)
	}
	blk, err := m.block()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := layout.For[uint8, struct {
		ID   uint32
		Tags []string
	}](2)
	if blk != want {
		t.Errorf("block = %+v, want %+v", blk, want)
	}
}
